package module

import (
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/repository"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/service"
	"go.uber.org/fx"
)

var Module = fx.Module("module.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
