package record

import (
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/repository"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/service"
	"go.uber.org/fx"
)

var Module = fx.Module("record.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
