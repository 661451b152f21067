package mailtemplate

import (
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/repository"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mailtemplate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
