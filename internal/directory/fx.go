package directory

import (
	"github.com/aurafarming/mailportal/internal/directory/repository"
	"github.com/aurafarming/mailportal/internal/directory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("directory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
