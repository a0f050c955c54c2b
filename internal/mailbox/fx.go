package mailbox

import (
	"github.com/aurafarming/mailportal/internal/config"
	"github.com/aurafarming/mailportal/internal/mailbox/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("mailbox.service",
	fx.Provide(newProvisioner),
)

func newProvisioner(cfg config.Config, log *zap.Logger) domain.Provisioner {
	if !cfg.Provisioner.Enabled() {
		return NewNoopProvisioner(log)
	}

	return NewHTTPProvisioner(cfg.Provisioner, log)
}
