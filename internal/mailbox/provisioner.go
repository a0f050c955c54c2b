package mailbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aurafarming/mailportal/internal/config"
	"github.com/aurafarming/mailportal/internal/mailbox/domain"
	"go.uber.org/zap"
)

type noopProvisioner struct {
	log *zap.Logger
}

func NewNoopProvisioner(log *zap.Logger) domain.Provisioner {
	return &noopProvisioner{log: log.Named("mailbox.noop")}
}

func (p *noopProvisioner) Provision(ctx context.Context, email string) error {
	_ = ctx
	p.log.Info("no backend host configured, skipping mailbox creation",
		zap.String("email", email),
	)
	return nil
}

// HTTPProvisioner calls the mail backend's create-mailbox endpoint. The
// account row already exists when this runs; the backend catches up on its
// own schedule if the call fails.
type HTTPProvisioner struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     *zap.Logger
}

func NewHTTPProvisioner(cfg config.ProvisionerConfig, log *zap.Logger) domain.Provisioner {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTPProvisioner{
		client:  &http.Client{Timeout: timeout},
		baseURL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port),
		apiKey:  cfg.APIKey,
		log:     log.Named("mailbox.http"),
	}
}

type createMailboxRequest struct {
	Email string `json:"email"`
}

func (p *HTTPProvisioner) Provision(ctx context.Context, email string) error {
	body, err := json.Marshal(createMailboxRequest{Email: email})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/create-mailbox", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		p.log.Warn("mailbox creation request failed",
			zap.String("email", email),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", domain.ErrBackendRejected, resp.StatusCode)
	}

	p.log.Info("mailbox creation requested", zap.String("email", email))
	return nil
}
