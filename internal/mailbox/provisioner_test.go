package mailbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aurafarming/mailportal/internal/config"
	"github.com/aurafarming/mailportal/internal/mailbox/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestHTTPProvisionerSendsCreateMailboxRequest(t *testing.T) {
	var gotPath, gotAuth, gotEmail string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var body struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotEmail = body.Email

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	host, port := splitHostPort(t, srv.URL)
	provisioner := NewHTTPProvisioner(config.ProvisionerConfig{
		Host:           host,
		Port:           port,
		APIKey:         "test-key",
		TimeoutSeconds: 2,
	}, zaptest.NewLogger(t))

	err := provisioner.Provision(context.Background(), "alice@aurafarming.co")
	assert.NoError(t, err)
	assert.Equal(t, "/api/create-mailbox", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "alice@aurafarming.co", gotEmail)
}

func TestHTTPProvisionerReportsBackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	host, port := splitHostPort(t, srv.URL)
	provisioner := NewHTTPProvisioner(config.ProvisionerConfig{
		Host:           host,
		Port:           port,
		APIKey:         "test-key",
		TimeoutSeconds: 2,
	}, zaptest.NewLogger(t))

	err := provisioner.Provision(context.Background(), "alice@aurafarming.co")
	assert.ErrorIs(t, err, domain.ErrBackendRejected)
}

func TestNoopProvisionerDoesNothing(t *testing.T) {
	provisioner := NewNoopProvisioner(zaptest.NewLogger(t))
	assert.NoError(t, provisioner.Provision(context.Background(), "alice@aurafarming.co"))
}

func TestNewProvisionerChoosesByConfig(t *testing.T) {
	log := zaptest.NewLogger(t)

	p := newProvisioner(config.Config{}, log)
	if _, ok := p.(*noopProvisioner); !ok {
		t.Fatalf("expected noop provisioner without backend host, got %T", p)
	}

	p = newProvisioner(config.Config{
		Provisioner: config.ProvisionerConfig{Host: "10.0.0.5", Port: "3001"},
	}, log)
	if _, ok := p.(*HTTPProvisioner); !ok {
		t.Fatalf("expected http provisioner with backend host, got %T", p)
	}
}

func splitHostPort(t *testing.T, rawURL string) (string, string) {
	t.Helper()
	trimmed := strings.TrimPrefix(rawURL, "http://")
	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		t.Fatalf("unexpected test server url %q", rawURL)
	}
	return parts[0], parts[1]
}
