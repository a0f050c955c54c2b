package registration

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aurafarming/mailportal/internal/clock"
	"github.com/aurafarming/mailportal/internal/config"
	"github.com/aurafarming/mailportal/internal/credential"
	directorydomain "github.com/aurafarming/mailportal/internal/directory/domain"
	mailboxdomain "github.com/aurafarming/mailportal/internal/mailbox/domain"
	"github.com/aurafarming/mailportal/internal/observability/metrics"
	"github.com/aurafarming/mailportal/internal/registration/domain"
	"github.com/aurafarming/mailportal/internal/registration/policy"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

type Params struct {
	fx.In

	Log         *zap.Logger
	Cfg         config.Config
	Clock       clock.Clock
	Policy      *config.PolicyConfigHolder
	Directory   directorydomain.Service
	Provisioner mailboxdomain.Provisioner
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	log         *zap.Logger
	cfg         config.Config
	clock       clock.Clock
	policy      *config.PolicyConfigHolder
	directory   directorydomain.Service
	provisioner mailboxdomain.Provisioner
	metrics     *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:         p.Log.Named("registration.service"),
		cfg:         p.Cfg,
		clock:       p.Clock,
		policy:      p.Policy,
		directory:   p.Directory,
		provisioner: p.Provisioner,
		metrics:     p.Metrics,
	}
}

// Register runs the registration steps strictly in order. The first failing
// step decides the outcome; no step is retried.
func (s *Service) Register(ctx context.Context, req domain.Request) (domain.Outcome, error) {
	pol := s.policy.Get()

	if req.Username == "" || req.Password == "" || req.FullName == "" ||
		req.DateOfBirth == "" || req.Gender == "" || req.Country == "" {
		return s.fail(ctx, domain.ErrMissingFields, "missing_fields")
	}

	if validation := policy.ValidateUsername(req.Username, pol.ReservedUsernames); !validation.Valid {
		return s.fail(ctx, domain.InvalidUsernameError{Reason: validation.Message}, "invalid_username")
	}

	if policy.PasswordStrength(req.Password) < pol.MinPasswordStrength {
		return s.fail(ctx, domain.ErrWeakPassword, "weak_password")
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil || dob.After(s.clock.Now()) {
		return s.fail(ctx, domain.ErrInvalidDate, "invalid_date")
	}

	if req.Gender != "Male" && req.Gender != "Female" {
		return s.fail(ctx, domain.ErrInvalidGender, "invalid_gender")
	}

	if strings.TrimSpace(req.Country) == "" {
		return s.fail(ctx, domain.ErrInvalidCountry, "invalid_country")
	}

	localPart := strings.ToLower(req.Username)

	available, err := s.directory.IsUsernameAvailable(ctx, localPart)
	if err != nil {
		return s.fail(ctx, err, "internal")
	}
	if !available {
		return s.fail(ctx, domain.ErrUsernameTaken, "username_taken")
	}

	domainID, err := s.directory.DomainID(ctx)
	if err != nil {
		return s.fail(ctx, err, "domain_not_found")
	}

	hash, err := credential.Hash(req.Password)
	if err != nil {
		return s.fail(ctx, err, "internal")
	}

	account, err := s.directory.CreateAccount(ctx, directorydomain.CreateAccountRequest{
		Username:     localPart,
		DomainID:     domainID,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, directorydomain.ErrEmailTaken) {
			return s.fail(ctx, domain.ErrUsernameTaken, "username_taken")
		}
		return s.fail(ctx, err, "internal")
	}

	s.provision(ctx, account.Email)

	s.log.Info("user created",
		zap.String("email", account.Email),
		zap.String("full_name", req.FullName),
		zap.String("date_of_birth", req.DateOfBirth),
		zap.String("gender", req.Gender),
		zap.String("country", req.Country),
	)
	s.metrics.RecordRegistration(ctx)

	return domain.Outcome{
		Email:   account.Email,
		Message: "Account created successfully",
	}, nil
}

// CheckUsername validates the candidate and checks directory availability.
func (s *Service) CheckUsername(ctx context.Context, username string) (domain.Availability, error) {
	pol := s.policy.Get()

	if validation := policy.ValidateUsername(username, pol.ReservedUsernames); !validation.Valid {
		s.metrics.RecordUsernameCheck(ctx, "invalid")
		return domain.Availability{Available: false, Message: validation.Message}, nil
	}

	available, err := s.directory.IsUsernameAvailable(ctx, strings.ToLower(username))
	if err != nil {
		s.metrics.RecordUsernameCheck(ctx, "error")
		return domain.Availability{}, err
	}

	if !available {
		s.metrics.RecordUsernameCheck(ctx, "taken")
		return domain.Availability{Available: false, Message: "This username is already taken"}, nil
	}

	s.metrics.RecordUsernameCheck(ctx, "available")
	return domain.Availability{
		Available: true,
		Message:   username + "@" + s.cfg.MailDomain + " is available!",
	}, nil
}

// provision is best-effort: the account row already exists, so a backend
// failure is logged and discarded rather than surfaced to the user.
func (s *Service) provision(ctx context.Context, email string) {
	timeout := time.Duration(s.cfg.Provisioner.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	provCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.provisioner.Provision(provCtx, email); err != nil {
		s.log.Warn("mailbox provisioning failed, account kept",
			zap.String("email", email),
			zap.Error(err),
		)
		s.metrics.RecordProvisionRequest(ctx, "failed")
		return
	}
	s.metrics.RecordProvisionRequest(ctx, "requested")
}

func (s *Service) fail(ctx context.Context, err error, reason string) (domain.Outcome, error) {
	s.metrics.RecordRegistrationFailure(ctx, reason)
	return domain.Outcome{}, err
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, strings.TrimSpace(value))
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
