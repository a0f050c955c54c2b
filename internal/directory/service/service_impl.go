package service

import (
	"context"
	"time"

	"github.com/aurafarming/mailportal/internal/clock"
	"github.com/aurafarming/mailportal/internal/config"
	"github.com/aurafarming/mailportal/internal/directory/domain"
	"github.com/aurafarming/mailportal/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recentWindow = 7 * 24 * time.Hour

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	mailDomain string
	clock      clock.Clock
	genID      *snowflake.Node
	repo       domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("directory.service"),
		mailDomain: p.Cfg.MailDomain,
		clock:      p.Clock,
		genID:      p.GenID,
		repo:       p.Repo,
	}
}

// Email composes the full address for a local-part.
func (s *Service) Email(username string) string {
	return username + "@" + s.mailDomain
}

func (s *Service) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	exists, err := s.repo.EmailExists(ctx, s.db, s.Email(username))
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *Service) DomainID(ctx context.Context) (int64, error) {
	id, err := s.repo.FindDomainIDByName(ctx, s.db, s.mailDomain)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, domain.ErrDomainNotFound
	}
	return id, nil
}

func (s *Service) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (domain.Account, error) {
	account := domain.Account{
		ID:        s.genID.Generate(),
		DomainID:  req.DomainID,
		Email:     s.Email(req.Username),
		Password:  req.PasswordHash,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.InsertAccount(ctx, s.db, &account); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Account{}, domain.ErrEmailTaken
		}
		return domain.Account{}, err
	}

	return account, nil
}

// Stats never fails the request: on storage errors it degrades to zero
// counts and the configured domain, matching the operator dashboard's
// expectation that the endpoint always renders.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	total, err := s.repo.CountAccounts(ctx, s.db)
	if err != nil {
		s.log.Warn("stats query failed", zap.Error(err))
		return s.degradedStats(), nil
	}

	recent, err := s.repo.CountAccountsSince(ctx, s.db, s.clock.Now().Add(-recentWindow))
	if err != nil {
		s.log.Warn("stats query failed", zap.Error(err))
		return s.degradedStats(), nil
	}

	names, err := s.repo.ListDomainNames(ctx, s.db)
	if err != nil {
		s.log.Warn("stats query failed", zap.Error(err))
		return s.degradedStats(), nil
	}
	if len(names) == 0 {
		names = []string{s.mailDomain}
	}

	return domain.Stats{
		TotalAccounts:  total,
		RecentAccounts: recent,
		Domains:        names,
	}, nil
}

func (s *Service) degradedStats() domain.Stats {
	return domain.Stats{Domains: []string{s.mailDomain}}
}

func (s *Service) Ping(ctx context.Context) error {
	var one int
	return s.db.WithContext(ctx).Raw(`SELECT 1`).Scan(&one).Error
}
