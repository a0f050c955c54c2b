package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aurafarming/mailportal/internal/clock"
	"github.com/aurafarming/mailportal/internal/config"
	directorydomain "github.com/aurafarming/mailportal/internal/directory/domain"
	directoryrepo "github.com/aurafarming/mailportal/internal/directory/repository"
	directoryservice "github.com/aurafarming/mailportal/internal/directory/service"
	"github.com/aurafarming/mailportal/internal/registration/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fakeProvisioner struct {
	calls []string
	err   error
}

func (f *fakeProvisioner) Provision(ctx context.Context, email string) error {
	_ = ctx
	f.calls = append(f.calls, email)
	return f.err
}

func validRequest() domain.Request {
	return domain.Request{
		Username:    "alice",
		Password:    "Abc12345!",
		FullName:    "Alice Smith",
		DateOfBirth: "1995-04-12",
		Gender:      "Female",
		Country:     "Indonesia",
	}
}

var testDBSeq atomic.Int64

// testDSN returns a fresh shared-cache in-memory database per call, so
// repeated runs in one process never see a previous run's rows.
func testDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), testDBSeq.Add(1))
}

func newTestService(t *testing.T) (*Service, *fakeProvisioner, *clock.FakeClock) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(testDSN(t)), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.AutoMigrate(&directorydomain.Domain{}, &directorydomain.Account{}); err != nil {
		t.Fatal(err)
	}
	if err := conn.Create(&directorydomain.Domain{ID: 1, Name: "aurafarming.co"}).Error; err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{
		MailDomain: "aurafarming.co",
		Provisioner: config.ProvisionerConfig{
			TimeoutSeconds: 1,
		},
	}

	fc := clock.NewFakeClock(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	log := zaptest.NewLogger(t)

	directorySvc := directoryservice.New(directoryservice.Params{
		DB:    conn,
		Log:   log,
		Cfg:   cfg,
		Clock: fc,
		GenID: node,
		Repo:  directoryrepo.Provide(),
	})

	provisioner := &fakeProvisioner{}
	svc := New(Params{
		Log:         log,
		Cfg:         cfg,
		Clock:       fc,
		Policy:      config.NewStaticPolicyConfigHolder(config.DefaultPolicyConfig()),
		Directory:   directorySvc,
		Provisioner: provisioner,
	}).(*Service)

	return svc, provisioner, fc
}

func TestRegisterRoundTrip(t *testing.T) {
	svc, provisioner, _ := newTestService(t)
	ctx := context.Background()

	outcome, err := svc.Register(ctx, validRequest())
	assert.NoError(t, err)
	assert.Equal(t, "alice@aurafarming.co", outcome.Email)
	assert.Equal(t, "Account created successfully", outcome.Message)
	assert.Equal(t, []string{"alice@aurafarming.co"}, provisioner.calls)

	availability, err := svc.CheckUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.False(t, availability.Available)
	assert.Equal(t, "This username is already taken", availability.Message)
}

func TestRegisterTwoCharUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest()
	req.Username = "ad"

	outcome, err := svc.Register(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "ad@aurafarming.co", outcome.Email)
}

func TestRegisterLowercasesLocalPart(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest()
	req.Username = "Alice"

	outcome, err := svc.Register(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "alice@aurafarming.co", outcome.Email)
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	fields := []func(*domain.Request){
		func(r *domain.Request) { r.Username = "" },
		func(r *domain.Request) { r.Password = "" },
		func(r *domain.Request) { r.FullName = "" },
		func(r *domain.Request) { r.DateOfBirth = "" },
		func(r *domain.Request) { r.Gender = "" },
		func(r *domain.Request) { r.Country = "" },
	}

	for _, clear := range fields {
		req := validRequest()
		clear(&req)

		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrMissingFields)
	}
}

func TestRegisterReservedUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest()
	req.Username = "admin"

	_, err := svc.Register(context.Background(), req)

	var invalid domain.InvalidUsernameError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, "This username is reserved", invalid.Reason)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest()
	req.Password = "abcdefgh"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestRegisterDateOfBirthTomorrow(t *testing.T) {
	svc, _, fc := newTestService(t)

	req := validRequest()
	req.DateOfBirth = fc.Now().Add(24 * time.Hour).Format("2006-01-02")

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestRegisterUnparseableDate(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest()
	req.DateOfBirth = "not-a-date"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestRegisterInvalidGender(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest()
	req.Gender = "Other"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidGender)
}

func TestRegisterBlankCountry(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest()
	req.Country = "   "

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidCountry)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRequest())
	assert.NoError(t, err)

	_, err = svc.Register(ctx, validRequest())
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	// Both attempts pass the availability pre-check before either row
	// exists; the unique constraint decides the winner at insert time.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, validRequest())
		}(i)
	}
	wg.Wait()

	var succeeded, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrUsernameTaken):
			taken++
		default:
			t.Fatalf("unexpected registration error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, taken)
}

// raceLostDirectory reports the username as available but collides on
// insert, the window a concurrent registration wins in.
type raceLostDirectory struct{}

func (raceLostDirectory) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	return true, nil
}

func (raceLostDirectory) DomainID(ctx context.Context) (int64, error) {
	return 1, nil
}

func (raceLostDirectory) CreateAccount(ctx context.Context, req directorydomain.CreateAccountRequest) (directorydomain.Account, error) {
	return directorydomain.Account{}, directorydomain.ErrEmailTaken
}

func (raceLostDirectory) Stats(ctx context.Context) (directorydomain.Stats, error) {
	return directorydomain.Stats{}, nil
}

func (raceLostDirectory) Ping(ctx context.Context) error {
	return nil
}

func TestRegisterRaceLostInsert(t *testing.T) {
	provisioner := &fakeProvisioner{}
	svc := New(Params{
		Log:         zaptest.NewLogger(t),
		Cfg:         config.Config{MailDomain: "aurafarming.co"},
		Clock:       clock.NewFakeClock(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)),
		Policy:      config.NewStaticPolicyConfigHolder(config.DefaultPolicyConfig()),
		Directory:   raceLostDirectory{},
		Provisioner: provisioner,
	}).(*Service)

	_, err := svc.Register(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Empty(t, provisioner.calls)
}

func TestRegisterProvisioningFailureIsSwallowed(t *testing.T) {
	svc, provisioner, _ := newTestService(t)
	provisioner.err = errors.New("backend unreachable")

	outcome, err := svc.Register(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.Equal(t, "alice@aurafarming.co", outcome.Email)
	assert.Len(t, provisioner.calls, 1)
}

func TestCheckUsernameInvalidFormat(t *testing.T) {
	svc, _, _ := newTestService(t)

	availability, err := svc.CheckUsername(context.Background(), ".alice")
	assert.NoError(t, err)
	assert.False(t, availability.Available)
	assert.Equal(t, "Username cannot start or end with special characters", availability.Message)
}

func TestCheckUsernameAvailable(t *testing.T) {
	svc, _, _ := newTestService(t)

	availability, err := svc.CheckUsername(context.Background(), "bob")
	assert.NoError(t, err)
	assert.True(t, availability.Available)
	assert.Equal(t, "bob@aurafarming.co is available!", availability.Message)
}
