package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/authmigrate/internal/pkg/clock"
	"github.com/shandysiswandi/authmigrate/internal/pkg/config"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goroutine"
	"github.com/shandysiswandi/authmigrate/internal/pkg/instrument"
	"github.com/shandysiswandi/authmigrate/internal/pkg/migration"
	"github.com/shandysiswandi/authmigrate/internal/pkg/otp"
	"github.com/shandysiswandi/authmigrate/internal/pkg/validator"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

// rfcSecret is the shared secret of the RFC 4226 and RFC 6238 SHA1 vectors.
var rfcSecret = []byte("12345678901234567890")

type fakeTicker struct {
	ch      chan time.Time
	stopped *atomic.Bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() { t.stopped.Store(true) }

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	ticks   chan time.Time
	stopped *atomic.Bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, ticks: make(chan time.Time), stopped: atomic.NewBool(false)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *fakeClock) NewTicker(time.Duration) clock.Ticker {
	return &fakeTicker{ch: c.ticks, stopped: c.stopped}
}

// tick moves the clock to now and delivers one tick.
func (c *fakeClock) tick(now time.Time) {
	c.Set(now)
	c.ticks <- now
}

// countingOTP counts calls to the wrapped generator.
type countingOTP struct {
	otp.OTP
	hotp *atomic.Int32
	totp *atomic.Int32
}

func newCountingOTP() *countingOTP {
	return &countingOTP{OTP: otp.NewGenerator(otp.DefaultPeriod), hotp: atomic.NewInt32(0), totp: atomic.NewInt32(0)}
}

func (c *countingOTP) HOTP(secret []byte, counter uint64, opts otp.Options) (string, error) {
	c.hotp.Inc()
	return c.OTP.HOTP(secret, counter, opts)
}

func (c *countingOTP) TOTP(secret []byte, unixSeconds int64, opts otp.Options) (otp.Code, error) {
	c.totp.Inc()
	return c.OTP.TOTP(secret, unixSeconds, opts)
}

type testDeps struct {
	uc    *Usecase
	cfg   *config.Viper
	clock *fakeClock
	otp   *countingOTP
}

func newTestUsecase(t *testing.T, yaml string, mgr *goroutine.Manager) testDeps {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	clk := newFakeClock(time.Unix(59, 0))
	gen := newCountingOTP()

	uc := New(Dependency{
		Validator:  v,
		Config:     cfg,
		Clock:      clk,
		OTP:        gen,
		Instrument: instrument.NewNoop(),
		Goroutine:  mgr,
	})

	return testDeps{uc: uc, cfg: cfg, clock: clk, otp: gen}
}

func hotpAccount(name string, counter uint64) migration.RawAccount {
	return migration.RawAccount{
		Secret: rfcSecret, Name: name, Algorithm: 1, Digits: 1, Type: 1,
		Counter: counter, HasCounter: true,
	}
}

func totpAccount(name string) migration.RawAccount {
	return migration.RawAccount{Secret: rfcSecret, Name: name, Issuer: "Example", Algorithm: 1, Digits: 2, Type: 2}
}

func migrationURI(accounts ...migration.RawAccount) string {
	return migration.FormatURI(migration.Encode(&migration.Payload{
		Accounts:   accounts,
		Version:    1,
		BatchSize:  1,
		BatchIndex: 0,
		BatchID:    -7,
	}))
}
