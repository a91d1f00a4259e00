package usecase

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/clock"
	"github.com/shandysiswandi/authmigrate/internal/pkg/config"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goroutine"
	"github.com/shandysiswandi/authmigrate/internal/pkg/instrument"
	"github.com/shandysiswandi/authmigrate/internal/pkg/otp"
	"github.com/shandysiswandi/authmigrate/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

const (
	defaultRefreshInterval = time.Second
	defaultMaxURILength    = 8192
)

// Usecase owns the authenticator session: the accounts of the last
// successfully imported migration. The account list is replaced as a whole
// on import; only NextCode touches a single account, under the write lock.
type Usecase struct {
	validator validator.Validator
	cfg       config.Config
	clock     clock.Clocker
	otp       otp.OTP
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager

	mu         sync.RWMutex
	session    *entity.Batch
	generation uint64

	activeStreams   *atomic.Int64
	importCounter   metric.Int64Counter
	rejectedCounter metric.Int64Counter
}

type Dependency struct {
	Validator  validator.Validator
	Config     config.Config
	Clock      clock.Clocker
	OTP        otp.OTP
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	s := &Usecase{
		validator:     dep.Validator,
		cfg:           dep.Config,
		clock:         dep.Clock,
		otp:           dep.OTP,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
		activeStreams: atomic.NewInt64(0),
	}

	meter := s.ins.Meter("authenticator.usecase")

	var err error
	s.importCounter, err = meter.Int64Counter("authenticator.accounts.imported",
		metric.WithDescription("Number of accounts built from migration exports"))
	if err != nil {
		slog.Error("failed to create imported accounts counter", "error", err)
	}

	s.rejectedCounter, err = meter.Int64Counter("authenticator.accounts.rejected",
		metric.WithDescription("Number of account records skipped while building a migration batch"))
	if err != nil {
		slog.Error("failed to create rejected accounts counter", "error", err)
	}

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("authenticator.usecase").Start(ctx, name)
}

func (s *Usecase) period() uint {
	if p := s.cfg.GetUint("authenticator.totp_period_seconds"); p > 0 {
		return p
	}
	return otp.DefaultPeriod
}

func (s *Usecase) refreshInterval() time.Duration {
	if d := s.cfg.GetMillisecond("authenticator.refresh_interval_ms"); d > 0 {
		return d
	}
	return defaultRefreshInterval
}

func (s *Usecase) maxURILength() int {
	if n := s.cfg.GetInt("authenticator.max_uri_length"); n > 0 {
		return n
	}
	return defaultMaxURILength
}

// snapshot returns a copy of the current batch and the session generation.
// The generation changes whenever a new migration replaces the session.
func (s *Usecase) snapshot() (uint64, *entity.Batch) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return s.generation, nil
	}

	batch := *s.session
	batch.Accounts = slices.Clone(s.session.Accounts)
	return s.generation, &batch
}

func (s *Usecase) accounts() (uint64, []entity.Account) {
	gen, batch := s.snapshot()
	if batch == nil {
		return gen, nil
	}
	return gen, batch.Accounts
}
