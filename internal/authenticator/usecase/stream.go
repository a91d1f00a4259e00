package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goerror"
)

// StreamCodes starts a refresh driver over the session accounts. The
// returned channel yields one batch immediately and then one per refresh
// interval; it is closed once ctx is done.
//
// Accounts imported while the stream runs show up on the next tick. When the
// goroutine manager has no room left the stream is refused with
// CodeUnavailable.
func (s *Usecase) StreamCodes(ctx context.Context) (<-chan []entity.CodeObservation, error) {
	out := make(chan []entity.CodeObservation, 1)

	driver := &refreshDriver{
		source: s.accounts,
		gen:    s.otp,
		now:    s.clock.Now,
		period: s.period(),
	}
	interval := s.refreshInterval()

	run := func(ctx context.Context) error {
		active := s.activeStreams.Inc()
		slog.InfoContext(ctx, "code stream started", "active_streams", active, "interval", interval.String())

		ticker := s.clock.NewTicker(interval)
		defer func() {
			ticker.Stop()
			active := s.activeStreams.Dec()
			slog.InfoContext(ctx, "code stream stopped", "active_streams", active)
		}()

		driver.run(ctx, ticker.C(), out)
		return nil
	}

	if s.goroutine == nil {
		go run(ctx) //nolint:errcheck // run never fails
		return out, nil
	}

	if !s.goroutine.Go(ctx, run) {
		slog.WarnContext(ctx, "code stream rejected", "active_streams", s.activeStreams.Load())
		return nil, goerror.NewBusiness("Too many code streams are open, try again later", goerror.CodeUnavailable)
	}

	return out, nil
}

// ActiveStreams reports how many code streams are running.
func (s *Usecase) ActiveStreams() int64 {
	return s.activeStreams.Load()
}
