package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/otp"
)

// refreshDriver emits one batch of observations right away and one per tick.
//
// Codes are recomputed only when they can change: for TOTP when the window
// rolls over, for HOTP when the counter moves. SecondsRemaining is refreshed
// on every tick. All accounts of a batch are observed at the same instant.
type refreshDriver struct {
	source func() (uint64, []entity.Account)
	gen    otp.OTP
	now    func() time.Time
	period uint
}

type cachedCode struct {
	window uint64
	obs    entity.CodeObservation
}

// run blocks until ctx is done or ticks is closed, then closes out.
func (d *refreshDriver) run(ctx context.Context, ticks <-chan time.Time, out chan<- []entity.CodeObservation) {
	defer close(out)

	var (
		generation uint64
		cache      = make(map[int]cachedCode)
	)

	emit := func() bool {
		if ctx.Err() != nil {
			return false
		}

		gen, accounts := d.source()
		if gen != generation {
			generation = gen
			clear(cache)
		}

		batch := d.observe(d.now(), accounts, cache)

		select {
		case <-ctx.Done():
			return false
		case out <- batch:
			return true
		}
	}

	if !emit() {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok || !emit() {
				return
			}
		}
	}
}

func (d *refreshDriver) observe(now time.Time, accounts []entity.Account, cache map[int]cachedCode) []entity.CodeObservation {
	batch := make([]entity.CodeObservation, 0, len(accounts))
	live := make(map[int]struct{}, len(accounts))

	for _, acc := range accounts {
		live[acc.Order()] = struct{}{}

		window, cacheable := d.window(acc, now)
		if c, ok := cache[acc.Order()]; ok && cacheable && c.window == window {
			obs := c.obs
			obs.Account = acc
			obs.At = now
			if acc.Type() == entity.OTPTypeTOTP {
				_, remaining := otp.Window(now.Unix(), d.period)
				obs.SecondsRemaining = int(remaining)
			}
			batch = append(batch, obs)
			continue
		}

		obs := generateCode(d.gen, acc, now, d.period)
		if cacheable && obs.Err == nil {
			cache[acc.Order()] = cachedCode{window: window, obs: obs}
		}
		batch = append(batch, obs)
	}

	for order := range cache {
		if _, ok := live[order]; !ok {
			delete(cache, order)
		}
	}

	return batch
}

// window identifies the code an account shows at now. ok is false when the
// code cannot be cached, e.g. for instants before the epoch.
func (d *refreshDriver) window(acc entity.Account, now time.Time) (uint64, bool) {
	if counter, isHOTP := acc.Counter(); isHOTP {
		return counter, true
	}

	if now.Unix() < 0 {
		return 0, false
	}

	counter, _ := otp.Window(now.Unix(), d.period)
	return counter, true
}
