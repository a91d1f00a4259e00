package authenticator

import (
	"github.com/shandysiswandi/authmigrate/internal/authenticator/inbound"
	"github.com/shandysiswandi/authmigrate/internal/authenticator/usecase"
	"github.com/shandysiswandi/authmigrate/internal/pkg/clock"
	"github.com/shandysiswandi/authmigrate/internal/pkg/config"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goroutine"
	"github.com/shandysiswandi/authmigrate/internal/pkg/instrument"
	"github.com/shandysiswandi/authmigrate/internal/pkg/otp"
	"github.com/shandysiswandi/authmigrate/internal/pkg/router"
	"github.com/shandysiswandi/authmigrate/internal/pkg/validator"
)

type Dependency struct {
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	OTP        otp.OTP                    `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Validator:  dep.Validator,
		Config:     dep.Config,
		Clock:      dep.Clock,
		OTP:        dep.OTP,
		Instrument: dep.Instrument,
		Goroutine:  dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config.GetSecond("authenticator.stream_heartbeat_seconds"))

	return nil
}
