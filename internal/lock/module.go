package lock

import (
	"github.com/shandysiswandi/saltlock/internal/lock/inbound"
	"github.com/shandysiswandi/saltlock/internal/lock/outbound/store"
	"github.com/shandysiswandi/saltlock/internal/lock/usecase"
	"github.com/shandysiswandi/saltlock/internal/pkg/clock"
	"github.com/shandysiswandi/saltlock/internal/pkg/config"
	"github.com/shandysiswandi/saltlock/internal/pkg/hash"
	"github.com/shandysiswandi/saltlock/internal/pkg/instrument"
	"github.com/shandysiswandi/saltlock/internal/pkg/router"
	"github.com/shandysiswandi/saltlock/internal/pkg/validator"
)

type Dependency struct {
	Store      store.Store                `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Hashers    map[string]hash.Hash       `validate:"required,min=1"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Store:             dep.Store,
		Validator:         dep.Validator,
		Hashers:           dep.Hashers,
		Algorithm:         hash.Normalize(dep.Config.GetString("hash.algorithm")),
		MaxPasswordLength: dep.Config.GetInt("lock.password.max_length"),
		Clock:             dep.Clock,
		Instrument:        dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
