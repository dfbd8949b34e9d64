package usecase

import (
	"time"

	"tailortalk/internal/scheduling/repository"
	"tailortalk/pkg/datemath"
	pkgLog "tailortalk/pkg/log"
	"tailortalk/pkg/metrics"
	"tailortalk/pkg/slotfinder"
)

// Config carries the scheduling policy.
type Config struct {
	Timezone               string
	BusinessHours          slotfinder.BusinessHours
	EndOfBusinessHour      int
	DefaultDurationMinutes int
	MaxSlots               int
}

type implUseCase struct {
	l               pkgLog.Logger
	repo            repository.CalendarRepository
	resolver        *datemath.Resolver
	finder          *slotfinder.Finder
	hours           slotfinder.BusinessHours
	timezone        string
	defaultDuration int
	metrics         *metrics.Metrics
	now             func() time.Time
}

// New creates a new scheduling UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.CalendarRepository,
	cfg Config,
	m *metrics.Metrics,
) *implUseCase {
	hours := cfg.BusinessHours
	if hours.Validate() != nil {
		hours = slotfinder.DefaultBusinessHours
	}
	duration := cfg.DefaultDurationMinutes
	if duration <= 0 {
		duration = 60
	}
	tz := datemath.ZoneName(cfg.Timezone)
	if _, ok := datemath.LoadZone(tz); !ok {
		tz = "UTC"
	}

	return &implUseCase{
		l:               l,
		repo:            repo,
		resolver:        datemath.NewResolver(cfg.EndOfBusinessHour),
		finder:          slotfinder.New(cfg.MaxSlots),
		hours:           hours,
		timezone:        tz,
		defaultDuration: duration,
		metrics:         m,
		now:             time.Now,
	}
}

func (uc *implUseCase) DefaultTimezone() string {
	return uc.timezone
}

func (uc *implUseCase) Now() time.Time {
	return uc.now()
}
