package usecase

import (
	"github.com/google/uuid"

	"tailortalk/internal/chat"
	"tailortalk/internal/scheduling"
	sessionRepo "tailortalk/internal/session/repository"
	pkgLog "tailortalk/pkg/log"
	"tailortalk/pkg/metrics"
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       sessionRepo.Repository
	agent      chat.Agent
	scheduling scheduling.UseCase
	metrics    *metrics.Metrics
	newID      func() string
}

// New creates a chat usecase. agent may be nil, in which case replies come
// from the built-in scheduling flow.
func New(l pkgLog.Logger, repo sessionRepo.Repository, agent chat.Agent, schedulingUC scheduling.UseCase, m *metrics.Metrics) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		agent:      agent,
		scheduling: schedulingUC,
		metrics:    m,
		newID:      uuid.NewString,
	}
}

func (uc *implUseCase) AgentReady() bool {
	return uc.agent != nil && uc.agent.Ready()
}
