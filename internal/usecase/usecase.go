package usecase

import (
	"time"

	"senior-hub-api/config"
	"senior-hub-api/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	InvitationUsecaseInterface
	TeamUsecaseInterface
	UserUsecaseInterface
}

// Deps re-exports the collaborators of the usecase layer.
type Deps = domain.Deps

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, deps Deps, cfg config.InvitationConfig, timeout time.Duration) InterfaceUsecase {
	return domain.New(log, deps, cfg, timeout)
}
