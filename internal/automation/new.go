package automation

import (
	"github-relay/internal/notifier"
	pkgLog "github-relay/pkg/log"
	"github-relay/pkg/tasklink"
)

func New(
	tracker Tracker,
	notifierSvc notifier.Service,
	linker *tasklink.Linker,
	qaColumnID string,
	l pkgLog.Logger,
) UseCase {
	return &usecase{
		tracker:     tracker,
		notifierSvc: notifierSvc,
		linker:      linker,
		qaColumnID:  qaColumnID,
		l:           l,
	}
}
