package webhook

import (
	"github-relay/internal/automation"
	"github-relay/internal/notifier"
	pkgLog "github-relay/pkg/log"
	"github-relay/pkg/tasklink"
)

type Handler struct {
	automationUC automation.UseCase
	notifierSvc  notifier.Service
	security     *SecurityValidator
	decoder      *GitHubDecoder
	l            pkgLog.Logger
}

func NewHandler(
	automationUC automation.UseCase,
	notifierSvc notifier.Service,
	securityConfig SecurityConfig,
	linker *tasklink.Linker,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		automationUC: automationUC,
		notifierSvc:  notifierSvc,
		security:     NewSecurityValidator(securityConfig),
		decoder:      NewGitHubDecoder(linker),
		l:            l,
	}
}

// SecretConfigured reports whether signature verification is active, so the
// startup path can warn when it is not.
func (h *Handler) SecretConfigured() bool {
	return h.security.SecretConfigured()
}
