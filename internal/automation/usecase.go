package automation

import (
	"context"
	"fmt"

	"github-relay/internal/notifier"
	pkgLog "github-relay/pkg/log"
	"github-relay/pkg/msgbuilder"
	"github-relay/pkg/tasklink"
)

type usecase struct {
	tracker     Tracker
	notifierSvc notifier.Service
	linker      *tasklink.Linker
	qaColumnID  string
	l           pkgLog.Logger
}

// ProcessMergedPullRequest extracts the task reference from a merged pull
// request title and moves the matching tracker card to the QA column. A title
// without a task reference is a normal outcome, not an error: the workflow
// stops quietly. A failed move is logged but never fails the caller, and no
// confirmation is sent for it.
func (uc *usecase) ProcessMergedPullRequest(ctx context.Context, input ProcessMergedPullRequestInput) (ProcessMergedPullRequestOutput, error) {
	uc.l.Infof(ctx, "Processing merged PR #%d from %s", input.PRNumber, input.Repository)

	taskID, ok := uc.linker.ExtractID(input.Title)
	if !ok {
		uc.l.Warnf(ctx, "PR #%d title has no task reference, skipping: %q", input.PRNumber, input.Title)
		return ProcessMergedPullRequestOutput{
			Message: "no task reference in PR title",
		}, nil
	}

	if err := uc.tracker.MoveCard(ctx, taskID, uc.qaColumnID); err != nil {
		uc.l.Errorf(ctx, "Failed to move task %s to QA for PR #%d: %v", taskID, input.PRNumber, err)
		return ProcessMergedPullRequestOutput{
			TaskID:  taskID,
			Message: fmt.Sprintf("failed to move task %s", taskID),
		}, nil
	}

	uc.l.Infof(ctx, "Task %s moved to QA column %s", taskID, uc.qaColumnID)

	if err := uc.notifierSvc.Notify(ctx, uc.composeConfirmation(taskID, input)); err != nil {
		uc.l.Errorf(ctx, "Failed to send QA confirmation for task %s: %v", taskID, err)
	}

	return ProcessMergedPullRequestOutput{
		TaskID:  taskID,
		Moved:   true,
		Message: fmt.Sprintf("task %s moved to QA", taskID),
	}, nil
}

func (uc *usecase) composeConfirmation(taskID string, input ProcessMergedPullRequestInput) string {
	return msgbuilder.New().
		Bold("✅ Task moved to QA").
		EmptyLine().
		Section("📋 Task", uc.linker.Link(taskID, fmt.Sprintf("Task %s", taskID))).
		Section("🔀 Pull Request", fmt.Sprintf(`<a href="%s">#%d</a>`, input.PRURL, input.PRNumber)).
		Section("📦 Repository", input.Repository).
		Build()
}
