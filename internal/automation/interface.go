package automation

import (
	"context"
)

// Tracker moves task cards between board columns.
type Tracker interface {
	MoveCard(ctx context.Context, cardID, columnID string) error
}

type UseCase interface {
	// ProcessMergedPullRequest extracts the task reference from a merged pull
	// request and moves the matching tracker card to the QA column.
	ProcessMergedPullRequest(ctx context.Context, input ProcessMergedPullRequestInput) (ProcessMergedPullRequestOutput, error)
}
