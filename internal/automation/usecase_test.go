package automation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github-relay/internal/automation"
	"github-relay/pkg/log"
	"github-relay/pkg/tasklink"
)

type fakeTracker struct {
	calls   []string // "cardID:columnID"
	moveErr error
}

func (f *fakeTracker) MoveCard(_ context.Context, cardID, columnID string) error {
	f.calls = append(f.calls, cardID+":"+columnID)
	return f.moveErr
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func newTestUseCase(t *testing.T, tracker *fakeTracker, n *fakeNotifier) automation.UseCase {
	t.Helper()

	linker, err := tasklink.New(`TASK-(\d+)`, "https://tracker.example.com/card/{id}")
	if err != nil {
		t.Fatalf("tasklink.New: %v", err)
	}

	l := log.Init(log.ZapConfig{Level: "error", Mode: "production", Encoding: "json"})
	return automation.New(tracker, n, linker, "301", l)
}

func TestProcessMergedPullRequestMovesCard(t *testing.T) {
	tracker := &fakeTracker{}
	n := &fakeNotifier{}
	uc := newTestUseCase(t, tracker, n)

	out, err := uc.ProcessMergedPullRequest(context.Background(), automation.ProcessMergedPullRequestInput{
		Title:      "TASK-7: fix login flow",
		PRNumber:   12,
		PRURL:      "https://github.com/acme/app/pull/12",
		Repository: "acme/app",
	})
	if err != nil {
		t.Fatalf("ProcessMergedPullRequest: %v", err)
	}

	if out.TaskID != "7" || !out.Moved {
		t.Errorf("got TaskID=%q Moved=%v, want TaskID=7 Moved=true", out.TaskID, out.Moved)
	}
	if len(tracker.calls) != 1 || tracker.calls[0] != "7:301" {
		t.Errorf("tracker calls = %v, want exactly [7:301]", tracker.calls)
	}
	if len(n.messages) != 1 {
		t.Fatalf("got %d notifications, want 1", len(n.messages))
	}
	msg := n.messages[0]
	for _, want := range []string{"https://tracker.example.com/card/7", "#12", "acme/app"} {
		if !strings.Contains(msg, want) {
			t.Errorf("confirmation missing %q:\n%s", want, msg)
		}
	}
}

func TestProcessMergedPullRequestNoTaskReference(t *testing.T) {
	tracker := &fakeTracker{}
	n := &fakeNotifier{}
	uc := newTestUseCase(t, tracker, n)

	out, err := uc.ProcessMergedPullRequest(context.Background(), automation.ProcessMergedPullRequestInput{
		Title:      "fix typo in README",
		PRNumber:   13,
		Repository: "acme/app",
	})
	if err != nil {
		t.Fatalf("ProcessMergedPullRequest: %v", err)
	}

	if out.Moved || out.TaskID != "" {
		t.Errorf("got TaskID=%q Moved=%v, want empty/false", out.TaskID, out.Moved)
	}
	if len(tracker.calls) != 0 {
		t.Errorf("tracker must not be called, got %v", tracker.calls)
	}
	if len(n.messages) != 0 {
		t.Errorf("no notification expected, got %v", n.messages)
	}
}

func TestProcessMergedPullRequestMoveFailure(t *testing.T) {
	tracker := &fakeTracker{moveErr: errors.New("tracker down")}
	n := &fakeNotifier{}
	uc := newTestUseCase(t, tracker, n)

	out, err := uc.ProcessMergedPullRequest(context.Background(), automation.ProcessMergedPullRequestInput{
		Title:      "TASK-42: broken move",
		PRNumber:   14,
		Repository: "acme/app",
	})
	if err != nil {
		t.Fatalf("move failure must not propagate as error, got %v", err)
	}

	if out.Moved {
		t.Error("Moved must be false when the tracker rejects the move")
	}
	if out.TaskID != "42" {
		t.Errorf("TaskID = %q, want 42", out.TaskID)
	}
	if len(n.messages) != 0 {
		t.Errorf("no confirmation expected on failed move, got %v", n.messages)
	}
}
