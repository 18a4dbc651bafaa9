package model

// EventKind is the classified category of a GitHub webhook delivery. Unknown
// header values are preserved verbatim as the kind itself, so classification
// is total and never loses the original string.
type EventKind string

// Every constant equals a real X-GitHub-Event header value handled by the
// switch below. That keeps the verbatim default from ever aliasing a known
// kind: an unrecognized header that happens to spell a constant's value would
// already have been matched by its case.
const (
	KindPing        EventKind = "ping"
	KindPush        EventKind = "push"
	KindPullRequest EventKind = "pull_request"
	KindIssues      EventKind = "issues"
	KindRelease     EventKind = "release"
	KindWorkflow    EventKind = "workflow_run"
)

// ClassifyEvent maps the X-GitHub-Event header value to an EventKind.
// Matching is exact and case-sensitive; anything unrecognized comes back as
// EventKind(header) with Known() == false.
func ClassifyEvent(header string) EventKind {
	switch header {
	case "ping":
		return KindPing
	case "push":
		return KindPush
	case "pull_request":
		return KindPullRequest
	case "issues":
		return KindIssues
	case "release":
		return KindRelease
	case "workflow_run", "workflow_job":
		return KindWorkflow
	default:
		return EventKind(header)
	}
}

// Known reports whether the kind is one of the recognized GitHub event names.
func (k EventKind) Known() bool {
	switch k {
	case KindPing, KindPush, KindPullRequest, KindIssues, KindRelease, KindWorkflow:
		return true
	}
	return false
}
