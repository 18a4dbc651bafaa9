package webhook

import "github-relay/internal/model"

// GitHub webhook headers.
const (
	HeaderEvent        = "X-GitHub-Event"
	HeaderSignature256 = "X-Hub-Signature-256"
	HeaderDelivery     = "X-GitHub-Delivery"
)

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Shared secret for signature verification
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute; at most 10% (floor 1) admitted as an immediate burst
}

// DecodedEvent is the tagged result of decoding one webhook delivery: the
// classified kind, the composed notification message, and the typed pull
// request payload when Kind == KindPullRequest (nil otherwise). The dispatcher
// switches on Kind; no runtime type inspection anywhere.
type DecodedEvent struct {
	Kind        model.EventKind
	Message     string
	PullRequest *PullRequestEvent
}

// Repository identifies the repository a delivery belongs to.
type Repository struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// User is a GitHub account reference.
type User struct {
	Login string `json:"login"`
	ID    uint64 `json:"id"`
}

// Pusher is the account that performed a push.
type Pusher struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommitIdentity is a commit author or committer.
type CommitIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PushCommit is one commit in a push delivery.
type PushCommit struct {
	ID        string          `json:"id"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
	URL       string          `json:"url"`
	Author    *CommitIdentity `json:"author"`
}

// PushEvent is the decoded push delivery.
type PushEvent struct {
	Ref        string       `json:"ref"` // refs/heads/<branch>
	Before     string       `json:"before"`
	After      string       `json:"after"`
	Compare    string       `json:"compare"`
	Created    bool         `json:"created"`
	Deleted    bool         `json:"deleted"`
	Forced     bool         `json:"forced"`
	HeadCommit *PushCommit  `json:"head_commit"`
	Commits    []PushCommit `json:"commits"`
	Repository Repository   `json:"repository"`
	Pusher     Pusher       `json:"pusher"`
	Sender     User         `json:"sender"`
}

// PullRequestBranch is one side of a pull request.
type PullRequestBranch struct {
	Label string     `json:"label"` // user:branch
	Ref   string     `json:"ref"`
	SHA   string     `json:"sha"`
	Repo  Repository `json:"repo"`
}

// PullRequest is the pull request entity inside a pull_request delivery.
type PullRequest struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`

	State string `json:"state"`
	Draft bool   `json:"draft"`

	User      User   `json:"user"`
	Assignees []User `json:"assignees"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	ClosedAt  string `json:"closed_at"`
	MergedAt  string `json:"merged_at"`

	MergeCommitSHA string `json:"merge_commit_sha"`
	Merged         bool   `json:"merged"`
	MergedBy       *User  `json:"merged_by"`

	Commits      uint64 `json:"commits"`
	Additions    uint64 `json:"additions"`
	Deletions    uint64 `json:"deletions"`
	ChangedFiles uint64 `json:"changed_files"`

	Base PullRequestBranch `json:"base"`
	Head PullRequestBranch `json:"head"`
}

// PullRequestEvent is the decoded pull_request delivery.
type PullRequestEvent struct {
	Action      string      `json:"action"` // opened, closed, reopened, synchronize, ...
	Number      uint64      `json:"number"`
	PullRequest PullRequest `json:"pull_request"`
	Repository  Repository  `json:"repository"`
	Sender      User        `json:"sender"`
}

// Release is the release entity inside a release delivery.
type Release struct {
	ID          uint64 `json:"id"`
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	Body        string `json:"body"`
	Draft       bool   `json:"draft"`
	Prerelease  bool   `json:"prerelease"`
	CreatedAt   string `json:"created_at"`
	PublishedAt string `json:"published_at"`
	HTMLURL     string `json:"html_url"`
	Author      User   `json:"author"`
}

// ReleaseEvent is the decoded release delivery.
type ReleaseEvent struct {
	Action     string     `json:"action"` // published, created, edited, deleted, prereleased
	Release    Release    `json:"release"`
	Repository Repository `json:"repository"`
	Sender     User       `json:"sender"`
}

// WorkflowJob is the job entity of a workflow_job delivery.
type WorkflowJob struct {
	ID         uint64 `json:"id"`
	RunID      uint64 `json:"run_id"`
	Name       string `json:"name"`
	Status     string `json:"status"` // queued, in_progress, completed
	Conclusion string `json:"conclusion"`
	HTMLURL    string `json:"html_url"`
}

// WorkflowCommit is the head commit of a workflow run.
type WorkflowCommit struct {
	ID        string         `json:"id"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Author    CommitIdentity `json:"author"`
}

// WorkflowRun is the run entity of a workflow delivery.
type WorkflowRun struct {
	ID         uint64          `json:"id"`
	Name       string          `json:"name"`
	Status     string          `json:"status"`
	Conclusion string          `json:"conclusion"`
	HTMLURL    string          `json:"html_url"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
	HeadCommit *WorkflowCommit `json:"head_commit"`
}

// WorkflowEvent is the decoded workflow_run / workflow_job delivery. Exactly
// one of WorkflowJob and WorkflowRun is usually present; job-level fields take
// precedence when both are.
type WorkflowEvent struct {
	Action      string       `json:"action"` // queued, in_progress, completed, requested
	WorkflowJob *WorkflowJob `json:"workflow_job"`
	WorkflowRun *WorkflowRun `json:"workflow_run"`
	Repository  Repository   `json:"repository"`
	Sender      User         `json:"sender"`
}
