package automation

// ProcessMergedPullRequestInput is input for merged pull request processing
type ProcessMergedPullRequestInput struct {
	Title      string // Pull request title, searched for a task reference
	PRNumber   uint64 // Pull request number
	PRURL      string // Pull request HTML URL
	Repository string // Repository full name (e.g., "user/repo")
}

// ProcessMergedPullRequestOutput is result of merged pull request processing
type ProcessMergedPullRequestOutput struct {
	TaskID  string // Extracted task id, empty when the title has no reference
	Moved   bool   // Whether the card was moved to the QA column
	Message string // Summary message
}
