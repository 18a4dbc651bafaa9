package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github-relay/internal/model"
	"github-relay/pkg/msgbuilder"
	"github-relay/pkg/tasklink"
)

// Telegram rejects messages over 4096 characters; composed messages are capped
// below that so truncation never produces a delivery failure.
const maxMessageLength = 4096

// At most this many commits are listed in a push message.
const maxListedCommits = 5

const timeLayout = "02.01.2006 15:04:05"

// GitHubDecoder decodes GitHub webhook payloads into typed events and
// composes the outbound notification message for each.
type GitHubDecoder struct {
	linker *tasklink.Linker
}

func NewGitHubDecoder(linker *tasklink.Linker) *GitHubDecoder {
	return &GitHubDecoder{linker: linker}
}

// DecodePush decodes a push delivery and composes its message.
func (d *GitHubDecoder) DecodePush(payload []byte) (*DecodedEvent, error) {
	var event PushEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse push event: %w", err)
	}
	if event.Repository.FullName == "" {
		return nil, fmt.Errorf("push event missing repository full_name")
	}
	if event.Pusher.Name == "" {
		return nil, fmt.Errorf("push event missing pusher name")
	}

	return &DecodedEvent{
		Kind:    model.KindPush,
		Message: d.composePush(&event),
	}, nil
}

// DecodePullRequest decodes a pull_request delivery and composes its message.
func (d *GitHubDecoder) DecodePullRequest(payload []byte) (*DecodedEvent, error) {
	var event PullRequestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse pull request event: %w", err)
	}
	if event.Action == "" {
		return nil, fmt.Errorf("pull request event missing action")
	}
	if event.Repository.FullName == "" {
		return nil, fmt.Errorf("pull request event missing repository full_name")
	}
	if event.PullRequest.User.Login == "" {
		return nil, fmt.Errorf("pull request event missing author login")
	}

	return &DecodedEvent{
		Kind:        model.KindPullRequest,
		Message:     d.composePullRequest(&event),
		PullRequest: &event,
	}, nil
}

// DecodeRelease decodes a release delivery and composes its message.
func (d *GitHubDecoder) DecodeRelease(payload []byte) (*DecodedEvent, error) {
	var event ReleaseEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse release event: %w", err)
	}
	if event.Action == "" {
		return nil, fmt.Errorf("release event missing action")
	}
	if event.Repository.FullName == "" {
		return nil, fmt.Errorf("release event missing repository full_name")
	}
	if event.Release.Author.Login == "" {
		return nil, fmt.Errorf("release event missing author login")
	}

	return &DecodedEvent{
		Kind:    model.KindRelease,
		Message: d.composeRelease(&event),
	}, nil
}

// DecodeWorkflow decodes a workflow_run / workflow_job delivery and composes
// its message.
func (d *GitHubDecoder) DecodeWorkflow(payload []byte) (*DecodedEvent, error) {
	var event WorkflowEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse workflow event: %w", err)
	}
	if event.Action == "" {
		return nil, fmt.Errorf("workflow event missing action")
	}
	if event.Repository.FullName == "" {
		return nil, fmt.Errorf("workflow event missing repository full_name")
	}
	if event.Sender.Login == "" {
		return nil, fmt.Errorf("workflow event missing sender login")
	}

	return &DecodedEvent{
		Kind:    model.KindWorkflow,
		Message: d.composeWorkflow(&event),
	}, nil
}

// formatTime renders an RFC3339 timestamp in local time, or "" when the value
// is absent or unparsable (timestamps are optional metadata, never an error).
func formatTime(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return ""
	}
	return t.Local().Format(timeLayout)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func repoSection(b *msgbuilder.Builder, repo Repository) *msgbuilder.Builder {
	if repo.HTMLURL != "" {
		return b.Section("📦 Repository", fmt.Sprintf(`<a href="%s">%s</a>`, repo.HTMLURL, repo.FullName))
	}
	return b.Section("📦 Repository", repo.FullName)
}

func (d *GitHubDecoder) composePush(event *PushEvent) string {
	branch := strings.TrimPrefix(event.Ref, "refs/heads/")

	var title string
	switch {
	case event.Deleted:
		title = "🗑️ Branch deleted"
	case event.Created:
		title = "🌱 New branch created"
	case event.Forced:
		title = "⚠️ Force push"
	default:
		title = "🚀 New changes"
	}

	b := msgbuilder.New().WithHTMLEscape(true).WithMaxLength(maxMessageLength)
	b = b.Bold(title)

	if event.HeadCommit != nil {
		if when := formatTime(event.HeadCommit.Timestamp); when != "" {
			b = b.Line(fmt.Sprintf("🕒 <i>%s</i>", when))
		}
	}

	b = b.EmptyLine()
	b = repoSection(b, event.Repository)
	b = b.SectionCode("🌿 Branch", branch)
	b = b.SectionBold("👤 Author", event.Pusher.Name)
	b = b.Section("🔢 Commits", fmt.Sprintf("%d", len(event.Commits))).EmptyLine()

	if len(event.Commits) > 0 {
		b = b.Bold("📝 Commits:")

		for i, commit := range event.Commits {
			if i == maxListedCommits {
				break
			}
			author := "unknown"
			if commit.Author != nil && commit.Author.Name != "" {
				author = commit.Author.Name
			}
			message := d.linker.Linkify(msgbuilder.EscapeHTML(firstLine(commit.Message)))
			b = b.Line(fmt.Sprintf("• <code>%s</code> — %s <i>(%s)</i>", shortSHA(commit.ID), message, author))
		}

		if extra := len(event.Commits) - maxListedCommits; extra > 0 {
			b = b.Line(fmt.Sprintf("… and %d more commits", extra))
		}

		b = b.EmptyLine()
	}

	if event.Compare != "" {
		b = b.Section("🔗 Compare", fmt.Sprintf(`<a href="%s">View changes</a>`, event.Compare))
	}

	return b.Build()
}

func pullRequestTitle(event *PullRequestEvent) string {
	switch event.Action {
	case "opened":
		return "🆕 Pull Request opened"
	case "closed":
		if event.PullRequest.Merged {
			return "🎉 Pull Request merged"
		}
		return "❌ Pull Request closed"
	case "reopened":
		return "♻️ Pull Request reopened"
	case "synchronize":
		return "🔄 Pull Request updated"
	default:
		return fmt.Sprintf("ℹ️ Pull Request %s", event.Action)
	}
}

func pullRequestState(event *PullRequestEvent) string {
	switch {
	case event.PullRequest.State == "open":
		return "🟢 Open"
	case event.PullRequest.State == "closed" && event.PullRequest.Merged:
		return "🎉 Merged"
	case event.PullRequest.State == "closed":
		return "🔴 Closed"
	default:
		return "❔ Unknown"
	}
}

func (d *GitHubDecoder) composePullRequest(event *PullRequestEvent) string {
	pr := &event.PullRequest

	b := msgbuilder.New().WithHTMLEscape(true).WithMaxLength(maxMessageLength)
	b = b.Bold(fmt.Sprintf("%s #%d", pullRequestTitle(event), event.Number))

	if pr.Draft {
		b = b.Line("📝 <i>Draft Pull Request</i>")
	}

	b = b.SectionBold("👤 Author", pr.User.Login)
	b = b.EmptyLine()
	b = b.Section("📝 Title", d.linker.Linkify(msgbuilder.EscapeHTML(pr.Title)))
	b = b.EmptyLine()

	if when := formatTime(pr.CreatedAt); when != "" {
		b = b.Line(fmt.Sprintf("🕒 <i>Created: %s</i>", when))
	}
	if when := formatTime(pr.UpdatedAt); when != "" {
		b = b.Line(fmt.Sprintf("🔄 <i>Updated: %s</i>", when))
	}
	if when := formatTime(pr.MergedAt); when != "" {
		b = b.Line(fmt.Sprintf("🎉 <i>Merged: %s</i>", when))
	}

	b = b.EmptyLine()
	b = b.Section("🔀 Branches", fmt.Sprintf("<code>%s</code> → <code>%s</code>", pr.Head.Label, pr.Base.Label))

	if pr.Head.Repo.FullName != pr.Base.Repo.FullName {
		b = b.Line("⚠️ Pull Request from a fork")
	}

	b = b.EmptyLine()
	b = b.Section("📌 State", pullRequestState(event))

	if pr.MergedBy != nil {
		b = b.Section("🎉 Merged by", pr.MergedBy.Login)
	}
	if pr.MergeCommitSHA != "" {
		b = b.Section("🔐 Merge commit", fmt.Sprintf("<code>%s</code>", shortSHA(pr.MergeCommitSHA)))
	}

	if len(pr.Assignees) > 0 {
		logins := make([]string, 0, len(pr.Assignees))
		for _, u := range pr.Assignees {
			logins = append(logins, u.Login)
		}
		b = b.Section("👥 Assignees", strings.Join(logins, ", "))
	}

	b = b.Section("⚡ Triggered by", event.Sender.Login)
	b = b.EmptyLine()
	b = b.Section("📊 Changes", fmt.Sprintf(
		"Commits: <b>%d</b>\n➕ Added: <b>%d</b>\n➖ Removed: <b>%d</b>\n📂 Files: <b>%d</b>",
		pr.Commits, pr.Additions, pr.Deletions, pr.ChangedFiles,
	))
	b = b.EmptyLine()
	b = b.Section("🔗 Pull Request", fmt.Sprintf(`<a href="%s">Open</a>`, pr.HTMLURL))
	b = b.EmptyLine()
	b = repoSection(b, event.Repository)

	return b.Build()
}

func releaseTitle(event *ReleaseEvent) string {
	switch event.Action {
	case "published":
		return "🚀 Release published"
	case "created":
		if event.Release.Draft {
			return "📝 Release draft created"
		}
		if event.Release.Prerelease {
			return "⚡ Pre-release created"
		}
		return "🆕 Release created"
	case "edited":
		return "✏️ Release edited"
	case "deleted":
		return "🗑️ Release deleted"
	case "prereleased":
		return "⚡ Pre-release published"
	default:
		return fmt.Sprintf("ℹ️ Release %s", event.Action)
	}
}

func (d *GitHubDecoder) composeRelease(event *ReleaseEvent) string {
	b := msgbuilder.New().WithHTMLEscape(true).WithMaxLength(maxMessageLength)
	b = b.Bold(releaseTitle(event))

	// published_at wins over created_at when both are set
	when := formatTime(event.Release.PublishedAt)
	if when == "" {
		when = formatTime(event.Release.CreatedAt)
	}
	if when != "" {
		b = b.Line(fmt.Sprintf("🕒 <i>%s</i>", when))
	}

	b = b.EmptyLine()
	b = repoSection(b, event.Repository)
	b = b.SectionBold("👤 Author", event.Release.Author.Login)
	b = b.SectionCode("🏷️ Tag", event.Release.TagName)

	if event.Release.Name != "" {
		b = b.Section("📌 Name", event.Release.Name)
	}

	b = b.Section("🔗 Link", fmt.Sprintf(`<a href="%s">Open</a>`, event.Release.HTMLURL))

	return b.Build()
}

func workflowTitle(event *WorkflowEvent) string {
	switch event.Action {
	case "queued":
		return "⏳ Workflow queued"
	case "in_progress":
		return "🏃 Workflow running"
	case "completed":
		conclusion := event.conclusion()
		switch conclusion {
		case "success":
			return "✅ Workflow completed"
		case "failure":
			return "❌ Workflow failed"
		case "cancelled":
			return "⚠️ Workflow cancelled"
		default:
			return fmt.Sprintf("ℹ️ Workflow completed (%s)", conclusion)
		}
	default:
		return fmt.Sprintf("ℹ️ Workflow %s", event.Action)
	}
}

// conclusion prefers the job-level value when a job context is present and
// falls back to the run.
func (e *WorkflowEvent) conclusion() string {
	if e.WorkflowJob != nil && e.WorkflowJob.Conclusion != "" {
		return e.WorkflowJob.Conclusion
	}
	if e.WorkflowRun != nil && e.WorkflowRun.Conclusion != "" {
		return e.WorkflowRun.Conclusion
	}
	return "unknown"
}

func (d *GitHubDecoder) composeWorkflow(event *WorkflowEvent) string {
	b := msgbuilder.New().WithHTMLEscape(true).WithMaxLength(maxMessageLength)
	b = b.Bold(workflowTitle(event))

	if event.WorkflowRun != nil {
		if when := formatTime(event.WorkflowRun.UpdatedAt); when != "" {
			b = b.Line(fmt.Sprintf("🕒 <i>%s</i>", when))
		}
	}

	b = b.EmptyLine()
	b = repoSection(b, event.Repository)
	b = b.SectionBold("👤 Triggered by", event.Sender.Login)

	// Job fields win over run fields when a job context is present
	switch {
	case event.WorkflowJob != nil:
		b = b.Section("⚙️ Job", event.WorkflowJob.Name)
		b = b.SectionCode("📌 Status", event.WorkflowJob.Status)
		b = b.Section("🔗 Link", fmt.Sprintf(`<a href="%s">Open</a>`, event.WorkflowJob.HTMLURL))
	case event.WorkflowRun != nil:
		b = b.Section("⚙️ Workflow", event.WorkflowRun.Name)
		b = b.SectionCode("📌 Status", event.WorkflowRun.Status)
		b = b.Section("🔗 Link", fmt.Sprintf(`<a href="%s">Open</a>`, event.WorkflowRun.HTMLURL))
	}

	if event.WorkflowRun != nil && event.WorkflowRun.HeadCommit != nil {
		message := d.linker.Linkify(msgbuilder.EscapeHTML(firstLine(event.WorkflowRun.HeadCommit.Message)))
		b = b.Section("📝 Message", message)
	}

	return b.Build()
}
