// Package tasklink rewrites task-tracker references in free text into links
// and extracts task ids from single strings (e.g. PR titles). Both operations
// share one configured pattern so display and extraction never diverge.
package tasklink

import (
	"fmt"
	"regexp"
	"strings"
)

// Linker holds the compiled task-reference pattern and the card URL template.
type Linker struct {
	re       *regexp.Regexp
	template string
}

// New compiles the task-reference pattern. The pattern must contain at least
// one capture group yielding the task id; the template must contain an {id}
// placeholder. Errors here are startup-time configuration errors.
func New(pattern, template string) (*Linker, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid task pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("task pattern %q has no capture group for the task id", pattern)
	}
	return &Linker{re: re, template: template}, nil
}

// Linkify replaces every non-overlapping task reference in text with an HTML
// link wrapping the original matched text. Surrounding text is unchanged.
func (l *Linker) Linkify(text string) string {
	return l.re.ReplaceAllStringFunc(text, func(match string) string {
		groups := l.re.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, l.cardURL(groups[1]), match)
	})
}

// ExtractID returns the first capture group of the first match, or ok=false
// when text contains no task reference.
func (l *Linker) ExtractID(text string) (string, bool) {
	groups := l.re.FindStringSubmatch(text)
	if len(groups) < 2 {
		return "", false
	}
	return groups[1], true
}

// Link builds an HTML link to the card with the given id, wrapping text.
func (l *Linker) Link(id, text string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, l.cardURL(id), text)
}

func (l *Linker) cardURL(id string) string {
	return strings.ReplaceAll(l.template, "{id}", id)
}
