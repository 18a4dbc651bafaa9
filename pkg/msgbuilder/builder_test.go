package msgbuilder_test

import (
	"strings"
	"testing"

	"github-relay/pkg/msgbuilder"
)

func TestBuilder(t *testing.T) {
	t.Run("Join Order", func(t *testing.T) {
		got := msgbuilder.New().
			Bold("Title").
			EmptyLine().
			Line("body").
			Build()

		want := "<b>Title</b>\n\nbody"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("Sections", func(t *testing.T) {
		got := msgbuilder.New().
			Section("Repo", "owner/repo").
			SectionBold("Author", "octocat").
			SectionCode("Branch", "main").
			Build()

		want := "<b>Repo:</b> owner/repo\n<b>Author:</b> <b>octocat</b>\n<b>Branch:</b> <code>main</code>"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("Escape Applies To Formatted Helpers Only", func(t *testing.T) {
		b := msgbuilder.New().WithHTMLEscape(true).
			Bold(`a<b>&"'`).
			Raw("<i>kept</i>").
			Link("<x>", "https://example.com")

		got := b.Build()
		if !strings.Contains(got, "<b>a&lt;b&gt;&amp;&quot;&#x27;</b>") {
			t.Errorf("bold text not escaped: %q", got)
		}
		if !strings.Contains(got, "<i>kept</i>") {
			t.Errorf("raw text must bypass escaping: %q", got)
		}
		if !strings.Contains(got, `<a href="https://example.com"><x></a>`) {
			t.Errorf("link text must bypass escaping: %q", got)
		}
	})

	t.Run("No Escape By Default", func(t *testing.T) {
		got := msgbuilder.New().Code("a<b").Build()
		if got != "<code>a<b</code>" {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("Truncation", func(t *testing.T) {
		got := msgbuilder.New().WithMaxLength(10).Line("1234567890123").Build()
		if len(got) != 10 {
			t.Fatalf("expected 10 chars, got %d (%q)", len(got), got)
		}
		if got != "1234567..." {
			t.Errorf("expected %q, got %q", "1234567...", got)
		}
	})

	t.Run("Truncation Below Ellipsis Width", func(t *testing.T) {
		cases := []struct {
			max  int
			want string
		}{
			{1, "h"},
			{2, "he"},
			{3, "hel"},
			{4, "h..."},
		}
		for _, tc := range cases {
			got := msgbuilder.New().WithMaxLength(tc.max).Line("hello world").Build()
			if got != tc.want {
				t.Errorf("WithMaxLength(%d): expected %q, got %q", tc.max, tc.want, got)
			}
			if len(got) > tc.max {
				t.Errorf("WithMaxLength(%d): output %q exceeds the limit", tc.max, got)
			}
		}
	})

	t.Run("No Truncation When Under Limit", func(t *testing.T) {
		got := msgbuilder.New().WithMaxLength(100).Line("short").Build()
		if got != "short" {
			t.Errorf("expected %q, got %q", "short", got)
		}
	})

	t.Run("Build Is Idempotent", func(t *testing.T) {
		b := msgbuilder.New().WithMaxLength(12).Bold("hello").Line("world again")
		first := b.Build()
		second := b.Build()
		if first != second {
			t.Errorf("two renders differ: %q vs %q", first, second)
		}
	})
}
