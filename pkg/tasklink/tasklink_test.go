package tasklink_test

import (
	"testing"

	"github-relay/pkg/tasklink"
)

func TestNew(t *testing.T) {
	t.Run("Invalid Pattern", func(t *testing.T) {
		if _, err := tasklink.New(`TASK-(\d+`, "https://t/{id}"); err == nil {
			t.Fatal("expected error for malformed pattern")
		}
	})

	t.Run("Missing Capture Group", func(t *testing.T) {
		if _, err := tasklink.New(`TASK-\d+`, "https://t/{id}"); err == nil {
			t.Fatal("expected error for pattern without capture group")
		}
	})
}

func TestLinker(t *testing.T) {
	l, err := tasklink.New(`TASK-(\d+)`, "https://tracker.example.com/card/{id}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("ExtractID First Match", func(t *testing.T) {
		id, ok := l.ExtractID("Fixes TASK-42 urgently")
		if !ok || id != "42" {
			t.Errorf("expected id 42, got %q (ok=%v)", id, ok)
		}
	})

	t.Run("ExtractID No Match", func(t *testing.T) {
		if _, ok := l.ExtractID("fix bug"); ok {
			t.Error("expected no match")
		}
	})

	t.Run("Linkify Wraps Match Leaves Rest", func(t *testing.T) {
		got := l.Linkify("Fixes TASK-42 urgently")
		want := `Fixes <a href="https://tracker.example.com/card/42">TASK-42</a> urgently`
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("Linkify Multiple Non-Overlapping", func(t *testing.T) {
		got := l.Linkify("TASK-1 and TASK-2")
		want := `<a href="https://tracker.example.com/card/1">TASK-1</a> and <a href="https://tracker.example.com/card/2">TASK-2</a>`
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("Linkify No Match Is Identity", func(t *testing.T) {
		if got := l.Linkify("nothing here"); got != "nothing here" {
			t.Errorf("expected identity, got %q", got)
		}
	})

	t.Run("Link By ID", func(t *testing.T) {
		got := l.Link("7", "#7")
		want := `<a href="https://tracker.example.com/card/7">#7</a>`
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}
