package kaiten_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github-relay/pkg/kaiten"
)

func TestMoveCard(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req struct {
			ColumnID uint64 `json:"column_id"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		switch {
		case strings.HasSuffix(r.URL.Path, "/cards/500"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasSuffix(r.URL.Path, "/cards/9"):
			// Tracker ignores the move and reports a different column
			json.NewEncoder(w).Encode(kaiten.Card{ID: 9, ColumnID: req.ColumnID + 1})
		default:
			json.NewEncoder(w).Encode(kaiten.Card{ID: 7, ColumnID: req.ColumnID})
		}
	}))
	defer ts.Close()

	client := kaiten.NewClient(context.Background(), ts.URL, "test-token")

	t.Run("Success", func(t *testing.T) {
		if err := client.MoveCard(context.Background(), "7", "123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Move Rejected", func(t *testing.T) {
		err := client.MoveCard(context.Background(), "9", "123")
		if !errors.Is(err, kaiten.ErrMoveRejected) {
			t.Fatalf("expected ErrMoveRejected, got: %v", err)
		}
	})

	t.Run("API Error", func(t *testing.T) {
		err := client.MoveCard(context.Background(), "500", "123")
		if err == nil || errors.Is(err, kaiten.ErrMoveRejected) {
			t.Fatalf("expected transport error, got: %v", err)
		}
	})

	t.Run("Invalid Column ID", func(t *testing.T) {
		if err := client.MoveCard(context.Background(), "7", "not-a-number"); err == nil {
			t.Fatal("expected error for non-numeric column id")
		}
	})
}
