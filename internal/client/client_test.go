package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openboard/internal/board/models"
)

func TestGetPublicBoard(t *testing.T) {
	ctx := context.Background()
	snapshot := models.Snapshot{
		Item: models.Board{ID: "b1", ProjectID: "p1", Name: "Roadmap", IsPublic: true},
		Included: models.Included{
			Projects: []models.Project{{ID: "p1", Name: "Acme"}},
			Lists:    []models.List{{ID: "l1", BoardID: "b1", Name: "To Do", Position: 1, Type: models.ListTypeActive}},
		},
	}

	t.Run("decodes a 200 envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/public/boards/b1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(snapshot)
		}))
		defer srv.Close()

		got, err := New(srv.URL).GetPublicBoard(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, &snapshot, got)
	})

	t.Run("every failure collapses to not found", func(t *testing.T) {
		for _, status := range []int{http.StatusNotFound, http.StatusBadRequest, http.StatusInternalServerError} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			_, err := New(srv.URL).GetPublicBoard(ctx, "b1")
			srv.Close()
			assert.ErrorIs(t, err, ErrBoardNotFound, "status %d", status)
		}
	})

	t.Run("board id is path escaped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/public/boards/a%2Fb", r.URL.EscapedPath())
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := New(srv.URL).GetPublicBoard(ctx, "a/b")
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})
}
