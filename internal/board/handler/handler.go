// Package handler exposes the public board read surface over HTTP. It is the
// only unauthenticated surface of the service: requests carry no identity and
// responses carry only what an anonymous visitor may see.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"openboard/internal/board/events"
	"openboard/internal/board/models"
	"openboard/internal/platform/metrics"
	"openboard/internal/platform/middleware"
	dErrors "openboard/pkg/domain-errors"
	"openboard/pkg/platform/httputil"
)

// Service is the snapshot capability the handler depends on.
type Service interface {
	GetPublicBoardSnapshot(ctx context.Context, boardID string) (*models.Snapshot, error)
}

// Notifier receives view events. Nil means events are disabled.
type Notifier interface {
	BoardViewed(ctx context.Context, ev events.BoardViewed)
}

type Handler struct {
	service  Service
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func New(service Service, notifier Notifier, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{service: service, notifier: notifier, logger: logger, metrics: m}
}

// Register mounts the public routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/public/boards/{boardID}", h.getPublicBoard)
}

func (h *Handler) getPublicBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID := chi.URLParam(r, "boardID")

	if !validBoardID(boardID) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid board id"))
		return
	}

	snapshot, err := h.service.GetPublicBoardSnapshot(ctx, boardID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "get public board snapshot failed",
				"request_id", middleware.GetRequestID(ctx),
				"board_id", boardID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementSnapshotsServed()
	if h.notifier != nil {
		// Detach from the request context so a client disconnect does not
		// cancel the produce.
		h.notifier.BoardViewed(context.WithoutCancel(ctx), events.BoardViewed{
			BoardID:   snapshot.Item.ID,
			ProjectID: snapshot.Item.ProjectID,
			ViewedAt:  time.Now().UTC(),
		})
	}

	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

// validBoardID accepts 1-64 chars of [0-9a-zA-Z-]. Anything else is rejected
// before it reaches the store.
func validBoardID(id string) bool {
	if len(id) == 0 || len(id) > 64 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
