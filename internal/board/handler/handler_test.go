package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"openboard/internal/board/handler/mocks"
	"openboard/internal/board/models"
	"openboard/internal/board/service"
	"openboard/internal/board/store"
	dErrors "openboard/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,Notifier
type PublicBoardHandlerSuite struct {
	suite.Suite
}

func TestPublicBoardHandlerSuite(t *testing.T) {
	suite.Run(t, new(PublicBoardHandlerSuite))
}

func newTestRouter(t *testing.T, notifier Notifier) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(mockService, notifier, logger, nil)
	r := chi.NewRouter()
	h.Register(r)
	return r, mockService
}

func (s *PublicBoardHandlerSuite) TestGetPublicBoardOK() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	notifier := mocks.NewMockNotifier(ctrl)
	r, mockService := newTestRouter(s.T(), notifier)

	snapshot := &models.Snapshot{
		Item: models.Board{ID: "board-1", ProjectID: "proj-1", Name: "Roadmap", IsPublic: true},
		Included: models.Included{
			Projects: []models.Project{{ID: "proj-1", Name: "Acme"}},
			Lists:    []models.List{{ID: "list-1", BoardID: "board-1", Name: "To Do", Position: 1, Type: models.ListTypeActive}},
		},
	}
	mockService.EXPECT().GetPublicBoardSnapshot(gomock.Any(), "board-1").Return(snapshot, nil)
	notifier.EXPECT().BoardViewed(gomock.Any(), gomock.Any())

	req := httptest.NewRequest(http.MethodGet, "/public/boards/board-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "application/json", w.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	item := resp["item"].(map[string]any)
	assert.Equal(s.T(), "board-1", item["id"])
	included := resp["included"].(map[string]any)
	assert.Len(s.T(), included["lists"], 1)
}

func (s *PublicBoardHandlerSuite) TestInvalidBoardIDRejectedBeforeService() {
	r, _ := newTestRouter(s.T(), nil)

	req := httptest.NewRequest(http.MethodGet, "/public/boards/bad%20id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "bad_request", resp["error"])
}

func (s *PublicBoardHandlerSuite) TestNotFound() {
	r, mockService := newTestRouter(s.T(), nil)
	mockService.EXPECT().
		GetPublicBoardSnapshot(gomock.Any(), "missing").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "board not found"))

	req := httptest.NewRequest(http.MethodGet, "/public/boards/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "not_found", resp["error"])
	assert.Equal(s.T(), "board not found", resp["error_description"])
}

func (s *PublicBoardHandlerSuite) TestInternalErrorHidesDetail() {
	r, mockService := newTestRouter(s.T(), nil)
	mockService.EXPECT().
		GetPublicBoardSnapshot(gomock.Any(), "board-1").
		Return(nil, errors.New("pq: connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/public/boards/board-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "internal_error", resp["error"])
	assert.NotContains(s.T(), w.Body.String(), "connection refused")
}

func (s *PublicBoardHandlerSuite) TestValidBoardID() {
	assert.True(s.T(), validBoardID("abc-123"))
	assert.True(s.T(), validBoardID("A"))
	assert.False(s.T(), validBoardID(""))
	assert.False(s.T(), validBoardID("has space"))
	assert.False(s.T(), validBoardID("semi;colon"))
	assert.False(s.T(), validBoardID(string(make([]byte, 65))))
}

// TestEndToEndProjection drives the full stack below the router: real
// projector over a seeded in-memory store, no mocks.
func (s *PublicBoardHandlerSuite) TestEndToEndProjection() {
	st := store.NewInMemory()
	st.AddProject(models.Project{ID: "p1", Name: "Acme"})
	st.AddBoard(models.Board{ID: "b1", ProjectID: "p1", Name: "Roadmap", IsPublic: true})
	st.AddUser(models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"})
	st.AddBoardMembership(models.BoardMembership{ID: "m1", BoardID: "b1", UserID: "u1"})
	st.AddLabel(models.Label{ID: "lb1", BoardID: "b1", Name: "bug", Color: "berry-red"})
	st.AddLabel(models.Label{ID: "lb2", BoardID: "b1", Name: "idea", Color: "lagoon-blue"})
	st.AddList(models.List{ID: "l1", BoardID: "b1", Name: "To Do", Position: 1, Type: models.ListTypeActive})
	st.AddList(models.List{ID: "l2", BoardID: "b1", Name: "Doing", Position: 2, Type: models.ListTypeActive})
	st.AddCard(models.Card{ID: "c1", ListID: "l1", Name: "One", Position: 1, IsSubscribed: true})
	st.AddCard(models.Card{ID: "c2", ListID: "l1", Name: "Two", Position: 2})
	st.AddCard(models.Card{ID: "c3", ListID: "l2", Name: "Three", Position: 1})
	st.AddCardLabel(models.CardLabel{ID: "cl1", CardID: "c1", LabelID: "lb1"})
	st.AddTaskList(models.TaskList{ID: "tl1", CardID: "c1", Name: "Checklist"})
	st.AddTask(models.Task{ID: "t1", TaskListID: "tl1", Name: "step one"})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(service.New(st), nil, logger, nil)
	r := chi.NewRouter()
	h.Register(r)

	req := httptest.NewRequest(http.MethodGet, "/public/boards/b1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusOK, w.Code)

	var snap models.Snapshot
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(s.T(), "b1", snap.Item.ID)
	assert.Len(s.T(), snap.Included.Lists, 2)
	assert.Len(s.T(), snap.Included.Cards, 3)
	assert.Len(s.T(), snap.Included.Labels, 2)
	assert.Len(s.T(), snap.Included.TaskLists, 1)
	assert.Len(s.T(), snap.Included.Tasks, 1)
	for _, c := range snap.Included.Cards {
		assert.False(s.T(), c.IsSubscribed)
	}
	assert.NotContains(s.T(), w.Body.String(), "@example.com")
}
