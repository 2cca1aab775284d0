// Package service implements the public read-model projector: given a board
// id, it assembles a consistent, privacy-filtered snapshot of the board's
// entire object graph for unauthenticated consumption.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"openboard/internal/board/models"
	"openboard/internal/board/present"
	"openboard/internal/platform/metrics"
	dErrors "openboard/pkg/domain-errors"
	"openboard/pkg/ids"
	"openboard/pkg/platform/sentinel"
)

// Store is the set of query capabilities the projector consumes. Every method
// takes an id or id set and returns an ordered, possibly empty collection.
// Implementations are read-only from this package's perspective.
type Store interface {
	GetBoardPathToProject(ctx context.Context, boardID string) (models.BoardPath, error)
	GetBoardMembershipsByBoardID(ctx context.Context, boardID string) ([]models.BoardMembership, error)
	GetLabelsByBoardID(ctx context.Context, boardID string) ([]models.Label, error)
	GetListsByBoardID(ctx context.Context, boardID string) ([]models.List, error)
	GetCardsByListIDs(ctx context.Context, listIDs []string) ([]models.Card, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) ([]models.User, error)
	GetCardMembershipsByCardIDs(ctx context.Context, cardIDs []string) ([]models.CardMembership, error)
	GetCardLabelsByCardIDs(ctx context.Context, cardIDs []string) ([]models.CardLabel, error)
	GetTaskListsByCardIDs(ctx context.Context, cardIDs []string) ([]models.TaskList, error)
	GetTasksByTaskListIDs(ctx context.Context, taskListIDs []string) ([]models.Task, error)
	GetAttachmentsByCardIDs(ctx context.Context, cardIDs []string) ([]models.Attachment, error)
	GetCustomFieldGroupsByBoardID(ctx context.Context, boardID string) ([]models.CustomFieldGroup, error)
	GetCustomFieldGroupsByCardIDs(ctx context.Context, cardIDs []string) ([]models.CustomFieldGroup, error)
	GetCustomFieldsByGroupIDs(ctx context.Context, groupIDs []string) ([]models.CustomField, error)
	GetCustomFieldValuesByCardIDs(ctx context.Context, cardIDs []string) ([]models.CustomFieldValue, error)
	Ping(ctx context.Context) error
}

// ListPolicy decides whether a list counts as finite (an ordinary workflow
// list whose cards belong in the projection).
type ListPolicy func(models.List) bool

// Projector assembles public board snapshots. It performs no retries and no
// timeouts of its own; it is bounded by the caller's request lifecycle.
type Projector struct {
	store   Store
	finite  ListPolicy
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Projector.
type Option func(*Projector)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Projector) { p.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Projector) { p.metrics = m }
}

// WithListPolicy overrides the finite-list predicate.
func WithListPolicy(policy ListPolicy) Option {
	return func(p *Projector) { p.finite = policy }
}

func New(store Store, opts ...Option) *Projector {
	p := &Projector{
		store:  store,
		finite: models.IsListFinite,
		logger: slog.Default(),
		tracer: otel.Tracer("openboard/projector"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetPublicBoardSnapshot resolves the board, verifies it is public, and
// collects every record transitively reachable from it.
//
// Scoping is the backbone: finite lists are derived from the board, cards are
// fetched by the finite list ids only, and every subordinate collection is
// fetched by the resulting card id set. A record belonging to another board
// can never appear because its id is never in any fetched set.
//
// A private board returns the same not-found error as a nonexistent one, so
// an unauthenticated caller cannot distinguish the two.
func (p *Projector) GetPublicBoardSnapshot(ctx context.Context, boardID string) (*models.Snapshot, error) {
	ctx, span := p.tracer.Start(ctx, "GetPublicBoardSnapshot")
	defer span.End()

	path, err := p.store.GetBoardPathToProject(ctx, boardID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			p.metrics.IncrementBoardNotFound()
			return nil, dErrors.New(dErrors.CodeNotFound, "board not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve board")
	}
	if !path.Board.IsPublic {
		p.metrics.IncrementBoardNotFound()
		return nil, dErrors.New(dErrors.CodeNotFound, "board not found")
	}

	board := path.Board

	// Board-scoped collections have no mutual dependency.
	var (
		boardMemberships []models.BoardMembership
		labels           []models.Label
		lists            []models.List
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		boardMemberships, err = p.store.GetBoardMembershipsByBoardID(gctx, board.ID)
		return err
	})
	g.Go(func() (err error) {
		labels, err = p.store.GetLabelsByBoardID(gctx, board.ID)
		return err
	})
	g.Go(func() (err error) {
		lists, err = p.store.GetListsByBoardID(gctx, board.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "fetch board collections")
	}

	// Cards are scoped to finite lists only: archive/trash cards must never
	// reach the envelope.
	var finiteListIDs []string
	for _, l := range lists {
		if p.finite(l) {
			finiteListIDs = append(finiteListIDs, l.ID)
		}
	}
	cards, err := p.store.GetCardsByListIDs(ctx, finiteListIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "fetch cards")
	}
	cardIDs := ids.Collect(cards, func(c models.Card) string { return c.ID })

	userIDs := ids.Union(
		ids.Collect(boardMemberships, func(m models.BoardMembership) string { return m.UserID }),
		ids.Collect(cards, func(c models.Card) string { return c.CreatorUserID }),
	)

	// Card-scoped collections fan out concurrently; chains with an internal
	// dependency (task lists before tasks, groups before fields) stay
	// sequential within their goroutine.
	var (
		users             []models.User
		cardMemberships   []models.CardMembership
		cardLabels        []models.CardLabel
		taskLists         []models.TaskList
		tasks             []models.Task
		attachments       []models.Attachment
		customFieldGroups []models.CustomFieldGroup
		customFields      []models.CustomField
		customFieldValues []models.CustomFieldValue
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = p.store.GetUsersByIDs(gctx, userIDs)
		return err
	})
	g.Go(func() (err error) {
		cardMemberships, err = p.store.GetCardMembershipsByCardIDs(gctx, cardIDs)
		return err
	})
	g.Go(func() (err error) {
		cardLabels, err = p.store.GetCardLabelsByCardIDs(gctx, cardIDs)
		return err
	})
	g.Go(func() error {
		var err error
		taskLists, err = p.store.GetTaskListsByCardIDs(gctx, cardIDs)
		if err != nil {
			return err
		}
		taskListIDs := ids.Collect(taskLists, func(tl models.TaskList) string { return tl.ID })
		tasks, err = p.store.GetTasksByTaskListIDs(gctx, taskListIDs)
		return err
	})
	g.Go(func() (err error) {
		attachments, err = p.store.GetAttachmentsByCardIDs(gctx, cardIDs)
		return err
	})
	g.Go(func() error {
		boardGroups, err := p.store.GetCustomFieldGroupsByBoardID(gctx, board.ID)
		if err != nil {
			return err
		}
		cardGroups, err := p.store.GetCustomFieldGroupsByCardIDs(gctx, cardIDs)
		if err != nil {
			return err
		}
		customFieldGroups = append(boardGroups, cardGroups...)
		groupIDs := ids.Collect(customFieldGroups, func(grp models.CustomFieldGroup) string { return grp.ID })
		customFields, err = p.store.GetCustomFieldsByGroupIDs(gctx, groupIDs)
		return err
	})
	g.Go(func() (err error) {
		customFieldValues, err = p.store.GetCustomFieldValuesByCardIDs(gctx, cardIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "fetch card collections")
	}

	// Subscription state is per-viewer and there is no viewer here. Applied
	// last so no upstream query can leave a stale value.
	for i := range cards {
		cards[i].IsSubscribed = false
	}

	// Every collection is present in the envelope, empty or not, so clients
	// never have to null-check.
	snapshot := &models.Snapshot{
		Item: board,
		Included: models.Included{
			Users:             present.Users(users, present.ViewerPublic),
			Projects:          []models.Project{path.Project},
			BoardMemberships:  orEmpty(boardMemberships),
			Labels:            orEmpty(labels),
			Lists:             orEmpty(lists),
			Cards:             orEmpty(cards),
			CardMemberships:   orEmpty(cardMemberships),
			CardLabels:        orEmpty(cardLabels),
			TaskLists:         orEmpty(taskLists),
			Tasks:             orEmpty(tasks),
			Attachments:       present.Attachments(attachments),
			CustomFieldGroups: orEmpty(customFieldGroups),
			CustomFields:      orEmpty(customFields),
			CustomFieldValues: orEmpty(customFieldValues),
		},
	}

	return snapshot, nil
}

// Health reports whether the backing store is reachable.
func (p *Projector) Health(ctx context.Context) error {
	return p.store.Ping(ctx)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
