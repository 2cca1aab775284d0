package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"openboard/internal/board/models"
	"openboard/pkg/platform/sentinel"
)

// Postgres implements the board query interfaces over pgx. Every query is
// scoped by an explicit id or id set; there are no global reads, so a record
// from another board can never enter a result by construction.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) GetBoardPathToProject(ctx context.Context, boardID string) (models.BoardPath, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT b.id, b.project_id, b.name, b.is_public, p.id, p.name
		FROM board b
		JOIN project p ON p.id = b.project_id
		WHERE b.id = $1`, boardID)

	var path models.BoardPath
	err := row.Scan(
		&path.Board.ID, &path.Board.ProjectID, &path.Board.Name, &path.Board.IsPublic,
		&path.Project.ID, &path.Project.Name,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.BoardPath{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.BoardPath{}, fmt.Errorf("get board path: %w", err)
	}
	return path, nil
}

func (s *Postgres) GetBoardMembershipsByBoardID(ctx context.Context, boardID string) ([]models.BoardMembership, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, board_id, user_id, role
		FROM board_membership
		WHERE board_id = $1
		ORDER BY id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("get board memberships: %w", err)
	}
	defer rows.Close()

	var out []models.BoardMembership
	for rows.Next() {
		var m models.BoardMembership
		if err := rows.Scan(&m.ID, &m.BoardID, &m.UserID, &m.Role); err != nil {
			return nil, fmt.Errorf("scan board membership: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Postgres) GetLabelsByBoardID(ctx context.Context, boardID string) ([]models.Label, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, board_id, name, color
		FROM label
		WHERE board_id = $1
		ORDER BY id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("get labels: %w", err)
	}
	defer rows.Close()

	var out []models.Label
	for rows.Next() {
		var l models.Label
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Postgres) GetListsByBoardID(ctx context.Context, boardID string) ([]models.List, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, board_id, name, position, type
		FROM list
		WHERE board_id = $1
		ORDER BY position, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("get lists: %w", err)
	}
	defer rows.Close()

	var out []models.List
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Name, &l.Position, &l.Type); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Postgres) GetCardsByListIDs(ctx context.Context, listIDs []string) ([]models.Card, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, list_id, name, description, position, due_date, is_due_completed,
		       stopwatch_total, stopwatch_started_at, comments_total, attachments_total,
		       is_subscribed, creator_user_id
		FROM card
		WHERE list_id = ANY($1)
		ORDER BY position, id`, listIDs)
	if err != nil {
		return nil, fmt.Errorf("get cards: %w", err)
	}
	defer rows.Close()

	var out []models.Card
	for rows.Next() {
		var (
			c                  models.Card
			stopwatchTotal     *int64
			stopwatchStartedAt *time.Time
		)
		if err := rows.Scan(
			&c.ID, &c.ListID, &c.Name, &c.Description, &c.Position,
			&c.DueDate, &c.IsDueCompleted,
			&stopwatchTotal, &stopwatchStartedAt,
			&c.CommentsTotal, &c.AttachmentsTotal,
			&c.IsSubscribed, &c.CreatorUserID,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		if stopwatchTotal != nil {
			c.Stopwatch = &models.Stopwatch{Total: *stopwatchTotal, StartedAt: stopwatchStartedAt}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) GetUsersByIDs(ctx context.Context, userIDs []string) ([]models.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	// array_position keeps results in requested order so envelopes stay
	// byte-stable across calls.
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, COALESCE(avatar_url, '')
		FROM account
		WHERE id = ANY($1)
		ORDER BY array_position($1, id)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Postgres) GetCardMembershipsByCardIDs(ctx context.Context, cardIDs []string) ([]models.CardMembership, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, card_id, user_id
		FROM card_membership
		WHERE card_id = ANY($1)
		ORDER BY id`, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("get card memberships: %w", err)
	}
	defer rows.Close()

	var out []models.CardMembership
	for rows.Next() {
		var m models.CardMembership
		if err := rows.Scan(&m.ID, &m.CardID, &m.UserID); err != nil {
			return nil, fmt.Errorf("scan card membership: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Postgres) GetCardLabelsByCardIDs(ctx context.Context, cardIDs []string) ([]models.CardLabel, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, card_id, label_id
		FROM card_label
		WHERE card_id = ANY($1)
		ORDER BY id`, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("get card labels: %w", err)
	}
	defer rows.Close()

	var out []models.CardLabel
	for rows.Next() {
		var cl models.CardLabel
		if err := rows.Scan(&cl.ID, &cl.CardID, &cl.LabelID); err != nil {
			return nil, fmt.Errorf("scan card label: %w", err)
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

func (s *Postgres) GetTaskListsByCardIDs(ctx context.Context, cardIDs []string) ([]models.TaskList, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, card_id, name, position
		FROM task_list
		WHERE card_id = ANY($1)
		ORDER BY position, id`, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("get task lists: %w", err)
	}
	defer rows.Close()

	var out []models.TaskList
	for rows.Next() {
		var tl models.TaskList
		if err := rows.Scan(&tl.ID, &tl.CardID, &tl.Name, &tl.Position); err != nil {
			return nil, fmt.Errorf("scan task list: %w", err)
		}
		out = append(out, tl)
	}
	return out, rows.Err()
}

func (s *Postgres) GetTasksByTaskListIDs(ctx context.Context, taskListIDs []string) ([]models.Task, error) {
	if len(taskListIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, task_list_id, name, position, is_completed
		FROM task
		WHERE task_list_id = ANY($1)
		ORDER BY position, id`, taskListIDs)
	if err != nil {
		return nil, fmt.Errorf("get tasks: %w", err)
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.TaskListID, &t.Name, &t.Position, &t.IsCompleted); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Postgres) GetAttachmentsByCardIDs(ctx context.Context, cardIDs []string) ([]models.Attachment, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, card_id, name, type, size, storage_key, creator_user_id
		FROM attachment
		WHERE card_id = ANY($1)
		ORDER BY id`, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("get attachments: %w", err)
	}
	defer rows.Close()

	var out []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.CardID, &a.Name, &a.Type, &a.Size, &a.StorageKey, &a.CreatorUserID); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Postgres) GetCustomFieldGroupsByBoardID(ctx context.Context, boardID string) ([]models.CustomFieldGroup, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, COALESCE(board_id, ''), COALESCE(card_id, ''), name
		FROM custom_field_group
		WHERE board_id = $1
		ORDER BY id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("get board custom field groups: %w", err)
	}
	defer rows.Close()
	return scanCustomFieldGroups(rows)
}

func (s *Postgres) GetCustomFieldGroupsByCardIDs(ctx context.Context, cardIDs []string) ([]models.CustomFieldGroup, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, COALESCE(board_id, ''), COALESCE(card_id, ''), name
		FROM custom_field_group
		WHERE card_id = ANY($1)
		ORDER BY id`, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("get card custom field groups: %w", err)
	}
	defer rows.Close()
	return scanCustomFieldGroups(rows)
}

func (s *Postgres) GetCustomFieldsByGroupIDs(ctx context.Context, groupIDs []string) ([]models.CustomField, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, custom_field_group_id, name, position
		FROM custom_field
		WHERE custom_field_group_id = ANY($1)
		ORDER BY position, id`, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("get custom fields: %w", err)
	}
	defer rows.Close()

	var out []models.CustomField
	for rows.Next() {
		var f models.CustomField
		if err := rows.Scan(&f.ID, &f.CustomFieldGroupID, &f.Name, &f.Position); err != nil {
			return nil, fmt.Errorf("scan custom field: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Postgres) GetCustomFieldValuesByCardIDs(ctx context.Context, cardIDs []string) ([]models.CustomFieldValue, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, card_id, custom_field_id, value
		FROM custom_field_value
		WHERE card_id = ANY($1)
		ORDER BY id`, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("get custom field values: %w", err)
	}
	defer rows.Close()

	var out []models.CustomFieldValue
	for rows.Next() {
		var v models.CustomFieldValue
		if err := rows.Scan(&v.ID, &v.CardID, &v.CustomFieldID, &v.Value); err != nil {
			return nil, fmt.Errorf("scan custom field value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Ping implements the health check against the pool.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func scanCustomFieldGroups(rows pgx.Rows) ([]models.CustomFieldGroup, error) {
	var out []models.CustomFieldGroup
	for rows.Next() {
		var g models.CustomFieldGroup
		if err := rows.Scan(&g.ID, &g.BoardID, &g.CardID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan custom field group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
