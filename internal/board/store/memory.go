package store

import (
	"context"
	"sync"

	"openboard/internal/board/models"
	"openboard/pkg/platform/sentinel"
)

// InMemory keeps the whole object graph in slices guarded by one RWMutex.
// It intentionally favors clarity over performance: collections are scanned
// in insertion order, which also makes query results deterministic.
type InMemory struct {
	mu sync.RWMutex

	projects          []models.Project
	boards            []models.Board
	boardMemberships  []models.BoardMembership
	labels            []models.Label
	lists             []models.List
	cards             []models.Card
	cardMemberships   []models.CardMembership
	cardLabels        []models.CardLabel
	taskLists         []models.TaskList
	tasks             []models.Task
	attachments       []models.Attachment
	customFieldGroups []models.CustomFieldGroup
	customFields      []models.CustomField
	customFieldValues []models.CustomFieldValue
	users             []models.User
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// Add loaders used by seeds and tests. Writes happen before serving starts;
// the projector side only reads.

func (s *InMemory) AddProject(p models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, p)
}

func (s *InMemory) AddBoard(b models.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards = append(s.boards, b)
}

func (s *InMemory) AddBoardMembership(m models.BoardMembership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardMemberships = append(s.boardMemberships, m)
}

func (s *InMemory) AddLabel(l models.Label) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels = append(s.labels, l)
}

func (s *InMemory) AddList(l models.List) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append(s.lists, l)
}

func (s *InMemory) AddCard(c models.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, c)
}

func (s *InMemory) AddCardMembership(m models.CardMembership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cardMemberships = append(s.cardMemberships, m)
}

func (s *InMemory) AddCardLabel(cl models.CardLabel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cardLabels = append(s.cardLabels, cl)
}

func (s *InMemory) AddTaskList(tl models.TaskList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskLists = append(s.taskLists, tl)
}

func (s *InMemory) AddTask(t models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
}

func (s *InMemory) AddAttachment(a models.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments = append(s.attachments, a)
}

func (s *InMemory) AddCustomFieldGroup(g models.CustomFieldGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customFieldGroups = append(s.customFieldGroups, g)
}

func (s *InMemory) AddCustomField(f models.CustomField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customFields = append(s.customFields, f)
}

func (s *InMemory) AddCustomFieldValue(v models.CustomFieldValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customFieldValues = append(s.customFieldValues, v)
}

func (s *InMemory) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

// Query interface implementation.

func (s *InMemory) GetBoardPathToProject(_ context.Context, boardID string) (models.BoardPath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.boards {
		if b.ID != boardID {
			continue
		}
		for _, p := range s.projects {
			if p.ID == b.ProjectID {
				return models.BoardPath{Board: b, Project: p}, nil
			}
		}
		// A board without its project has a broken parent chain; treat it
		// the same as absent.
		return models.BoardPath{}, sentinel.ErrNotFound
	}
	return models.BoardPath{}, sentinel.ErrNotFound
}

func (s *InMemory) GetBoardMembershipsByBoardID(_ context.Context, boardID string) ([]models.BoardMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.BoardMembership
	for _, m := range s.boardMemberships {
		if m.BoardID == boardID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *InMemory) GetLabelsByBoardID(_ context.Context, boardID string) ([]models.Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Label
	for _, l := range s.labels {
		if l.BoardID == boardID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *InMemory) GetListsByBoardID(_ context.Context, boardID string) ([]models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.List
	for _, l := range s.lists {
		if l.BoardID == boardID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *InMemory) GetCardsByListIDs(_ context.Context, listIDs []string) ([]models.Card, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(listIDs)
	var out []models.Card
	for _, c := range s.cards {
		if _, ok := want[c.ListID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemory) GetUsersByIDs(_ context.Context, userIDs []string) ([]models.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	byID := make(map[string]models.User, len(s.users))
	for _, u := range s.users {
		byID[u.ID] = u
	}
	// Requested order, unknown ids skipped.
	var out []models.User
	for _, id := range userIDs {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *InMemory) GetCardMembershipsByCardIDs(_ context.Context, cardIDs []string) ([]models.CardMembership, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(cardIDs)
	var out []models.CardMembership
	for _, m := range s.cardMemberships {
		if _, ok := want[m.CardID]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *InMemory) GetCardLabelsByCardIDs(_ context.Context, cardIDs []string) ([]models.CardLabel, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(cardIDs)
	var out []models.CardLabel
	for _, cl := range s.cardLabels {
		if _, ok := want[cl.CardID]; ok {
			out = append(out, cl)
		}
	}
	return out, nil
}

func (s *InMemory) GetTaskListsByCardIDs(_ context.Context, cardIDs []string) ([]models.TaskList, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(cardIDs)
	var out []models.TaskList
	for _, tl := range s.taskLists {
		if _, ok := want[tl.CardID]; ok {
			out = append(out, tl)
		}
	}
	return out, nil
}

func (s *InMemory) GetTasksByTaskListIDs(_ context.Context, taskListIDs []string) ([]models.Task, error) {
	if len(taskListIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(taskListIDs)
	var out []models.Task
	for _, t := range s.tasks {
		if _, ok := want[t.TaskListID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *InMemory) GetAttachmentsByCardIDs(_ context.Context, cardIDs []string) ([]models.Attachment, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(cardIDs)
	var out []models.Attachment
	for _, a := range s.attachments {
		if _, ok := want[a.CardID]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *InMemory) GetCustomFieldGroupsByBoardID(_ context.Context, boardID string) ([]models.CustomFieldGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.CustomFieldGroup
	for _, g := range s.customFieldGroups {
		if g.BoardID == boardID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *InMemory) GetCustomFieldGroupsByCardIDs(_ context.Context, cardIDs []string) ([]models.CustomFieldGroup, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(cardIDs)
	var out []models.CustomFieldGroup
	for _, g := range s.customFieldGroups {
		if g.CardID == "" {
			continue
		}
		if _, ok := want[g.CardID]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *InMemory) GetCustomFieldsByGroupIDs(_ context.Context, groupIDs []string) ([]models.CustomField, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(groupIDs)
	var out []models.CustomField
	for _, f := range s.customFields {
		if _, ok := want[f.CustomFieldGroupID]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *InMemory) GetCustomFieldValuesByCardIDs(_ context.Context, cardIDs []string) ([]models.CustomFieldValue, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(cardIDs)
	var out []models.CustomFieldValue
	for _, v := range s.customFieldValues {
		if _, ok := want[v.CardID]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// Ping implements the health check; memory is always healthy.
func (s *InMemory) Ping(_ context.Context) error {
	return nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
