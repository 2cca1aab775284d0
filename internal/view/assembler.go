// Package view turns a raw board snapshot into the derived structures a
// renderer consumes: active lists in position order, cards grouped under their
// lists, labels resolved, task progress counted. The assembly is pure; it
// never mutates the snapshot it reads.
package view

import (
	"sort"
	"time"

	"openboard/internal/board/models"
)

// BoardView is a fully assembled board ready for rendering.
type BoardView struct {
	BoardID     string
	Name        string
	ProjectName string
	Lists       []ListView
}

// ListView is one active list with its cards in position order.
type ListView struct {
	ID        string
	Name      string
	Position  float64
	CardCount int
	Cards     []CardView
}

// CardView is one card with its cross-references resolved.
type CardView struct {
	ID             string
	Name           string
	Position       float64
	Description    string
	DueDate        *time.Time
	Labels         []models.Label
	TasksTotal     int
	TasksCompleted int
	Stopwatch      *models.Stopwatch
}

// AllTasksDone reports whether the card has tasks and every one is completed.
// A card with no tasks is not "done"; it has nothing to be done.
func (c CardView) AllTasksDone() bool {
	return c.TasksTotal > 0 && c.TasksCompleted == c.TasksTotal
}

// Assemble derives the renderable board from a snapshot. Only active lists
// are rendered; lists and their cards are stably sorted by position, so
// records sharing a position keep their envelope order. Card labels
// referencing unknown label ids are silently dropped.
func Assemble(snapshot *models.Snapshot) *BoardView {
	view := &BoardView{
		BoardID: snapshot.Item.ID,
		Name:    snapshot.Item.Name,
	}
	if len(snapshot.Included.Projects) > 0 {
		view.ProjectName = snapshot.Included.Projects[0].Name
	}

	labelsByID := make(map[string]models.Label, len(snapshot.Included.Labels))
	for _, l := range snapshot.Included.Labels {
		labelsByID[l.ID] = l
	}

	labelIDsByCard := make(map[string][]string)
	for _, cl := range snapshot.Included.CardLabels {
		labelIDsByCard[cl.CardID] = append(labelIDsByCard[cl.CardID], cl.LabelID)
	}

	taskListCard := make(map[string]string, len(snapshot.Included.TaskLists))
	for _, tl := range snapshot.Included.TaskLists {
		taskListCard[tl.ID] = tl.CardID
	}
	type taskCount struct{ total, completed int }
	tasksByCard := make(map[string]taskCount)
	for _, t := range snapshot.Included.Tasks {
		cardID, ok := taskListCard[t.TaskListID]
		if !ok {
			continue
		}
		count := tasksByCard[cardID]
		count.total++
		if t.IsCompleted {
			count.completed++
		}
		tasksByCard[cardID] = count
	}

	cardsByList := make(map[string][]CardView)
	for _, c := range snapshot.Included.Cards {
		cv := CardView{
			ID:          c.ID,
			Name:        c.Name,
			Position:    c.Position,
			Description: c.Description,
			DueDate:     c.DueDate,
			Stopwatch:   c.Stopwatch,
		}
		for _, labelID := range labelIDsByCard[c.ID] {
			if label, ok := labelsByID[labelID]; ok {
				cv.Labels = append(cv.Labels, label)
			}
		}
		count := tasksByCard[c.ID]
		cv.TasksTotal = count.total
		cv.TasksCompleted = count.completed
		cardsByList[c.ListID] = append(cardsByList[c.ListID], cv)
	}

	for _, l := range snapshot.Included.Lists {
		if l.Type != models.ListTypeActive {
			continue
		}
		cards := cardsByList[l.ID]
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Position < cards[j].Position
		})
		view.Lists = append(view.Lists, ListView{
			ID:        l.ID,
			Name:      l.Name,
			Position:  l.Position,
			CardCount: len(cards),
			Cards:     cards,
		})
	}
	sort.SliceStable(view.Lists, func(i, j int) bool {
		return view.Lists[i].Position < view.Lists[j].Position
	})

	return view
}
