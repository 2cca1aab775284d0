package store

import (
	"time"

	"github.com/google/uuid"

	"openboard/internal/board/models"
)

// SeedDemoBoard loads a small public board into an in-memory store so the
// server is usable without a database. Returns the board id to log at startup.
func SeedDemoBoard(s *InMemory) string {
	projectID := uuid.NewString()
	boardID := uuid.NewString()
	aliceID := uuid.NewString()
	bobID := uuid.NewString()

	s.AddProject(models.Project{ID: projectID, Name: "Demo Project"})
	s.AddBoard(models.Board{ID: boardID, ProjectID: projectID, Name: "Demo Board", IsPublic: true})

	s.AddUser(models.User{ID: aliceID, Name: "Alice", Email: "alice@example.com"})
	s.AddUser(models.User{ID: bobID, Name: "Bob", Email: "bob@example.com"})
	s.AddBoardMembership(models.BoardMembership{ID: uuid.NewString(), BoardID: boardID, UserID: aliceID, Role: "editor"})
	s.AddBoardMembership(models.BoardMembership{ID: uuid.NewString(), BoardID: boardID, UserID: bobID, Role: "viewer"})

	bug := models.Label{ID: uuid.NewString(), BoardID: boardID, Name: "bug", Color: "berry-red"}
	idea := models.Label{ID: uuid.NewString(), BoardID: boardID, Name: "idea", Color: "lagoon-blue"}
	s.AddLabel(bug)
	s.AddLabel(idea)

	todo := models.List{ID: uuid.NewString(), BoardID: boardID, Name: "To Do", Position: 1, Type: models.ListTypeActive}
	doing := models.List{ID: uuid.NewString(), BoardID: boardID, Name: "Doing", Position: 2, Type: models.ListTypeActive}
	archive := models.List{ID: uuid.NewString(), BoardID: boardID, Name: "Archive", Position: 3, Type: models.ListTypeArchive}
	s.AddList(todo)
	s.AddList(doing)
	s.AddList(archive)

	started := time.Now().Add(-90 * time.Second)
	card1 := models.Card{
		ID: uuid.NewString(), ListID: todo.ID, Name: "Write the announcement",
		Description: "Draft and review the launch post.", Position: 1,
		CreatorUserID: aliceID,
	}
	card2 := models.Card{
		ID: uuid.NewString(), ListID: doing.ID, Name: "Fix login redirect",
		Position: 1, CreatorUserID: bobID,
		Stopwatch: &models.Stopwatch{Total: 3600, StartedAt: &started},
	}
	hidden := models.Card{
		ID: uuid.NewString(), ListID: archive.ID, Name: "Old experiment",
		Position: 1, CreatorUserID: aliceID,
	}
	s.AddCard(card1)
	s.AddCard(card2)
	s.AddCard(hidden)

	s.AddCardLabel(models.CardLabel{ID: uuid.NewString(), CardID: card1.ID, LabelID: idea.ID})
	s.AddCardLabel(models.CardLabel{ID: uuid.NewString(), CardID: card2.ID, LabelID: bug.ID})
	s.AddCardMembership(models.CardMembership{ID: uuid.NewString(), CardID: card2.ID, UserID: bobID})

	checklist := models.TaskList{ID: uuid.NewString(), CardID: card1.ID, Name: "Steps", Position: 1}
	s.AddTaskList(checklist)
	s.AddTask(models.Task{ID: uuid.NewString(), TaskListID: checklist.ID, Name: "Outline", Position: 1, IsCompleted: true})
	s.AddTask(models.Task{ID: uuid.NewString(), TaskListID: checklist.ID, Name: "Review", Position: 2})

	s.AddAttachment(models.Attachment{
		ID: uuid.NewString(), CardID: card1.ID, Name: "draft.md", Type: "text/markdown",
		Size: 2048, StorageKey: "attachments/demo/draft.md", CreatorUserID: aliceID,
	})

	group := models.CustomFieldGroup{ID: uuid.NewString(), BoardID: boardID, Name: "Estimates"}
	s.AddCustomFieldGroup(group)
	points := models.CustomField{ID: uuid.NewString(), CustomFieldGroupID: group.ID, Name: "Points", Position: 1}
	s.AddCustomField(points)
	s.AddCustomFieldValue(models.CustomFieldValue{ID: uuid.NewString(), CardID: card1.ID, CustomFieldID: points.ID, Value: "3"})

	return boardID
}
