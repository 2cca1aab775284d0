package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"openboard/internal/board/models"
	"openboard/internal/board/store"
	dErrors "openboard/pkg/domain-errors"
)

type ProjectorSuite struct {
	suite.Suite
	store *store.InMemory
	ctx   context.Context
}

func (s *ProjectorSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.ctx = context.Background()
}

func TestProjectorSuite(t *testing.T) {
	suite.Run(t, new(ProjectorSuite))
}

// seedTwoBoards loads a public board with the full object graph plus a second
// board whose records must never leak into the first board's snapshot.
func (s *ProjectorSuite) seedTwoBoards() {
	s.store.AddProject(models.Project{ID: "p1", Name: "Public Project"})
	s.store.AddProject(models.Project{ID: "p2", Name: "Other Project"})
	s.store.AddBoard(models.Board{ID: "b1", ProjectID: "p1", Name: "Public Board", IsPublic: true})
	s.store.AddBoard(models.Board{ID: "b2", ProjectID: "p2", Name: "Other Board", IsPublic: true})

	s.store.AddUser(models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"})
	s.store.AddUser(models.User{ID: "u2", Name: "Bob", Email: "bob@example.com"})
	s.store.AddUser(models.User{ID: "u3", Name: "Mallory", Email: "mallory@example.com"})

	s.store.AddBoardMembership(models.BoardMembership{ID: "bm1", BoardID: "b1", UserID: "u1", Role: "editor"})
	s.store.AddBoardMembership(models.BoardMembership{ID: "bm2", BoardID: "b2", UserID: "u3"})

	s.store.AddLabel(models.Label{ID: "lb1", BoardID: "b1", Name: "bug", Color: "berry-red"})
	s.store.AddLabel(models.Label{ID: "lb2", BoardID: "b2", Name: "other", Color: "lagoon-blue"})

	s.store.AddList(models.List{ID: "l1", BoardID: "b1", Name: "To Do", Position: 1, Type: models.ListTypeActive})
	s.store.AddList(models.List{ID: "l2", BoardID: "b1", Name: "Trash", Position: 2, Type: models.ListTypeTrash})
	s.store.AddList(models.List{ID: "l3", BoardID: "b2", Name: "Elsewhere", Position: 1, Type: models.ListTypeActive})

	// isSubscribed stored true to prove the projector forces it off.
	s.store.AddCard(models.Card{ID: "c1", ListID: "l1", Name: "Visible", Position: 1, CreatorUserID: "u2", IsSubscribed: true})
	s.store.AddCard(models.Card{ID: "c2", ListID: "l2", Name: "Trashed", Position: 1, CreatorUserID: "u1"})
	s.store.AddCard(models.Card{ID: "c3", ListID: "l3", Name: "Foreign", Position: 1, CreatorUserID: "u3"})

	s.store.AddCardLabel(models.CardLabel{ID: "cl1", CardID: "c1", LabelID: "lb1"})
	s.store.AddCardLabel(models.CardLabel{ID: "cl2", CardID: "c3", LabelID: "lb2"})
	s.store.AddCardMembership(models.CardMembership{ID: "cm1", CardID: "c1", UserID: "u2"})
	s.store.AddCardMembership(models.CardMembership{ID: "cm2", CardID: "c3", UserID: "u3"})

	s.store.AddTaskList(models.TaskList{ID: "tl1", CardID: "c1", Name: "Steps"})
	s.store.AddTaskList(models.TaskList{ID: "tl2", CardID: "c3"})
	s.store.AddTask(models.Task{ID: "t1", TaskListID: "tl1", IsCompleted: true})
	s.store.AddTask(models.Task{ID: "t2", TaskListID: "tl1"})
	s.store.AddTask(models.Task{ID: "t3", TaskListID: "tl2"})

	s.store.AddAttachment(models.Attachment{ID: "a1", CardID: "c1", Name: "draft.md", StorageKey: "secret/key"})
	s.store.AddAttachment(models.Attachment{ID: "a2", CardID: "c3", Name: "foreign.md"})

	s.store.AddCustomFieldGroup(models.CustomFieldGroup{ID: "g1", BoardID: "b1", Name: "Estimates"})
	s.store.AddCustomFieldGroup(models.CustomFieldGroup{ID: "g2", CardID: "c1", Name: "Card Fields"})
	s.store.AddCustomFieldGroup(models.CustomFieldGroup{ID: "g3", BoardID: "b2"})
	s.store.AddCustomField(models.CustomField{ID: "f1", CustomFieldGroupID: "g1", Name: "Points"})
	s.store.AddCustomField(models.CustomField{ID: "f2", CustomFieldGroupID: "g3", Name: "Foreign"})
	s.store.AddCustomFieldValue(models.CustomFieldValue{ID: "v1", CardID: "c1", CustomFieldID: "f1", Value: "3"})
	s.store.AddCustomFieldValue(models.CustomFieldValue{ID: "v2", CardID: "c3", CustomFieldID: "f2", Value: "9"})
}

// TestNotFoundConflation verifies nonexistent and private boards produce the
// identical outcome.
func (s *ProjectorSuite) TestNotFoundConflation() {
	s.store.AddProject(models.Project{ID: "p1", Name: "Project"})
	s.store.AddBoard(models.Board{ID: "private", ProjectID: "p1", Name: "Private", IsPublic: false})

	p := New(s.store)

	_, errMissing := p.GetPublicBoardSnapshot(s.ctx, "missing")
	_, errPrivate := p.GetPublicBoardSnapshot(s.ctx, "private")

	s.Require().Error(errMissing)
	s.Require().Error(errPrivate)
	s.True(dErrors.HasCode(errMissing, dErrors.CodeNotFound))
	s.True(dErrors.HasCode(errPrivate, dErrors.CodeNotFound))
	s.Equal(errMissing.Error(), errPrivate.Error(), "private must be indistinguishable from nonexistent")
}

// TestScopingNoCrossBoardLeak verifies every included record's parent chain
// resolves to the requested board.
func (s *ProjectorSuite) TestScopingNoCrossBoardLeak() {
	s.seedTwoBoards()
	p := New(s.store)

	snap, err := p.GetPublicBoardSnapshot(s.ctx, "b1")
	s.Require().NoError(err)

	s.Equal("b1", snap.Item.ID)
	s.Require().Len(snap.Included.Projects, 1)
	s.Equal("p1", snap.Included.Projects[0].ID)

	for _, m := range snap.Included.BoardMemberships {
		s.Equal("b1", m.BoardID)
	}
	for _, l := range snap.Included.Labels {
		s.Equal("b1", l.BoardID)
	}
	for _, l := range snap.Included.Lists {
		s.Equal("b1", l.BoardID)
	}
	for _, c := range snap.Included.Cards {
		s.NotEqual("c3", c.ID, "foreign card must not appear")
	}
	for _, cl := range snap.Included.CardLabels {
		s.NotEqual("cl2", cl.ID)
	}
	for _, tl := range snap.Included.TaskLists {
		s.NotEqual("tl2", tl.ID)
	}
	for _, t := range snap.Included.Tasks {
		s.NotEqual("t3", t.ID)
	}
	for _, a := range snap.Included.Attachments {
		s.NotEqual("a2", a.ID)
	}
	for _, g := range snap.Included.CustomFieldGroups {
		s.NotEqual("g3", g.ID)
	}
	for _, f := range snap.Included.CustomFields {
		s.NotEqual("f2", f.ID)
	}
	for _, v := range snap.Included.CustomFieldValues {
		s.NotEqual("v2", v.ID)
	}
	for _, u := range snap.Included.Users {
		s.NotEqual("u3", u.ID, "user referenced only by the other board must not appear")
	}
}

// TestTrashCardsExcluded verifies cards are scoped to finite lists while the
// raw list collection still carries every list.
func (s *ProjectorSuite) TestTrashCardsExcluded() {
	s.seedTwoBoards()
	p := New(s.store)

	snap, err := p.GetPublicBoardSnapshot(s.ctx, "b1")
	s.Require().NoError(err)

	s.Len(snap.Included.Lists, 2, "trash list stays in the raw envelope")
	s.Require().Len(snap.Included.Cards, 1, "trashed card must not reach the envelope")
	s.Equal("c1", snap.Included.Cards[0].ID)
}

// TestSubscriptionNeverLeaks verifies isSubscribed is forced false regardless
// of stored value.
func (s *ProjectorSuite) TestSubscriptionNeverLeaks() {
	s.seedTwoBoards()
	p := New(s.store)

	snap, err := p.GetPublicBoardSnapshot(s.ctx, "b1")
	s.Require().NoError(err)
	for _, c := range snap.Included.Cards {
		s.False(c.IsSubscribed)
	}
}

// TestUserRedactionAndUnion verifies the user set is the deduplicated union
// of membership users and card creators, with emails withheld.
func (s *ProjectorSuite) TestUserRedactionAndUnion() {
	s.seedTwoBoards()
	p := New(s.store)

	snap, err := p.GetPublicBoardSnapshot(s.ctx, "b1")
	s.Require().NoError(err)

	s.Require().Len(snap.Included.Users, 2)
	s.Equal("u1", snap.Included.Users[0].ID, "membership users precede creators")
	s.Equal("u2", snap.Included.Users[1].ID)

	data, err := json.Marshal(snap)
	s.Require().NoError(err)
	s.False(strings.Contains(string(data), "@example.com"), "no email may reach the wire")
	s.False(strings.Contains(string(data), "secret/key"), "no storage key may reach the wire")
}

// TestIdempotence verifies two projections with no intervening writes are
// byte-equal.
func (s *ProjectorSuite) TestIdempotence() {
	s.seedTwoBoards()
	p := New(s.store)

	first, err := p.GetPublicBoardSnapshot(s.ctx, "b1")
	s.Require().NoError(err)
	second, err := p.GetPublicBoardSnapshot(s.ctx, "b1")
	s.Require().NoError(err)

	firstJSON, err := json.Marshal(first)
	s.Require().NoError(err)
	secondJSON, err := json.Marshal(second)
	s.Require().NoError(err)
	s.Equal(firstJSON, secondJSON)
}

// TestListPolicyCapability verifies the finite predicate is injectable.
func (s *ProjectorSuite) TestListPolicyCapability() {
	s.seedTwoBoards()

	// A policy that treats every list as finite pulls trashed cards back in.
	p := New(s.store, WithListPolicy(func(models.List) bool { return true }))

	snap, err := p.GetPublicBoardSnapshot(s.ctx, "b1")
	s.Require().NoError(err)
	s.Len(snap.Included.Cards, 2)
}

// TestCustomFieldGroupUnion verifies board-attached and card-attached groups
// are both included, with their fields.
func (s *ProjectorSuite) TestCustomFieldGroupUnion() {
	s.seedTwoBoards()
	p := New(s.store)

	snap, err := p.GetPublicBoardSnapshot(s.ctx, "b1")
	s.Require().NoError(err)

	var groupIDs []string
	for _, g := range snap.Included.CustomFieldGroups {
		groupIDs = append(groupIDs, g.ID)
	}
	s.ElementsMatch([]string{"g1", "g2"}, groupIDs)
}

// TestEmptyCollectionsAreArrays verifies a board with no related records
// still serializes every collection as a JSON array.
func (s *ProjectorSuite) TestEmptyCollectionsAreArrays() {
	s.store.AddProject(models.Project{ID: "p1", Name: "Project"})
	s.store.AddBoard(models.Board{ID: "bare", ProjectID: "p1", Name: "Bare", IsPublic: true})
	p := New(s.store)

	snap, err := p.GetPublicBoardSnapshot(s.ctx, "bare")
	s.Require().NoError(err)

	data, err := json.Marshal(snap)
	s.Require().NoError(err)
	s.False(strings.Contains(string(data), "null"), "no collection may serialize as null")
}
