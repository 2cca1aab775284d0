// Package models holds the board object graph and the wire envelope for the
// public snapshot. Ids are opaque strings; ordering never relies on id values,
// only on explicit position fields.
package models

import "time"

// Project owns boards. It is the root of every parent chain.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Board is the snapshot root. Only boards with IsPublic set are ever served
// without authentication.
type Board struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	IsPublic  bool   `json:"isPublic"`
}

// BoardMembership links a user to a board.
type BoardMembership struct {
	ID      string `json:"id"`
	BoardID string `json:"boardId"`
	UserID  string `json:"userId"`
	Role    string `json:"role"`
}

// Label is a board-scoped tag applicable to cards.
type Label struct {
	ID      string `json:"id"`
	BoardID string `json:"boardId"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// ListType classifies a list. Only finite lists feed the public card fetch;
// only active lists are rendered.
type ListType string

const (
	ListTypeActive  ListType = "active"
	ListTypeClosed  ListType = "closed"
	ListTypeArchive ListType = "archive"
	ListTypeTrash   ListType = "trash"
)

// List is a column on a board. Position orders lists within the board.
type List struct {
	ID       string   `json:"id"`
	BoardID  string   `json:"boardId"`
	Name     string   `json:"name"`
	Position float64  `json:"position"`
	Type     ListType `json:"type"`
}

// IsListFinite reports whether a list counts as an ordinary workflow list.
// Archive and trash hold removed cards and never feed the public projection.
// This is the default policy; the projector takes it as a capability so the
// list-type taxonomy can evolve without touching projection code.
func IsListFinite(l List) bool {
	return l.Type != ListTypeArchive && l.Type != ListTypeTrash
}

// Stopwatch is time tracked on a card. Total is accumulated seconds; a
// non-nil StartedAt means the stopwatch is running.
type Stopwatch struct {
	Total     int64      `json:"total"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

// Card is a unit of work on a list.
type Card struct {
	ID               string     `json:"id"`
	ListID           string     `json:"listId"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	Position         float64    `json:"position"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	IsDueCompleted   bool       `json:"isDueCompleted"`
	Stopwatch        *Stopwatch `json:"stopwatch,omitempty"`
	CommentsTotal    int        `json:"commentsTotal"`
	AttachmentsTotal int        `json:"attachmentsTotal"`
	IsSubscribed     bool       `json:"isSubscribed"`
	CreatorUserID    string     `json:"creatorUserId,omitempty"`
}

// CardMembership links a user to a card.
type CardMembership struct {
	ID     string `json:"id"`
	CardID string `json:"cardId"`
	UserID string `json:"userId"`
}

// CardLabel joins cards and labels many-to-many.
type CardLabel struct {
	ID      string `json:"id"`
	CardID  string `json:"cardId"`
	LabelID string `json:"labelId"`
}

// TaskList groups tasks under a card.
type TaskList struct {
	ID       string  `json:"id"`
	CardID   string  `json:"cardId"`
	Name     string  `json:"name"`
	Position float64 `json:"position"`
}

// Task is a checklist item.
type Task struct {
	ID          string  `json:"id"`
	TaskListID  string  `json:"taskListId"`
	Name        string  `json:"name"`
	Position    float64 `json:"position"`
	IsCompleted bool    `json:"isCompleted"`
}

// Attachment is a file on a card. The stored record carries backend details
// that must not reach unauthenticated callers; see PublicAttachment.
type Attachment struct {
	ID            string `json:"id"`
	CardID        string `json:"cardId"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Size          int64  `json:"size"`
	StorageKey    string `json:"storageKey"`
	CreatorUserID string `json:"creatorUserId"`
}

// CustomFieldGroup attaches a set of custom fields to a board or a card.
// Exactly one of BoardID/CardID is set.
type CustomFieldGroup struct {
	ID      string `json:"id"`
	BoardID string `json:"boardId,omitempty"`
	CardID  string `json:"cardId,omitempty"`
	Name    string `json:"name"`
}

// CustomField is one field definition within a group.
type CustomField struct {
	ID                 string  `json:"id"`
	CustomFieldGroupID string  `json:"customFieldGroupId"`
	Name               string  `json:"name"`
	Position           float64 `json:"position"`
}

// CustomFieldValue is a card's value for one custom field.
type CustomFieldValue struct {
	ID            string `json:"id"`
	CardID        string `json:"cardId"`
	CustomFieldID string `json:"customFieldId"`
	Value         string `json:"value"`
}

// User is the stored account record. Email never leaves the server in a
// public projection; see PublicUser.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// PublicUser is the redacted user projection. Email is populated only under
// a full viewer context.
type PublicUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Email     string `json:"email,omitempty"`
}

// PublicAttachment is the condensed attachment projection: display metadata
// only, no storage details.
type PublicAttachment struct {
	ID     string `json:"id"`
	CardID string `json:"cardId"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Size   int64  `json:"size"`
}

// BoardPath is a board together with its owning project.
type BoardPath struct {
	Board   Board
	Project Project
}

// Snapshot is the wire envelope: the requested board plus every related
// collection, flat and denormalized. Clients derive structure themselves.
type Snapshot struct {
	Item     Board    `json:"item"`
	Included Included `json:"included"`
}

// Included carries the snapshot's related collections. Every record here is
// reachable from Item through its declared parent chain.
type Included struct {
	Users             []PublicUser       `json:"users"`
	Projects          []Project          `json:"projects"`
	BoardMemberships  []BoardMembership  `json:"boardMemberships"`
	Labels            []Label            `json:"labels"`
	Lists             []List             `json:"lists"`
	Cards             []Card             `json:"cards"`
	CardMemberships   []CardMembership   `json:"cardMemberships"`
	CardLabels        []CardLabel        `json:"cardLabels"`
	TaskLists         []TaskList         `json:"taskLists"`
	Tasks             []Task             `json:"tasks"`
	Attachments       []PublicAttachment `json:"attachments"`
	CustomFieldGroups []CustomFieldGroup `json:"customFieldGroups"`
	CustomFields      []CustomField      `json:"customFields"`
	CustomFieldValues []CustomFieldValue `json:"customFieldValues"`
}
