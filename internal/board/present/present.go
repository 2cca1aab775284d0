// Package present transforms stored records into viewer-appropriate
// projections. Redaction is selected by an enumerated viewer context rather
// than a nullable viewer, so the public path is checkable at compile time.
package present

import "openboard/internal/board/models"

// Viewer is the projection context for a request.
type Viewer int

const (
	// ViewerPublic is an unauthenticated caller: maximal redaction.
	ViewerPublic Viewer = iota
	// ViewerFull is a caller entitled to the complete record.
	ViewerFull
)

// Users projects user records for the given viewer. Public viewers never see
// email; redaction is uniform, not per-field opt-out.
func Users(users []models.User, viewer Viewer) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		pu := models.PublicUser{
			ID:        u.ID,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
		}
		if viewer == ViewerFull {
			pu.Email = u.Email
		}
		out = append(out, pu)
	}
	return out
}

// Attachments condenses attachment records to display metadata. Storage keys
// and creator ids stay server-side for every viewer; the full record is only
// needed by the CRUD system.
func Attachments(attachments []models.Attachment) []models.PublicAttachment {
	out := make([]models.PublicAttachment, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, models.PublicAttachment{
			ID:     a.ID,
			CardID: a.CardID,
			Name:   a.Name,
			Type:   a.Type,
			Size:   a.Size,
		})
	}
	return out
}
