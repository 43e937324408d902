package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/gpp-woo/publicationbank/internal/status"
)

// ActionType describes how a document entered the organisation.
type ActionType string

const (
	ActionSigned   ActionType = "signed"
	ActionReceived ActionType = "received"
	ActionDeclared ActionType = "declared"
)

// Document is a file/metadata record attached to exactly one publication.
type Document struct {
	gorm.Model
	UUID    string `gorm:"uuid;uniqueIndex;not null"`
	Version int64  `gorm:"not null;default:0"`

	PublicationID uint         `gorm:"not null;index"`
	Publication   *Publication `gorm:"foreignKey:PublicationID;constraint:OnDelete:CASCADE"`

	OwnerID uint                `gorm:"not null"`
	Owner   *OrganisationMember `gorm:"foreignKey:OwnerID"`

	OfficialTitle string `gorm:"not null"`
	ShortTitle    string
	Description   string
	Status        status.Status `gorm:"not null"`

	// CreationDate is when the (physical) document came into existence,
	// typically before the registration timestamp.
	CreationDate time.Time
	FileName     string `gorm:"default:unknown.bin"`
	FileFormat   string `gorm:"default:unknown"`
	FileSize     int64  `gorm:"not null;default:0"`
	ActionType   ActionType

	PublishedAt *time.Time
	RevokedAt   *time.Time

	// Reference into the external document store. Both fields must be set
	// or both must be unset, never one of the two.
	StoreServiceID string
	StoreObjectID  string

	// Lock is non-empty while an upload to the document store is in
	// progress.
	Lock           string
	UploadComplete bool `gorm:"not null;default:false"`
}

// HasStoreReference reports whether the document points at a record in the
// external document store.
func (d *Document) HasStoreReference() bool {
	return d.StoreServiceID != "" && d.StoreObjectID != ""
}

// ValidStoreReference enforces the both-or-neither invariant on the store
// identifier pair.
func (d *Document) ValidStoreReference() bool {
	return (d.StoreServiceID == "") == (d.StoreObjectID == "")
}

// DownloadPath is the public download endpoint for the document binary,
// relative to the service base URL.
func (d *Document) DownloadPath() string {
	return "/api/v1/documents/" + d.UUID + "/download"
}

// DocumentAction is the derived action record of a document: the action
// type, when it happened, and the organisation it is attributed to. It is
// computed from the parent publication, never persisted.
type DocumentAction struct {
	Type         ActionType
	At           time.Time
	Organisation string
}

// Action derives the document action from the parent publication's
// responsible organisation.
func (d *Document) Action(pub *Publication) DocumentAction {
	action := DocumentAction{
		Type: d.ActionType,
		At:   d.CreationDate,
	}
	if pub != nil && pub.Responsible != nil {
		action.Organisation = pub.Responsible.Name
	}
	return action
}
