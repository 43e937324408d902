package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/gpp-woo/publicationbank/internal/audit"
	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/status"
)

// CreatePublicationRequest creates a publication in the concept or
// published state. A revoked target is rejected outright.
type CreatePublicationRequest struct {
	Actor audit.Actor
	// OwnerIdentifier resolves to the organisation member owning the record.
	OwnerIdentifier string

	OfficialTitle string
	ShortTitle    string
	Description   string
	Status        status.Status

	PublisherUUID   *uuid.UUID
	ResponsibleUUID *uuid.UUID
	DrafterUUID     *uuid.UUID
	CategoryUUIDs   []uuid.UUID
}

// UpdatePublicationRequest mutates a publication. Nil fields are left
// untouched; a nil Status is an identity transition (metadata-only edit).
type UpdatePublicationRequest struct {
	UUID    uuid.UUID
	Actor   audit.Actor
	Remarks string

	OfficialTitle *string
	ShortTitle    *string
	Description   *string
	Status        *status.Status

	PublisherUUID   *uuid.UUID
	ResponsibleUUID *uuid.UUID
	DrafterUUID     *uuid.UUID
	// CategoryUUIDs replaces the attached category set when non-nil, which
	// triggers a retention recomputation.
	CategoryUUIDs []uuid.UUID
}

// CreateDocumentRequest attaches a document to a publication. Any supplied
// status is ignored: the stored status is always derived from the parent
// publication at creation time.
type CreateDocumentRequest struct {
	PublicationUUID uuid.UUID
	Actor           audit.Actor
	OwnerIdentifier string

	OfficialTitle string
	ShortTitle    string
	Description   string
	Status        status.Status

	CreationDate time.Time
	FileName     string
	FileFormat   string
	FileSize     int64
	ActionType   model.ActionType

	StoreServiceID string
	StoreObjectID  string
	UploadComplete bool
}

// UpdateDocumentRequest mutates a document. Nil fields are left untouched.
type UpdateDocumentRequest struct {
	UUID    uuid.UUID
	Actor   audit.Actor
	Remarks string

	OfficialTitle *string
	ShortTitle    *string
	Description   *string
	Status        *status.Status

	FileName *string
	FileSize *int64

	StoreServiceID *string
	StoreObjectID  *string
	Lock           *string
	UploadComplete *bool
}
