package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/status"
)

type Store interface {
	PublicationStore
	DocumentStore
	MetadataStore
	AuditStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type PublicationStore interface {
	// CreatePublication creates a new publication.
	CreatePublication(ctx context.Context, pub *model.Publication) error
	// GetPublication retrieves a publication by UUID, with its categories
	// and organisation references loaded.
	GetPublication(ctx context.Context, id uuid.UUID) (*model.Publication, error)
	// GetPublicationByID retrieves a publication by surrogate key.
	GetPublicationByID(ctx context.Context, id uint) (*model.Publication, error)
	// ListPublications retrieves all publications.
	ListPublications(ctx context.Context) ([]*model.Publication, int64, error)
	// UpdatePublication updates a publication guarded by its version; a
	// concurrent write of the same row fails the update.
	UpdatePublication(ctx context.Context, pub *model.Publication) error
	// ReplacePublicationCategories replaces the attached category set.
	ReplacePublicationCategories(ctx context.Context, pub *model.Publication, categories []model.InformationCategory) error
	// DeletePublication hard-deletes a publication and its documents.
	DeletePublication(ctx context.Context, id uint) error
	// ListPublicationsDue retrieves publications whose archive action date
	// has passed.
	ListPublicationsDue(ctx context.Context, before time.Time) ([]*model.Publication, error)
}

type DocumentStore interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *model.Document) error
	// GetDocument retrieves a document by UUID.
	GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error)
	// ListDocuments retrieves the documents of a publication.
	ListDocuments(ctx context.Context, publicationID uint) ([]*model.Document, error)
	// ListDocumentsByStatus retrieves the documents of a publication in one
	// of the given statuses, reflecting in-transaction state.
	ListDocumentsByStatus(ctx context.Context, publicationID uint, statuses ...status.Status) ([]*model.Document, error)
	// UpdateDocument updates a document guarded by its version.
	UpdateDocument(ctx context.Context, doc *model.Document) error
	// UpdateDocumentInCascade updates a document as part of a parent
	// cascade. The optimistic guard is skipped: the row was read in the
	// same transaction and cannot have been changed by an external writer.
	UpdateDocumentInCascade(ctx context.Context, doc *model.Document) error
	// DeleteDocument hard-deletes a document.
	DeleteDocument(ctx context.Context, id uint) error
}

type MetadataStore interface {
	// CreateOrganisation creates an organisation value-list entry.
	CreateOrganisation(ctx context.Context, org *model.Organisation) error
	// GetOrganisation retrieves an organisation by UUID.
	GetOrganisation(ctx context.Context, id uuid.UUID) (*model.Organisation, error)
	// CreateOrganisationMember creates a member identity.
	CreateOrganisationMember(ctx context.Context, member *model.OrganisationMember) error
	// GetOrganisationMember retrieves a member by its identifier.
	GetOrganisationMember(ctx context.Context, identifier string) (*model.OrganisationMember, error)
	// CreateInformationCategory creates an information category.
	CreateInformationCategory(ctx context.Context, category *model.InformationCategory) error
	// ListInformationCategories retrieves categories by UUID.
	ListInformationCategories(ctx context.Context, ids []uuid.UUID) ([]model.InformationCategory, error)
}

type AuditStore interface {
	// CreateAuditRecord appends an audit record in the current transaction.
	CreateAuditRecord(ctx context.Context, record *model.AuditRecord) error
}
