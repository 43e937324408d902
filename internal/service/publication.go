package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gpp-woo/publicationbank/internal/archiving"
	"github.com/gpp-woo/publicationbank/internal/audit"
	"github.com/gpp-woo/publicationbank/internal/index"
	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/status"
	"github.com/gpp-woo/publicationbank/internal/store"
)

// NewPublicationService creates a new PublicationService.
func NewPublicationService(store store.Store, queue index.Queue, auditLog *audit.Logger, baseURL string) *PublicationService {
	return &PublicationService{
		store:   store,
		queue:   queue,
		audit:   auditLog,
		baseURL: baseURL,
	}
}

// PublicationService manages the publication lifecycle and cascades
// publication transitions to the attached documents.
type PublicationService struct {
	store   store.Store
	queue   index.Queue
	audit   *audit.Logger
	baseURL string
}

// CreatePublication creates a publication in the concept or published
// state. Creating directly in the revoked state is rejected.
func (s *PublicationService) CreatePublication(ctx context.Context, req CreatePublicationRequest) (*model.Publication, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if req.Status == status.Revoked {
		return nil, &status.TransitionError{Err: status.ErrIllegalStateChange, From: "", To: status.Revoked}
	}
	if err := status.PublicationTransition("", req.Status); err != nil {
		return nil, err
	}

	var pub *model.Publication
	var pending []index.Action

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		owner, err := resolveMember(ctx, tx, req.OwnerIdentifier)
		if err != nil {
			return err
		}

		pub = &model.Publication{
			UUID:          uuid.New().String(),
			OfficialTitle: req.OfficialTitle,
			ShortTitle:    req.ShortTitle,
			Description:   req.Description,
			Status:        req.Status,
			OwnerID:       owner.ID,
			Owner:         owner,
		}

		if req.PublisherUUID != nil {
			publisher, err := resolveOrganisation(ctx, tx, *req.PublisherUUID, true)
			if err != nil {
				return err
			}
			pub.PublisherID = &publisher.ID
			pub.Publisher = publisher
		}
		if req.ResponsibleUUID != nil {
			responsible, err := resolveOrganisation(ctx, tx, *req.ResponsibleUUID, true)
			if err != nil {
				return err
			}
			pub.ResponsibleID = &responsible.ID
			pub.Responsible = responsible
		}
		if req.DrafterUUID != nil {
			drafter, err := resolveOrganisation(ctx, tx, *req.DrafterUUID, false)
			if err != nil {
				return err
			}
			pub.DrafterID = &drafter.ID
			pub.Drafter = drafter
		}

		categories, err := tx.ListInformationCategories(ctx, req.CategoryUUIDs)
		if err != nil {
			return err
		}

		// the publisher and category set may only be missing on concepts
		if req.Status == status.Published {
			if pub.PublisherID == nil {
				return ErrPublisherRequired
			}
			if len(categories) == 0 {
				return ErrCategoriesRequired
			}
			now := time.Now()
			pub.PublishedAt = &now
		}

		if err := tx.CreatePublication(ctx, pub); err != nil {
			return err
		}

		if len(categories) > 0 {
			if err := tx.ReplacePublicationCategories(ctx, pub, categories); err != nil {
				return err
			}
		}

		if changed := s.applyRetention(pub); changed {
			if err := tx.UpdatePublication(ctx, pub); err != nil {
				return err
			}
		}

		if err := s.audit.Record(ctx, tx, model.AuditCreate, publicationKind, pub.UUID, req.Actor, pub, ""); err != nil {
			return err
		}

		pending = index.Decide(index.KindPublication, pub.UUID, "", pub.Status, true, "")
		return nil
	})
	if err != nil {
		return nil, err
	}

	flush(ctx, s.queue, pending)
	return pub, nil
}

// GetPublication retrieves a publication by UUID.
func (s *PublicationService) GetPublication(ctx context.Context, id uuid.UUID) (*model.Publication, error) {
	pub, err := s.store.GetPublication(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPublicationNotFound)
	}
	return pub, nil
}

// ListPublications retrieves all publications.
func (s *PublicationService) ListPublications(ctx context.Context) ([]*model.Publication, int64, error) {
	return s.store.ListPublications(ctx)
}

// UpdatePublication applies metadata changes and, when a target status is
// supplied, performs the guarded status transition including its cascades.
// All mutations and their audit records commit atomically; index actions
// are dispatched only after the commit succeeded.
func (s *PublicationService) UpdatePublication(ctx context.Context, req UpdatePublicationRequest) (*model.Publication, error) {
	var pub *model.Publication
	var pending []index.Action

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		pub, err = tx.GetPublication(ctx, req.UUID)
		if err != nil {
			return notFound(err, ErrPublicationNotFound)
		}

		old := pub.Status
		target := old
		if req.Status != nil {
			if !req.Status.Valid() {
				return ErrInvalidStatus
			}
			target = *req.Status
		}
		if err := status.PublicationTransition(old, target); err != nil {
			return err
		}

		if req.OfficialTitle != nil {
			pub.OfficialTitle = *req.OfficialTitle
		}
		if req.ShortTitle != nil {
			pub.ShortTitle = *req.ShortTitle
		}
		if req.Description != nil {
			pub.Description = *req.Description
		}

		if req.PublisherUUID != nil {
			publisher, err := resolveOrganisation(ctx, tx, *req.PublisherUUID, true)
			if err != nil {
				return err
			}
			pub.PublisherID = &publisher.ID
			pub.Publisher = publisher
		}
		if req.ResponsibleUUID != nil {
			responsible, err := resolveOrganisation(ctx, tx, *req.ResponsibleUUID, true)
			if err != nil {
				return err
			}
			pub.ResponsibleID = &responsible.ID
			pub.Responsible = responsible
		}
		if req.DrafterUUID != nil {
			drafter, err := resolveOrganisation(ctx, tx, *req.DrafterUUID, false)
			if err != nil {
				return err
			}
			pub.DrafterID = &drafter.ID
			pub.Drafter = drafter
		}

		categoriesChanged := false
		if req.CategoryUUIDs != nil {
			categories, err := tx.ListInformationCategories(ctx, req.CategoryUUIDs)
			if err != nil {
				return err
			}
			if err := tx.ReplacePublicationCategories(ctx, pub, categories); err != nil {
				return err
			}
			categoriesChanged = true
		}

		transitioned := target != old
		if transitioned {
			now := time.Now()
			switch target {
			case status.Published:
				if pub.PublisherID == nil {
					return ErrPublisherRequired
				}
				if len(pub.Categories) == 0 {
					return ErrCategoriesRequired
				}
				pub.Status = status.Published
				pub.PublishedAt = &now

				actions, err := s.cascadePublish(ctx, tx, pub, req.Actor, req.Remarks)
				if err != nil {
					return err
				}
				pending = append(pending, actions...)
			case status.Revoked:
				pub.Status = status.Revoked
				pub.RevokedAt = &now

				actions, err := s.cascadeRevoke(ctx, tx, pub, req.Actor, req.Remarks)
				if err != nil {
					return err
				}
				pending = append(pending, actions...)
			}
		}

		// retention fields are derived, never edited: recompute when the
		// category set changed or the publication just became published
		if categoriesChanged || (transitioned && target == status.Published) {
			s.applyRetention(pub)
		}

		if err := tx.UpdatePublication(ctx, pub); err != nil {
			return err
		}

		if err := s.audit.Record(ctx, tx, model.AuditUpdate, publicationKind, pub.UUID, req.Actor, pub, req.Remarks); err != nil {
			return err
		}

		pending = append(pending, index.Decide(index.KindPublication, pub.UUID, old, target, true, "")...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	flush(ctx, s.queue, pending)
	return pub, nil
}

// DeletePublication hard-deletes a publication and its documents, and
// schedules forced index removal for every record that was published.
func (s *PublicationService) DeletePublication(ctx context.Context, id uuid.UUID, actor audit.Actor) error {
	var pending []index.Action

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		pub, err := tx.GetPublication(ctx, id)
		if err != nil {
			return notFound(err, ErrPublicationNotFound)
		}

		documents, err := tx.ListDocuments(ctx, pub.ID)
		if err != nil {
			return err
		}

		for _, doc := range documents {
			if err := s.audit.Record(ctx, tx, model.AuditDelete, documentKind, doc.UUID, actor, doc, ""); err != nil {
				return err
			}
			// the rows are gone after commit, so removal is forced and
			// carries only the identity
			if doc.Status == status.Published {
				pending = append(pending, index.Removal(index.KindDocument, doc.UUID))
			}
		}

		if err := s.audit.Record(ctx, tx, model.AuditDelete, publicationKind, pub.UUID, actor, pub, ""); err != nil {
			return err
		}
		if pub.Status == status.Published {
			pending = append(pending, index.Removal(index.KindPublication, pub.UUID))
		}

		return tx.DeletePublication(ctx, pub.ID)
	})
	if err != nil {
		return err
	}

	flush(ctx, s.queue, pending)
	return nil
}

// cascadePublish publishes the concept documents of a publication in the
// same transaction. Documents that are already published are identity
// transitions and stay untouched.
func (s *PublicationService) cascadePublish(ctx context.Context, tx store.Store, pub *model.Publication, actor audit.Actor, remarks string) ([]index.Action, error) {
	documents, err := tx.ListDocumentsByStatus(ctx, pub.ID, status.Concept)
	if err != nil {
		return nil, err
	}

	var pending []index.Action
	now := time.Now()
	for _, doc := range documents {
		old := doc.Status
		doc.Status = status.Published
		doc.PublishedAt = &now

		if err := tx.UpdateDocumentInCascade(ctx, doc); err != nil {
			return nil, err
		}
		if err := s.audit.Record(ctx, tx, model.AuditUpdate, documentKind, doc.UUID, actor, doc, remarks); err != nil {
			return nil, err
		}

		pending = append(pending, index.Decide(index.KindDocument, doc.UUID, old, doc.Status, doc.UploadComplete, s.downloadURL(doc))...)
	}

	return pending, nil
}

// cascadeRevoke revokes the concept and published documents of a
// publication in the same transaction. Already revoked documents stay
// untouched and re-emit neither audit nor index events.
func (s *PublicationService) cascadeRevoke(ctx context.Context, tx store.Store, pub *model.Publication, actor audit.Actor, remarks string) ([]index.Action, error) {
	documents, err := tx.ListDocumentsByStatus(ctx, pub.ID, status.Concept, status.Published)
	if err != nil {
		return nil, err
	}

	var pending []index.Action
	now := time.Now()
	for _, doc := range documents {
		old := doc.Status
		doc.Status = status.Revoked
		doc.RevokedAt = &now

		if err := tx.UpdateDocumentInCascade(ctx, doc); err != nil {
			return nil, err
		}
		if err := s.audit.Record(ctx, tx, model.AuditUpdate, documentKind, doc.UUID, actor, doc, remarks); err != nil {
			return nil, err
		}

		pending = append(pending, index.Decide(index.KindDocument, doc.UUID, old, doc.Status, doc.UploadComplete, "")...)
	}

	return pending, nil
}

// applyRetention recomputes the derived retention fields from the attached
// category set. Concepts keep blank fields: the policy only takes effect
// once the publication is published. Reports whether fields were written.
func (s *PublicationService) applyRetention(pub *model.Publication) bool {
	if pub.Status != status.Published && pub.Status != status.Revoked {
		return false
	}

	retention := archiving.Calculate(pub.RegisteredAt(), pub.Categories)
	if retention == nil {
		return false
	}

	pub.RetentionSource = retention.Source
	pub.SelectionCategory = retention.SelectionCategory
	pub.ArchiveNomination = retention.Nomination
	pub.ArchiveActionDate = &retention.ActionDate
	pub.RetentionExplanation = retention.Explanation
	return true
}

func (s *PublicationService) downloadURL(doc *model.Document) string {
	return s.baseURL + doc.DownloadPath()
}
