package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gpp-woo/publicationbank/internal/audit"
	"github.com/gpp-woo/publicationbank/internal/index"
	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/status"
	"github.com/gpp-woo/publicationbank/internal/store"
)

// NewDocumentService creates a new DocumentService.
func NewDocumentService(store store.Store, queue index.Queue, auditLog *audit.Logger, baseURL string) *DocumentService {
	return &DocumentService{
		store:   store,
		queue:   queue,
		audit:   auditLog,
		baseURL: baseURL,
	}
}

// DocumentService manages the document lifecycle within the constraints of
// the parent publication.
type DocumentService struct {
	store   store.Store
	queue   index.Queue
	audit   *audit.Logger
	baseURL string
}

// CreateDocument attaches a new document to a publication. The stored
// status is derived from the parent publication; any caller-supplied status
// is ignored. Creation under a revoked publication is rejected.
func (s *DocumentService) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*model.Document, error) {
	var doc *model.Document
	var pending []index.Action

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		pub, err := tx.GetPublication(ctx, req.PublicationUUID)
		if err != nil {
			return notFound(err, &status.TransitionError{Err: status.ErrParentNotFound, To: req.Status})
		}

		var derived status.Status
		switch pub.Status {
		case status.Concept:
			derived = status.Concept
		case status.Published:
			derived = status.Published
		default:
			return &status.TransitionError{Err: status.ErrIncompatibleParentStatus, To: derived}
		}

		owner, err := resolveMember(ctx, tx, req.OwnerIdentifier)
		if err != nil {
			return err
		}

		doc = &model.Document{
			UUID:           uuid.New().String(),
			PublicationID:  pub.ID,
			OwnerID:        owner.ID,
			Owner:          owner,
			OfficialTitle:  req.OfficialTitle,
			ShortTitle:     req.ShortTitle,
			Description:    req.Description,
			Status:         derived,
			CreationDate:   req.CreationDate,
			FileName:       req.FileName,
			FileFormat:     req.FileFormat,
			FileSize:       req.FileSize,
			ActionType:     req.ActionType,
			StoreServiceID: req.StoreServiceID,
			StoreObjectID:  req.StoreObjectID,
			UploadComplete: req.UploadComplete,
		}
		if !doc.ValidStoreReference() {
			return ErrStoreReference
		}
		if derived == status.Published {
			now := time.Now()
			doc.PublishedAt = &now
		}

		if err := tx.CreateDocument(ctx, doc); err != nil {
			return err
		}

		if err := s.audit.Record(ctx, tx, model.AuditCreate, documentKind, doc.UUID, req.Actor, doc, ""); err != nil {
			return err
		}

		pending = index.Decide(index.KindDocument, doc.UUID, "", derived, doc.UploadComplete, s.downloadURL(doc))
		return nil
	})
	if err != nil {
		return nil, err
	}

	flush(ctx, s.queue, pending)
	return doc, nil
}

// GetDocument retrieves a document by UUID.
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrDocumentNotFound)
	}
	return doc, nil
}

// GetDocumentAction derives the document action record from the parent
// publication's responsible organisation.
func (s *DocumentService) GetDocumentAction(ctx context.Context, id uuid.UUID) (*model.DocumentAction, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrDocumentNotFound)
	}

	pub, err := s.store.GetPublicationByID(ctx, doc.PublicationID)
	if err != nil {
		return nil, notFound(err, &status.TransitionError{Err: status.ErrParentNotFound})
	}

	action := doc.Action(pub)
	return &action, nil
}

// UpdateDocument applies metadata changes and, when a target status is
// supplied, performs the guarded status transition validated against the
// parent publication's current status.
func (s *DocumentService) UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*model.Document, error) {
	var doc *model.Document
	var pending []index.Action

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		doc, err = tx.GetDocument(ctx, req.UUID)
		if err != nil {
			return notFound(err, ErrDocumentNotFound)
		}

		old := doc.Status
		target := old
		if req.Status != nil {
			if !req.Status.Valid() {
				return ErrInvalidStatus
			}
			target = *req.Status
		}

		pub, err := tx.GetPublicationByID(ctx, doc.PublicationID)
		if err != nil {
			return notFound(err, &status.TransitionError{Err: status.ErrParentNotFound, From: old, To: target})
		}

		if err := status.DocumentTransition(old, target, pub.Status); err != nil {
			return err
		}

		if req.OfficialTitle != nil {
			doc.OfficialTitle = *req.OfficialTitle
		}
		if req.ShortTitle != nil {
			doc.ShortTitle = *req.ShortTitle
		}
		if req.Description != nil {
			doc.Description = *req.Description
		}
		if req.FileName != nil {
			doc.FileName = *req.FileName
		}
		if req.FileSize != nil {
			doc.FileSize = *req.FileSize
		}
		if req.StoreServiceID != nil {
			doc.StoreServiceID = *req.StoreServiceID
		}
		if req.StoreObjectID != nil {
			doc.StoreObjectID = *req.StoreObjectID
		}
		if !doc.ValidStoreReference() {
			return ErrStoreReference
		}
		if req.Lock != nil {
			doc.Lock = *req.Lock
		}

		uploadCompleted := false
		if req.UploadComplete != nil {
			uploadCompleted = *req.UploadComplete && !doc.UploadComplete
			doc.UploadComplete = *req.UploadComplete
			if doc.UploadComplete {
				doc.Lock = ""
			}
		}

		if target != old {
			now := time.Now()
			switch target {
			case status.Published:
				doc.PublishedAt = &now
			case status.Revoked:
				doc.RevokedAt = &now
			}
			doc.Status = target
		}

		if err := tx.UpdateDocument(ctx, doc); err != nil {
			return err
		}

		if err := s.audit.Record(ctx, tx, model.AuditUpdate, documentKind, doc.UUID, req.Actor, doc, req.Remarks); err != nil {
			return err
		}

		pending = index.Decide(index.KindDocument, doc.UUID, old, target, doc.UploadComplete, s.downloadURL(doc))

		// a published document whose upload just finished becomes eligible
		// for indexing without a status transition
		if uploadCompleted && target == old && doc.Status == status.Published {
			pending = append(pending, index.Action{
				Op:          index.OpAdd,
				Kind:        index.KindDocument,
				UUID:        doc.UUID,
				DownloadURL: s.downloadURL(doc),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	flush(ctx, s.queue, pending)
	return doc, nil
}

// DeleteDocument hard-deletes a document and, when it was published,
// schedules a forced index removal carrying only the identity.
func (s *DocumentService) DeleteDocument(ctx context.Context, id uuid.UUID, actor audit.Actor) error {
	var pending []index.Action

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		doc, err := tx.GetDocument(ctx, id)
		if err != nil {
			return notFound(err, ErrDocumentNotFound)
		}

		if err := s.audit.Record(ctx, tx, model.AuditDelete, documentKind, doc.UUID, actor, doc, ""); err != nil {
			return err
		}
		if doc.Status == status.Published {
			pending = append(pending, index.Removal(index.KindDocument, doc.UUID))
		}

		return tx.DeleteDocument(ctx, doc.ID)
	})
	if err != nil {
		return err
	}

	flush(ctx, s.queue, pending)
	return nil
}

func (s *DocumentService) downloadURL(doc *model.Document) string {
	return s.baseURL + doc.DownloadPath()
}
