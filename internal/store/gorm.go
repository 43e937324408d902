package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/status"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreatePublication(ctx context.Context, pub *model.Publication) error {
	return g.db.WithContext(ctx).Create(pub).Error
}

func (g *GormStore) GetPublication(ctx context.Context, id uuid.UUID) (*model.Publication, error) {
	var pub model.Publication
	err := g.db.WithContext(ctx).
		Preload("Categories").
		Preload("Owner").
		Preload("Publisher").
		Preload("Responsible").
		Preload("Drafter").
		Where("uuid = ?", id.String()).
		First(&pub).Error
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

func (g *GormStore) GetPublicationByID(ctx context.Context, id uint) (*model.Publication, error) {
	var pub model.Publication
	err := g.db.WithContext(ctx).
		Preload("Categories").
		Preload("Responsible").
		First(&pub, id).Error
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

func (g *GormStore) ListPublications(ctx context.Context) ([]*model.Publication, int64, error) {
	var pubs []*model.Publication
	err := g.db.WithContext(ctx).Preload("Categories").Order("created_at desc").Find(&pubs).Error
	if err != nil {
		return nil, 0, err
	}
	return pubs, int64(len(pubs)), nil
}

// UpdatePublication writes all publication columns guarded by the version
// the caller read. Zero rows affected means another writer got there first.
func (g *GormStore) UpdatePublication(ctx context.Context, pub *model.Publication) error {
	current := pub.Version
	pub.Version = current + 1

	res := g.db.WithContext(ctx).Model(&model.Publication{}).
		Where("id = ? AND version = ?", pub.ID, current).
		Select("*").
		Omit("id", "created_at", "Categories", "Owner", "Publisher", "Responsible", "Drafter").
		Updates(pub)
	if res.Error != nil {
		pub.Version = current
		return res.Error
	}
	if res.RowsAffected == 0 {
		pub.Version = current
		logrus.Warnf("stale write on publication %s rejected", pub.UUID)
		return status.ErrConcurrentModification
	}

	return nil
}

func (g *GormStore) ReplacePublicationCategories(ctx context.Context, pub *model.Publication, categories []model.InformationCategory) error {
	if err := g.db.WithContext(ctx).Model(pub).Association("Categories").Replace(&categories); err != nil {
		return err
	}
	pub.Categories = categories
	return nil
}

func (g *GormStore) DeletePublication(ctx context.Context, id uint) error {
	// dependent documents cascade in the same transaction
	if err := g.db.WithContext(ctx).Unscoped().Where("publication_id = ?", id).Delete(&model.Document{}).Error; err != nil {
		return err
	}
	return g.db.WithContext(ctx).Unscoped().Delete(&model.Publication{}, id).Error
}

func (g *GormStore) ListPublicationsDue(ctx context.Context, before time.Time) ([]*model.Publication, error) {
	var pubs []*model.Publication
	err := g.db.WithContext(ctx).
		Where("archive_action_date IS NOT NULL AND archive_action_date <= ?", before).
		Order("archive_action_date").
		Find(&pubs).Error
	return pubs, err
}

func (g *GormStore) CreateDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Create(doc).Error
}

func (g *GormStore) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	err := g.db.WithContext(ctx).Preload("Owner").Where("uuid = ?", id.String()).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (g *GormStore) ListDocuments(ctx context.Context, publicationID uint) ([]*model.Document, error) {
	var docs []*model.Document
	err := g.db.WithContext(ctx).Where("publication_id = ?", publicationID).Order("created_at").Find(&docs).Error
	return docs, err
}

func (g *GormStore) ListDocumentsByStatus(ctx context.Context, publicationID uint, statuses ...status.Status) ([]*model.Document, error) {
	var docs []*model.Document
	err := g.db.WithContext(ctx).
		Where("publication_id = ? AND status IN (?)", publicationID, statuses).
		Order("created_at").
		Find(&docs).Error
	return docs, err
}

// UpdateDocument writes all document columns guarded by the version the
// caller read.
func (g *GormStore) UpdateDocument(ctx context.Context, doc *model.Document) error {
	current := doc.Version
	doc.Version = current + 1

	res := g.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ? AND version = ?", doc.ID, current).
		Select("*").
		Omit("id", "created_at", "Publication", "Owner").
		Updates(doc)
	if res.Error != nil {
		doc.Version = current
		return res.Error
	}
	if res.RowsAffected == 0 {
		doc.Version = current
		logrus.Warnf("stale write on document %s rejected", doc.UUID)
		return status.ErrConcurrentModification
	}

	return nil
}

// UpdateDocumentInCascade writes a document without the optimistic guard.
// Only called for rows read inside the running transaction.
func (g *GormStore) UpdateDocumentInCascade(ctx context.Context, doc *model.Document) error {
	doc.Version++
	err := g.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ?", doc.ID).
		Select("*").
		Omit("id", "created_at", "Publication", "Owner").
		Updates(doc).Error
	if err != nil {
		doc.Version--
	}
	return err
}

func (g *GormStore) DeleteDocument(ctx context.Context, id uint) error {
	return g.db.WithContext(ctx).Unscoped().Delete(&model.Document{}, id).Error
}

func (g *GormStore) CreateOrganisation(ctx context.Context, org *model.Organisation) error {
	return g.db.WithContext(ctx).Create(org).Error
}

func (g *GormStore) GetOrganisation(ctx context.Context, id uuid.UUID) (*model.Organisation, error) {
	var org model.Organisation
	err := g.db.WithContext(ctx).Where("uuid = ?", id.String()).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (g *GormStore) CreateOrganisationMember(ctx context.Context, member *model.OrganisationMember) error {
	return g.db.WithContext(ctx).Create(member).Error
}

func (g *GormStore) GetOrganisationMember(ctx context.Context, identifier string) (*model.OrganisationMember, error) {
	var member model.OrganisationMember
	err := g.db.WithContext(ctx).Where("identifier = ?", identifier).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (g *GormStore) CreateInformationCategory(ctx context.Context, category *model.InformationCategory) error {
	return g.db.WithContext(ctx).Create(category).Error
}

func (g *GormStore) ListInformationCategories(ctx context.Context, ids []uuid.UUID) ([]model.InformationCategory, error) {
	uuids := make([]string, 0, len(ids))
	for _, id := range ids {
		uuids = append(uuids, id.String())
	}

	var categories []model.InformationCategory
	err := g.db.WithContext(ctx).Where("uuid IN (?)", uuids).Order("\"order\", identifier").Find(&categories).Error
	return categories, err
}

func (g *GormStore) CreateAuditRecord(ctx context.Context, record *model.AuditRecord) error {
	return g.db.WithContext(ctx).Create(record).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
