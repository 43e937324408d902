package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/gpp-woo/publicationbank/internal/status"
)

// Nomination determines whether archived data is retained or disposed.
type Nomination string

const (
	NominationRetain  Nomination = "retain"
	NominationDestroy Nomination = "destroy"
)

// Publication is a top-level registry entry representing a public
// disclosure record.
type Publication struct {
	gorm.Model
	UUID    string `gorm:"uuid;uniqueIndex;not null"`
	Version int64  `gorm:"not null;default:0"`

	OfficialTitle string `gorm:"not null"`
	ShortTitle    string
	Description   string
	Status        status.Status `gorm:"not null"`

	// The owner may not be unset once assigned.
	OwnerID uint                `gorm:"not null"`
	Owner   *OrganisationMember `gorm:"foreignKey:OwnerID"`

	// PublisherID and ResponsibleID must reference active organisations.
	// The publisher may only be unset while the publication is a concept.
	PublisherID   *uint
	Publisher     *Organisation `gorm:"foreignKey:PublisherID"`
	ResponsibleID *uint
	Responsible   *Organisation `gorm:"foreignKey:ResponsibleID"`
	DrafterID     *uint
	Drafter       *Organisation `gorm:"foreignKey:DrafterID"`

	Categories []InformationCategory `gorm:"many2many:publication_categories;"`

	PublishedAt *time.Time
	RevokedAt   *time.Time

	// Retention fields, derived from the attached information categories.
	// Never settable by a caller once categories are attached.
	RetentionSource      string
	SelectionCategory    string
	ArchiveNomination    Nomination
	ArchiveActionDate    *time.Time
	RetentionExplanation string
}

// RegisteredAt is the immutable registration timestamp. Not to be confused
// with the creation date of the underlying (physical) publication, which is
// usually before the registration date.
func (p *Publication) RegisteredAt() time.Time {
	return p.CreatedAt
}
