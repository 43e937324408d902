package model

import "gorm.io/gorm"

// Organisation is reference data describing a government organisation. The
// value list is synchronised from an external source and is read-only to
// this service.
type Organisation struct {
	gorm.Model
	UUID     string `gorm:"uuid;uniqueIndex;not null"`
	Name     string `gorm:"not null"`
	RSIN     string
	IsActive bool `gorm:"not null;default:true"`
}

// OrganisationMember identifies a user within an organisation. Publications
// and documents are owned by a member.
type OrganisationMember struct {
	gorm.Model
	Identifier  string `gorm:"uniqueIndex;not null"`
	DisplayName string `gorm:"not null"`
}

// InformationCategory clarifies the kind of information present in a
// publication and carries the retention policy parameters the retention
// calculator derives from.
type InformationCategory struct {
	gorm.Model
	UUID       string `gorm:"uuid;uniqueIndex;not null"`
	Identifier string `gorm:"not null"`
	Name       string `gorm:"not null"`

	// Ordering within the value list, used as the deterministic tie-break
	// when multiple categories share a retention period.
	Order int `gorm:"not null;default:0"`

	Nomination           Nomination `gorm:"not null"`
	RetentionYears       int        `gorm:"not null"`
	RetentionSource      string
	SelectionCategory    string
	RetentionExplanation string
}
