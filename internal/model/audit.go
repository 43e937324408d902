package model

import "gorm.io/gorm"

// AuditEvent is the kind of mutation an audit record describes.
type AuditEvent string

const (
	AuditCreate AuditEvent = "create"
	AuditUpdate AuditEvent = "update"
	AuditDelete AuditEvent = "delete"
)

// AuditRecord stores one audit event per mutated entity, carrying a full
// snapshot of the entity state after the mutation. Records are written in
// the same transaction as the mutation they describe.
type AuditRecord struct {
	gorm.Model
	EntityKind string     `gorm:"not null;index:idx_audit_entity"`
	EntityUUID string     `gorm:"not null;index:idx_audit_entity"`
	Event      AuditEvent `gorm:"not null"`

	ActorID   string `gorm:"not null"`
	ActorName string

	// Snapshot is the JSON serialization of the entity, encoded with Codec.
	Snapshot []byte
	Codec    string `gorm:"not null;default:nop"`
	Remarks  string
}
