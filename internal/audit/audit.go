// Package audit writes audit trail records for entity mutations. Audit
// records are persisted in the same transaction as the mutation they
// describe: audit durability is coupled to primary-store durability, unlike
// index dispatch which is deliberately best effort.
package audit

import (
	"context"
	"encoding/json"

	"github.com/gpp-woo/publicationbank/internal/compress"
	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/store"
)

// Actor identifies who performed a mutation, as reported by the calling
// layer (admin or API).
type Actor struct {
	ID          string
	DisplayName string
}

// Logger serializes entity snapshots and appends audit records through the
// store of the running transaction.
type Logger struct {
	codec compress.Compress
}

func NewLogger(codec compress.Compress) *Logger {
	return &Logger{codec: codec}
}

// Record writes one audit record for the given entity snapshot.
func (l *Logger) Record(ctx context.Context, tx store.AuditStore, event model.AuditEvent, kind, entityUUID string, actor Actor, snapshot any, remarks string) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	encoded, err := l.codec.Encode(payload)
	if err != nil {
		return err
	}

	return tx.CreateAuditRecord(ctx, &model.AuditRecord{
		EntityKind: kind,
		EntityUUID: entityUUID,
		Event:      event,
		ActorID:    actor.ID,
		ActorName:  actor.DisplayName,
		Snapshot:   encoded,
		Codec:      l.codec.Name(),
		Remarks:    remarks,
	})
}

// Snapshot decodes the snapshot payload of a stored audit record.
func Snapshot(record *model.AuditRecord) (map[string]any, error) {
	payload, err := compress.ByName(record.Codec).Decode(record.Snapshot)
	if err != nil {
		return nil, err
	}

	var snapshot map[string]any
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
