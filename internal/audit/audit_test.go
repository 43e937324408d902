package audit

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gpp-woo/publicationbank/internal/compress"
	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/store"
	"github.com/gpp-woo/publicationbank/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}

func TestLogger_RecordAndSnapshot(t *testing.T) {
	st := store.NewGormStore(tester.TestDB())
	ctx := context.Background()

	logger := NewLogger(compress.NewGZip())
	entityUUID := uuid.New().String()

	snapshot := map[string]any{
		"official_title": "verslag",
		"status":         "published",
	}
	err := logger.Record(ctx, st, model.AuditUpdate, "publication", entityUUID, Actor{
		ID:          "user-1",
		DisplayName: "Tester",
	}, snapshot, "statuswijziging")
	assert.NoError(t, err)

	var record model.AuditRecord
	err = tester.TestDB().Where("entity_uuid = ?", entityUUID).First(&record).Error
	assert.NoError(t, err)
	assert.Equal(t, model.AuditUpdate, record.Event)
	assert.Equal(t, "user-1", record.ActorID)
	assert.Equal(t, "gzip", record.Codec)
	assert.Equal(t, "statuswijziging", record.Remarks)

	decoded, err := Snapshot(&record)
	assert.NoError(t, err)
	assert.Equal(t, "verslag", decoded["official_title"])
	assert.Equal(t, "published", decoded["status"])
}
