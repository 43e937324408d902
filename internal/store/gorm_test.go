package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/status"
	"github.com/gpp-woo/publicationbank/internal/tester"
)

func newMember(t *testing.T, st *GormStore) *model.OrganisationMember {
	t.Helper()
	member := &model.OrganisationMember{
		Identifier:  uuid.New().String(),
		DisplayName: "Test Owner",
	}
	if err := st.CreateOrganisationMember(context.Background(), member); err != nil {
		t.Fatal(err)
	}
	return member
}

func TestGormStore_DocumentVersionGuard(t *testing.T) {
	st := NewGormStore(tester.TestDB())
	ctx := context.Background()
	member := newMember(t, st)

	pub := &model.Publication{
		UUID:          uuid.New().String(),
		OfficialTitle: "versiebewaking",
		Status:        status.Concept,
		OwnerID:       member.ID,
	}
	assert.NoError(t, st.CreatePublication(ctx, pub))

	doc := &model.Document{
		UUID:          uuid.New().String(),
		PublicationID: pub.ID,
		OwnerID:       member.ID,
		OfficialTitle: "bijlage",
		Status:        status.Concept,
	}
	assert.NoError(t, st.CreateDocument(ctx, doc))

	stale, err := st.GetDocument(ctx, uuid.MustParse(doc.UUID))
	assert.NoError(t, err)

	fresh, err := st.GetDocument(ctx, uuid.MustParse(doc.UUID))
	assert.NoError(t, err)
	fresh.ShortTitle = "eerste schrijver"
	assert.NoError(t, st.UpdateDocument(ctx, fresh))
	assert.Equal(t, stale.Version+1, fresh.Version)

	stale.ShortTitle = "tweede schrijver"
	err = st.UpdateDocument(ctx, stale)
	assert.ErrorIs(t, err, status.ErrConcurrentModification)

	got, err := st.GetDocument(ctx, uuid.MustParse(doc.UUID))
	assert.NoError(t, err)
	assert.Equal(t, "eerste schrijver", got.ShortTitle)
	assert.Equal(t, fresh.Version, got.Version)
}

func TestGormStore_CascadeUpdateSkipsVersionGuard(t *testing.T) {
	st := NewGormStore(tester.TestDB())
	ctx := context.Background()
	member := newMember(t, st)

	pub := &model.Publication{
		UUID:          uuid.New().String(),
		OfficialTitle: "cascade schrijft door",
		Status:        status.Published,
		OwnerID:       member.ID,
	}
	assert.NoError(t, st.CreatePublication(ctx, pub))

	doc := &model.Document{
		UUID:          uuid.New().String(),
		PublicationID: pub.ID,
		OwnerID:       member.ID,
		OfficialTitle: "bijlage",
		Status:        status.Published,
	}
	assert.NoError(t, st.CreateDocument(ctx, doc))

	// a cascade write bumps the version but never reports a conflict
	doc.Status = status.Revoked
	assert.NoError(t, st.UpdateDocumentInCascade(ctx, doc))
	assert.Equal(t, int64(1), doc.Version)
}

func TestGormStore_ListPublicationsDue(t *testing.T) {
	st := NewGormStore(tester.TestDB())
	ctx := context.Background()
	member := newMember(t, st)

	past := time.Now().AddDate(-1, 0, 0)
	future := time.Now().AddDate(1, 0, 0)

	due := &model.Publication{
		UUID:              uuid.New().String(),
		OfficialTitle:     "over de termijn",
		Status:            status.Published,
		OwnerID:           member.ID,
		ArchiveActionDate: &past,
	}
	assert.NoError(t, st.CreatePublication(ctx, due))

	notDue := &model.Publication{
		UUID:              uuid.New().String(),
		OfficialTitle:     "binnen de termijn",
		Status:            status.Published,
		OwnerID:           member.ID,
		ArchiveActionDate: &future,
	}
	assert.NoError(t, st.CreatePublication(ctx, notDue))

	got, err := st.ListPublicationsDue(ctx, time.Now())
	assert.NoError(t, err)

	uuids := make([]string, 0, len(got))
	for _, pub := range got {
		uuids = append(uuids, pub.UUID)
	}
	assert.Contains(t, uuids, due.UUID)
	assert.NotContains(t, uuids, notDue.UUID)
}

func TestGormStore_ListInformationCategoriesOrdering(t *testing.T) {
	st := NewGormStore(tester.TestDB())
	ctx := context.Background()

	second := &model.InformationCategory{
		UUID:           uuid.New().String(),
		Identifier:     "cat-b",
		Name:           "tweede",
		Order:          2,
		Nomination:     model.NominationDestroy,
		RetentionYears: 10,
	}
	first := &model.InformationCategory{
		UUID:           uuid.New().String(),
		Identifier:     "cat-a",
		Name:           "eerste",
		Order:          1,
		Nomination:     model.NominationRetain,
		RetentionYears: 5,
	}
	assert.NoError(t, st.CreateInformationCategory(ctx, second))
	assert.NoError(t, st.CreateInformationCategory(ctx, first))

	got, err := st.ListInformationCategories(ctx, []uuid.UUID{
		uuid.MustParse(second.UUID),
		uuid.MustParse(first.UUID),
	})
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, first.UUID, got[0].UUID)
	assert.Equal(t, second.UUID, got[1].UUID)
}

func TestGormStore_Migrate(t *testing.T) {
	st := NewGormStore(tester.TestDB())

	// migration is idempotent on an already migrated database
	assert.NoError(t, st.Migrate())
}

func TestGormStore_TransactionRollsBack(t *testing.T) {
	st := NewGormStore(tester.TestDB())
	ctx := context.Background()
	member := newMember(t, st)

	pubUUID := uuid.New().String()
	err := st.Transaction(ctx, func(tx Store) error {
		pub := &model.Publication{
			UUID:          pubUUID,
			OfficialTitle: "teruggedraaid",
			Status:        status.Concept,
			OwnerID:       member.ID,
		}
		if err := tx.CreatePublication(ctx, pub); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = st.GetPublication(ctx, uuid.MustParse(pubUUID))
	assert.Error(t, err)
}
