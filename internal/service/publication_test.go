package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gpp-woo/publicationbank/internal/audit"
	"github.com/gpp-woo/publicationbank/internal/index"
	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/status"
)

func TestPublicationService_CreateConcept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "Besluit herinrichting dorpsplein",
		Status:          status.Concept,
	})
	assert.NoError(t, err)
	assert.Equal(t, status.Concept, pub.Status)
	assert.Nil(t, pub.PublishedAt)

	// concepts never reach the index
	assert.Empty(t, f.queue.Pending())
}

func TestPublicationService_CreatePublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "Jaarverslag 2025",
		Status:          status.Published,
		PublisherUUID:   f.publisherUUID(t),
		CategoryUUIDs:   f.categoryUUIDs(t, f.retain),
	})
	assert.NoError(t, err)
	assert.Equal(t, status.Published, pub.Status)
	assert.NotNil(t, pub.PublishedAt)

	pending := f.queue.Pending()
	assert.Len(t, pending, 1)
	assert.Equal(t, index.OpAdd, pending[0].Op)
	assert.Equal(t, index.KindPublication, pending[0].Kind)
	assert.Equal(t, pub.UUID, pending[0].UUID)
}

func TestPublicationService_CreateRevokedRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "nooit bestaan",
		Status:          status.Revoked,
	})
	assert.ErrorIs(t, err, status.ErrIllegalStateChange)
	assert.Empty(t, f.queue.Pending())
}

func TestPublicationService_CreatePublishedRequiresPublisherAndCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "zonder uitgever",
		Status:          status.Published,
		CategoryUUIDs:   f.categoryUUIDs(t, f.retain),
	})
	assert.ErrorIs(t, err, ErrPublisherRequired)

	_, err = f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "zonder categorie",
		Status:          status.Published,
		PublisherUUID:   f.publisherUUID(t),
	})
	assert.ErrorIs(t, err, ErrCategoriesRequired)

	assert.Empty(t, f.queue.Pending())
}

func TestPublicationService_InactivePublisherRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inactive := mustUUID(t, f.inactive.UUID)
	_, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "opgeheven uitgever",
		Status:          status.Concept,
		PublisherUUID:   &inactive,
	})
	assert.ErrorIs(t, err, ErrInactiveOrganisation)
}

func TestPublicationService_IllegalTransitionLeavesStatusUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "concept blijft concept",
		Status:          status.Concept,
	})
	assert.NoError(t, err)

	// concept to revoked skips the published state and is not allowed
	target := status.Revoked
	_, err = f.pubs.UpdatePublication(ctx, UpdatePublicationRequest{
		UUID:   mustUUID(t, pub.UUID),
		Status: &target,
	})
	assert.ErrorIs(t, err, status.ErrIllegalStateChange)

	var trErr *status.TransitionError
	assert.ErrorAs(t, err, &trErr)
	assert.Equal(t, status.Concept, trErr.From)
	assert.Equal(t, status.Revoked, trErr.To)

	got, err := f.pubs.GetPublication(ctx, mustUUID(t, pub.UUID))
	assert.NoError(t, err)
	assert.Equal(t, status.Concept, got.Status)
	assert.Empty(t, f.queue.Pending())
}

func TestPublicationService_IdentityTransitionDispatchesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "metadata edit",
		Status:          status.Published,
		PublisherUUID:   f.publisherUUID(t),
		CategoryUUIDs:   f.categoryUUIDs(t, f.retain),
	})
	assert.NoError(t, err)
	assert.Len(t, f.queue.Pending(), 1)

	// published to published with a new title is a metadata-only edit
	title := "metadata edit, tweede versie"
	same := status.Published
	got, err := f.pubs.UpdatePublication(ctx, UpdatePublicationRequest{
		UUID:          mustUUID(t, pub.UUID),
		OfficialTitle: &title,
		Status:        &same,
	})
	assert.NoError(t, err)
	assert.Equal(t, title, got.OfficialTitle)
	assert.Equal(t, status.Published, got.Status)
	assert.Len(t, f.queue.Pending(), 1)
}

func TestPublicationService_PublishCascadesToDocuments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "cascade naar documenten",
		Status:          status.Concept,
		PublisherUUID:   f.publisherUUID(t),
		CategoryUUIDs:   f.categoryUUIDs(t, f.retain),
	})
	assert.NoError(t, err)

	complete, err := f.docs.CreateDocument(ctx, CreateDocumentRequest{
		PublicationUUID: mustUUID(t, pub.UUID),
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "bijlage met upload",
		CreationDate:    time.Now(),
		UploadComplete:  true,
	})
	assert.NoError(t, err)

	incomplete, err := f.docs.CreateDocument(ctx, CreateDocumentRequest{
		PublicationUUID: mustUUID(t, pub.UUID),
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "bijlage zonder upload",
		CreationDate:    time.Now(),
	})
	assert.NoError(t, err)
	assert.Empty(t, f.queue.Pending())

	target := status.Published
	_, err = f.pubs.UpdatePublication(ctx, UpdatePublicationRequest{
		UUID:   mustUUID(t, pub.UUID),
		Status: &target,
	})
	assert.NoError(t, err)

	for _, id := range []string{complete.UUID, incomplete.UUID} {
		doc, err := f.docs.GetDocument(ctx, mustUUID(t, id))
		assert.NoError(t, err)
		assert.Equal(t, status.Published, doc.Status)
		assert.NotNil(t, doc.PublishedAt)
	}

	// the add for the pending upload is deferred to upload completion
	pending := f.queue.Pending()
	assert.Len(t, pending, 2)
	assert.Equal(t, index.OpAdd, pending[0].Op)
	assert.Equal(t, index.KindDocument, pending[0].Kind)
	assert.Equal(t, complete.UUID, pending[0].UUID)
	assert.Equal(t, "http://localhost:4030/api/v1/documents/"+complete.UUID+"/download", pending[0].DownloadURL)
	assert.Equal(t, index.KindPublication, pending[1].Kind)
	assert.Equal(t, pub.UUID, pending[1].UUID)
}

func TestPublicationService_RevokeCascadesAndSkipsRevoked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "intrekking met cascade",
		Status:          status.Published,
		PublisherUUID:   f.publisherUUID(t),
		CategoryUUIDs:   f.categoryUUIDs(t, f.retain),
	})
	assert.NoError(t, err)

	published, err := f.docs.CreateDocument(ctx, CreateDocumentRequest{
		PublicationUUID: mustUUID(t, pub.UUID),
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "gepubliceerde bijlage",
		CreationDate:    time.Now(),
		UploadComplete:  true,
	})
	assert.NoError(t, err)

	revoked, err := f.docs.CreateDocument(ctx, CreateDocumentRequest{
		PublicationUUID: mustUUID(t, pub.UUID),
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "al ingetrokken bijlage",
		CreationDate:    time.Now(),
	})
	assert.NoError(t, err)

	target := status.Revoked
	_, err = f.docs.UpdateDocument(ctx, UpdateDocumentRequest{
		UUID:   mustUUID(t, revoked.UUID),
		Status: &target,
	})
	assert.NoError(t, err)

	before, err := f.docs.GetDocument(ctx, mustUUID(t, revoked.UUID))
	assert.NoError(t, err)
	queued := len(f.queue.Pending())

	_, err = f.pubs.UpdatePublication(ctx, UpdatePublicationRequest{
		UUID:   mustUUID(t, pub.UUID),
		Status: &target,
	})
	assert.NoError(t, err)

	doc, err := f.docs.GetDocument(ctx, mustUUID(t, published.UUID))
	assert.NoError(t, err)
	assert.Equal(t, status.Revoked, doc.Status)
	assert.NotNil(t, doc.RevokedAt)

	// the already revoked document is untouched by the cascade
	after, err := f.docs.GetDocument(ctx, mustUUID(t, revoked.UUID))
	assert.NoError(t, err)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.RevokedAt.Unix(), after.RevokedAt.Unix())

	pending := f.queue.Pending()[queued:]
	assert.Len(t, pending, 2)
	assert.Equal(t, index.OpRemove, pending[0].Op)
	assert.Equal(t, published.UUID, pending[0].UUID)
	assert.Equal(t, index.OpRemove, pending[1].Op)
	assert.Equal(t, pub.UUID, pending[1].UUID)
}

func TestPublicationService_RevokeCascadeMixedDocuments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "intrekking gemengde set",
		Status:          status.Published,
		PublisherUUID:   f.publisherUUID(t),
		CategoryUUIDs:   f.categoryUUIDs(t, f.retain),
	})
	assert.NoError(t, err)

	var published []*model.Document
	for _, title := range []string{"eerste bijlage", "tweede bijlage"} {
		doc, err := f.docs.CreateDocument(ctx, CreateDocumentRequest{
			PublicationUUID: mustUUID(t, pub.UUID),
			OwnerIdentifier: f.owner.Identifier,
			OfficialTitle:   title,
			CreationDate:    time.Now(),
			UploadComplete:  true,
		})
		assert.NoError(t, err)
		published = append(published, doc)
	}

	preRevoked, err := f.docs.CreateDocument(ctx, CreateDocumentRequest{
		PublicationUUID: mustUUID(t, pub.UUID),
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "eerder ingetrokken bijlage",
		CreationDate:    time.Now(),
	})
	assert.NoError(t, err)

	target := status.Revoked
	_, err = f.docs.UpdateDocument(ctx, UpdateDocumentRequest{
		UUID:   mustUUID(t, preRevoked.UUID),
		Status: &target,
	})
	assert.NoError(t, err)
	queued := len(f.queue.Pending())

	_, err = f.pubs.UpdatePublication(ctx, UpdatePublicationRequest{
		UUID:   mustUUID(t, pub.UUID),
		Status: &target,
	})
	assert.NoError(t, err)

	// one removal per published document plus one for the publication,
	// nothing for the document that was revoked before the cascade
	pending := f.queue.Pending()[queued:]
	assert.Len(t, pending, 3)

	removed := make([]string, 0, len(pending))
	for _, action := range pending {
		assert.Equal(t, index.OpRemove, action.Op)
		removed = append(removed, action.UUID)
	}
	assert.Contains(t, removed, published[0].UUID)
	assert.Contains(t, removed, published[1].UUID)
	assert.Contains(t, removed, pub.UUID)
	assert.NotContains(t, removed, preRevoked.UUID)
}

func TestPublicationService_RetentionDerivedOnPublish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "bewaartermijn",
		Status:          status.Published,
		PublisherUUID:   f.publisherUUID(t),
		CategoryUUIDs:   f.categoryUUIDs(t, f.retain, f.destroy),
	})
	assert.NoError(t, err)

	got, err := f.pubs.GetPublication(ctx, mustUUID(t, pub.UUID))
	assert.NoError(t, err)

	// a retain category beats any dispose category, and the shortest
	// retain period wins
	assert.Equal(t, model.NominationRetain, got.ArchiveNomination)
	assert.NotNil(t, got.ArchiveActionDate)

	expected := got.RegisteredAt().AddDate(f.retain.RetentionYears, 0, 0)
	assert.Equal(t, expected.Format(time.DateOnly), got.ArchiveActionDate.Format(time.DateOnly))
}

func TestPublicationService_ConcurrentModificationRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "gelijktijdige wijziging",
		Status:          status.Concept,
	})
	assert.NoError(t, err)

	stale, err := f.store.GetPublication(ctx, mustUUID(t, pub.UUID))
	assert.NoError(t, err)

	fresh, err := f.store.GetPublication(ctx, mustUUID(t, pub.UUID))
	assert.NoError(t, err)
	fresh.ShortTitle = "eerste schrijver"
	assert.NoError(t, f.store.UpdatePublication(ctx, fresh))

	stale.ShortTitle = "tweede schrijver"
	err = f.store.UpdatePublication(ctx, stale)
	assert.ErrorIs(t, err, status.ErrConcurrentModification)

	got, err := f.store.GetPublication(ctx, mustUUID(t, pub.UUID))
	assert.NoError(t, err)
	assert.Equal(t, "eerste schrijver", got.ShortTitle)
}

func TestPublicationService_DeleteSchedulesForcedRemovals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub, err := f.pubs.CreatePublication(ctx, CreatePublicationRequest{
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "te verwijderen",
		Status:          status.Published,
		PublisherUUID:   f.publisherUUID(t),
		CategoryUUIDs:   f.categoryUUIDs(t, f.retain),
	})
	assert.NoError(t, err)

	doc, err := f.docs.CreateDocument(ctx, CreateDocumentRequest{
		PublicationUUID: mustUUID(t, pub.UUID),
		OwnerIdentifier: f.owner.Identifier,
		OfficialTitle:   "bijlage",
		CreationDate:    time.Now(),
		UploadComplete:  true,
	})
	assert.NoError(t, err)
	queued := len(f.queue.Pending())

	err = f.pubs.DeletePublication(ctx, mustUUID(t, pub.UUID), audit.Actor{ID: "test"})
	assert.NoError(t, err)

	_, err = f.pubs.GetPublication(ctx, mustUUID(t, pub.UUID))
	assert.ErrorIs(t, err, ErrPublicationNotFound)
	_, err = f.docs.GetDocument(ctx, mustUUID(t, doc.UUID))
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	pending := f.queue.Pending()[queued:]
	assert.Len(t, pending, 2)
	for _, action := range pending {
		assert.Equal(t, index.OpRemove, action.Op)
		assert.True(t, action.Force)
	}
}
