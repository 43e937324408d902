package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpp-woo/publicationbank/internal/status"
)

func TestDecideIdentityTransitionNeverDispatches(t *testing.T) {
	for _, s := range status.Values() {
		actions := Decide(KindDocument, "d1", s, s, true, "https://example.com/download")
		assert.Empty(t, actions, "identity transition on %q must not dispatch", s)
	}
}

func TestDecidePublishGatedOnUploadComplete(t *testing.T) {
	actions := Decide(KindDocument, "d1", status.Concept, status.Published, false, "https://example.com/download")
	assert.Empty(t, actions)

	actions = Decide(KindDocument, "d1", status.Concept, status.Published, true, "https://example.com/download")
	require.Len(t, actions, 1)
	assert.Equal(t, OpAdd, actions[0].Op)
	assert.Equal(t, KindDocument, actions[0].Kind)
	assert.Equal(t, "d1", actions[0].UUID)
	assert.Equal(t, "https://example.com/download", actions[0].DownloadURL)
	assert.False(t, actions[0].Force)
}

func TestDecideRevokeDispatchesRemoval(t *testing.T) {
	actions := Decide(KindPublication, "p1", status.Published, status.Revoked, true, "")
	require.Len(t, actions, 1)
	assert.Equal(t, OpRemove, actions[0].Op)
	assert.False(t, actions[0].Force)
}

func TestDecideConceptCreationDispatchesNothing(t *testing.T) {
	assert.Empty(t, Decide(KindPublication, "p1", "", status.Concept, true, ""))
	assert.Empty(t, Decide(KindDocument, "d1", "", status.Concept, false, ""))
}

func TestRemovalIsForced(t *testing.T) {
	action := Removal(KindDocument, "d1")
	assert.Equal(t, OpRemove, action.Op)
	assert.True(t, action.Force)
	assert.Equal(t, "d1", action.UUID)
}

func TestMemoryQueueOrdering(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, Removal(KindDocument, "d1")))
	require.NoError(t, queue.Enqueue(ctx, Removal(KindDocument, "d2")))

	first, err := queue.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "d1", first.UUID)

	second, err := queue.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "d2", second.UUID)

	empty, err := queue.Dequeue(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty)
}
