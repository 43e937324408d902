// Package index decides which search-index side effects a committed status
// transition requires and queues them for asynchronous execution. The
// decision happens inside the transaction; the enqueue must happen strictly
// after the transaction committed, so the index is never told about a state
// that was rolled back.
package index

import "github.com/gpp-woo/publicationbank/internal/status"

// EntityKind identifies the record kind an index action applies to.
type EntityKind string

const (
	KindPublication EntityKind = "publication"
	KindDocument    EntityKind = "document"
)

// Op is the operation an Action performs against the search index.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
)

// Action is one queued index job. For OpAdd on documents DownloadURL
// carries the absolute download reference of the binary. Force marks a
// removal for a hard-deleted row: the consumer must not try to re-validate
// against the database, the row is gone.
type Action struct {
	Op          Op         `json:"op"`
	Kind        EntityKind `json:"kind"`
	UUID        string     `json:"uuid"`
	DownloadURL string     `json:"download_url,omitempty"`
	Force       bool       `json:"force,omitempty"`
}

// Decide maps a committed (old, new) status pair onto the index actions to
// enqueue. Identity transitions never dispatch. A transition into published
// only dispatches an add once the upload is complete; the add for a pending
// upload is dispatched by the upload-completion path instead. A transition
// away from published dispatches a removal.
func Decide(kind EntityKind, uuid string, old, new status.Status, uploadComplete bool, downloadURL string) []Action {
	if old == new {
		return nil
	}

	switch {
	case new == status.Published && uploadComplete:
		return []Action{{
			Op:          OpAdd,
			Kind:        kind,
			UUID:        uuid,
			DownloadURL: downloadURL,
		}}
	case old == status.Published:
		return []Action{{
			Op:   OpRemove,
			Kind: kind,
			UUID: uuid,
		}}
	}
	return nil
}

// Removal builds the forced index removal for a hard-deleted entity. The
// row no longer exists, so the action carries only the identity.
func Removal(kind EntityKind, uuid string) Action {
	return Action{
		Op:    OpRemove,
		Kind:  kind,
		UUID:  uuid,
		Force: true,
	}
}
