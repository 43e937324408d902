// Package service implements the publication and document lifecycle
// operations: guarded status transitions, parent/child cascades, retention
// recomputation, audit logging, and post-commit index dispatch. It is the
// single entry point for every caller (admin, API, CLI) that can trigger a
// transition.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gpp-woo/publicationbank/internal/index"
	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/store"
)

const (
	publicationKind = "publication"
	documentKind    = "document"
)

// flush hands the index actions collected during a transaction to the work
// queue. Called strictly after the transaction committed. Enqueue failures
// are logged and swallowed: the system of record never depends on indexing
// succeeding.
func flush(ctx context.Context, queue index.Queue, actions []index.Action) {
	for _, action := range actions {
		if err := queue.Enqueue(ctx, action); err != nil {
			logrus.Errorf("failed to enqueue index action %s %s %s: %v", action.Op, action.Kind, action.UUID, err)
		}
	}
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// resolveOrganisation looks up an organisation reference. Publisher and
// responsible organisation references must point at active organisations;
// the drafter has no activity constraint.
func resolveOrganisation(ctx context.Context, tx store.Store, id uuid.UUID, requireActive bool) (*model.Organisation, error) {
	org, err := tx.GetOrganisation(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrOrganisationNotFound)
	}
	if requireActive && !org.IsActive {
		return nil, ErrInactiveOrganisation
	}
	return org, nil
}

func resolveMember(ctx context.Context, tx store.Store, identifier string) (*model.OrganisationMember, error) {
	member, err := tx.GetOrganisationMember(ctx, identifier)
	if err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}
	return member, nil
}
