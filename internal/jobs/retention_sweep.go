package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gpp-woo/publicationbank/internal/store"
)

// RetentionSweep periodically reports publications whose archive action
// date has passed, so operators can archive or dispose them.
type RetentionSweep struct {
	store    store.Store
	schedule string
}

func NewRetentionSweep(schedule string, store store.Store) *RetentionSweep {
	return &RetentionSweep{
		store:    store,
		schedule: schedule,
	}
}

func (r *RetentionSweep) ID() string {
	return "retention_sweep"
}

func (r *RetentionSweep) Schedule() string {
	return r.schedule
}

func (r *RetentionSweep) Run() {
	due, err := r.store.ListPublicationsDue(context.Background(), time.Now())
	if err != nil {
		logrus.Errorf("failed to list publications due for archive action: %v", err)
		return
	}

	for _, pub := range due {
		logrus.Warnf("publication %s passed its archive action date %s (%s)",
			pub.UUID, pub.ArchiveActionDate.Format(time.DateOnly), pub.ArchiveNomination)
	}
}
