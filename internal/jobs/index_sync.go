package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gpp-woo/publicationbank/internal/index"
	"github.com/gpp-woo/publicationbank/internal/search"
	"github.com/gpp-woo/publicationbank/internal/status"
	"github.com/gpp-woo/publicationbank/internal/store"
)

const pollInterval = time.Second

// IndexSync drains the index action queue and executes the actions against
// the search component. Before acting it re-validates the current entity
// status: the queue only records that a transition happened, the state of
// record may have moved on since.
type IndexSync struct {
	store  store.Store
	queue  index.Queue
	client search.Client
	done   chan struct{}
}

func NewIndexSync(store store.Store, queue index.Queue, client search.Client) *IndexSync {
	return &IndexSync{
		store:  store,
		queue:  queue,
		client: client,
		done:   make(chan struct{}),
	}
}

func (j *IndexSync) Stop() {
	close(j.done)
}

// Run consumes the queue until Stop is called. Dequeue blocks up to the
// backend poll interval, so the loop wakes up regularly to check done.
func (j *IndexSync) Run() {
	ctx := context.Background()
	for {
		select {
		case <-j.done:
			return
		default:
		}

		action, err := j.queue.Dequeue(ctx)
		if err != nil {
			logrus.Errorf("failed to dequeue index action: %v", err)
			continue
		}
		if action == nil {
			// in-memory backends return immediately on empty
			time.Sleep(pollInterval)
			continue
		}

		if err := j.process(ctx, action); err != nil {
			logrus.Errorf("index action %s %s %s failed: %v", action.Op, action.Kind, action.UUID, err)
		}
	}
}

func (j *IndexSync) process(ctx context.Context, action *index.Action) error {
	switch action.Op {
	case index.OpAdd:
		return j.add(ctx, action)
	case index.OpRemove:
		return j.remove(ctx, action)
	}

	logrus.Warnf("unknown index action op %q, dropping", action.Op)
	return nil
}

func (j *IndexSync) add(ctx context.Context, action *index.Action) error {
	id, err := uuid.Parse(action.UUID)
	if err != nil {
		return err
	}

	switch action.Kind {
	case index.KindPublication:
		pub, err := j.store.GetPublication(ctx, id)
		if err != nil {
			return err
		}
		if pub.Status != status.Published {
			logrus.Infof("index skipped for publication %s: status is %s", action.UUID, pub.Status)
			return nil
		}
		return j.client.IndexPublication(ctx, pub)
	case index.KindDocument:
		doc, err := j.store.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		if doc.Status != status.Published {
			logrus.Infof("index skipped for document %s: status is %s", action.UUID, doc.Status)
			return nil
		}
		if !doc.UploadComplete {
			logrus.Infof("index skipped for document %s: upload not complete", action.UUID)
			return nil
		}
		pub, err := j.store.GetPublicationByID(ctx, doc.PublicationID)
		if err != nil {
			return err
		}
		if pub.Status != status.Published {
			logrus.Infof("index skipped for document %s: publication status is %s", action.UUID, pub.Status)
			return nil
		}
		return j.client.IndexDocument(ctx, doc, action.DownloadURL)
	}
	return nil
}

func (j *IndexSync) remove(ctx context.Context, action *index.Action) error {
	// forced removals reference hard-deleted rows: act on the identity
	// alone, there is nothing left to validate against
	if !action.Force {
		id, err := uuid.Parse(action.UUID)
		if err != nil {
			return err
		}

		var current status.Status
		switch action.Kind {
		case index.KindPublication:
			pub, err := j.store.GetPublication(ctx, id)
			if err != nil {
				return err
			}
			current = pub.Status
		case index.KindDocument:
			doc, err := j.store.GetDocument(ctx, id)
			if err != nil {
				return err
			}
			current = doc.Status
		}

		if current == status.Published {
			logrus.Infof("index removal skipped for %s %s: republished meanwhile", action.Kind, action.UUID)
			return nil
		}
	}

	switch action.Kind {
	case index.KindPublication:
		return j.client.RemovePublication(ctx, action.UUID, action.Force)
	case index.KindDocument:
		return j.client.RemoveDocument(ctx, action.UUID, action.Force)
	}
	return nil
}
