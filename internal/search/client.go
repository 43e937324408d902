// Package search defines the contract with the external search-indexing
// collaborator. This repository only decides whether to enqueue index work;
// executing the remote call is the collaborator's concern, reached through
// the Client interface.
package search

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gpp-woo/publicationbank/internal/model"
)

// Client indexes and de-indexes registry records in the search component.
type Client interface {
	IndexPublication(ctx context.Context, pub *model.Publication) error
	RemovePublication(ctx context.Context, uuid string, force bool) error
	IndexDocument(ctx context.Context, doc *model.Document, downloadURL string) error
	RemoveDocument(ctx context.Context, uuid string, force bool) error
}

var _ Client = (*LogClient)(nil)

// LogClient logs index operations instead of calling a search service.
// Used when no search backend is deployed.
type LogClient struct{}

func NewLogClient() *LogClient {
	return &LogClient{}
}

func (c *LogClient) IndexPublication(ctx context.Context, pub *model.Publication) error {
	logrus.Infof("index publication %s", pub.UUID)
	return nil
}

func (c *LogClient) RemovePublication(ctx context.Context, uuid string, force bool) error {
	logrus.Infof("remove publication %s from index (force=%v)", uuid, force)
	return nil
}

func (c *LogClient) IndexDocument(ctx context.Context, doc *model.Document, downloadURL string) error {
	logrus.Infof("index document %s with download url %s", doc.UUID, downloadURL)
	return nil
}

func (c *LogClient) RemoveDocument(ctx context.Context, uuid string, force bool) error {
	logrus.Infof("remove document %s from index (force=%v)", uuid, force)
	return nil
}
