package service

import "errors"

var (
	// ErrPublicationNotFound is returned when a publication UUID resolves to nothing.
	ErrPublicationNotFound = errors.New("publication not found")
	// ErrDocumentNotFound is returned when a document UUID resolves to nothing.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrOrganisationNotFound is returned when an organisation UUID resolves to nothing.
	ErrOrganisationNotFound = errors.New("organisation not found")
	// ErrMemberNotFound is returned when an owner identifier resolves to nothing.
	ErrMemberNotFound = errors.New("organisation member not found")
	// ErrInactiveOrganisation is returned when the publisher or responsible organisation is not active.
	ErrInactiveOrganisation = errors.New("organisation is not active")
	// ErrPublisherRequired is returned when a publication leaves the concept state without a publisher.
	ErrPublisherRequired = errors.New("a publisher is required for published publications")
	// ErrCategoriesRequired is returned when a publication leaves the concept state without categories.
	ErrCategoriesRequired = errors.New("at least one information category is required")
	// ErrInvalidStatus is returned when a request carries an unknown status value.
	ErrInvalidStatus = errors.New("invalid publication status")
	// ErrStoreReference is returned when only one half of the document store identifier pair is set.
	ErrStoreReference = errors.New("document store service and object id must both be set or both be unset")
)
