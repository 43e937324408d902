package status

// Status is the publication status shared by publications and documents.
// The empty string is not a legal stored value; it is the pre-creation
// source state for the first transition.
type Status string

const (
	Concept   Status = "concept"
	Published Status = "published"
	Revoked   Status = "revoked"
)

// Values lists the legal stored status values.
func Values() []Status {
	return []Status{Concept, Published, Revoked}
}

func (s Status) Valid() bool {
	switch s {
	case Concept, Published, Revoked:
		return true
	}
	return false
}

type edge struct {
	from Status
	to   Status
}

// publicationEdges is the legal transition graph for publications. Identity
// transitions are handled separately and never consult the table.
var publicationEdges = map[edge]struct{}{
	{"", Concept}:        {},
	{"", Published}:      {},
	{Concept, Published}: {},
	{Published, Revoked}: {},
}

// documentEdges is the legal transition graph for documents. Each edge
// carries the publication statuses the parent must currently have.
var documentEdges = map[edge][]Status{
	{"", Concept}:        {Concept},
	{"", Published}:      {Published},
	{Concept, Published}: {Published},
	{Published, Revoked}: {Published, Revoked},
}

// PublicationTransition validates a publication status change. Identity
// transitions are always legal so that metadata-only edits do not trip the
// state machine.
func PublicationTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if _, ok := publicationEdges[edge{from, to}]; !ok {
		return &TransitionError{Err: ErrIllegalStateChange, From: from, To: to}
	}
	return nil
}

// DocumentTransition validates a document status change against the current
// status of the parent publication. A graph-legal transition with a
// mismatched parent fails with ErrIncompatibleParentStatus, which signals a
// data consistency problem rather than a disallowed workflow step.
func DocumentTransition(from, to, parent Status) error {
	if from == to {
		return nil
	}
	allowed, ok := documentEdges[edge{from, to}]
	if !ok {
		return &TransitionError{Err: ErrIllegalStateChange, From: from, To: to}
	}
	for _, p := range allowed {
		if parent == p {
			return nil
		}
	}
	return &TransitionError{Err: ErrIncompatibleParentStatus, From: from, To: to}
}
