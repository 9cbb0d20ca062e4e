// Package replication defines the port to the shared eventually-consistent
// document and the reconciliation logic between it and the rest of the
// engine. The document is injected, never imported as a singleton, so
// single-user and test builds can run against the in-memory fake.
package replication

// Txn is the write half of the port: scalar keys plus the keyed "columns" and
// "cards" collections. Everything applied inside one Transact call lands as a
// single changeset.
type Txn interface {
	SetScalar(key string, value any) error
	DeleteScalar(key string) error
	SetEntry(collection, id string, fields map[string]any) error
	DeleteEntry(collection, id string) error
}

// Doc is the replicated document port.
type Doc interface {
	// IsEmpty reports whether any peer has ever written board state.
	IsEmpty() (bool, error)

	// Scalar returns a scalar field, or nil when absent.
	Scalar(key string) (any, error)

	// Entries returns a full copy of a keyed collection.
	Entries(collection string) (map[string]map[string]any, error)

	// Transact applies fn as one atomic changeset.
	Transact(fn func(tx Txn) error) error

	// Observe registers a callback invoked after remote changes have been
	// merged into the document. Local transactions never fire it.
	Observe(fn func())

	// Save serializes the document for persistence or bootstrap transfer.
	Save() ([]byte, error)
}

// Scalar keys mirrored into the document. Collections: "columns", "cards".
const (
	ColColumns = "columns"
	ColCards   = "cards"

	KeyModeratorID      = "moderatorId"
	KeySessionActive    = "isSessionActive"
	KeyHiddenEdition    = "hiddenEdition"
	KeyVotingMode       = "votingMode"
	KeyVotingPhase      = "votingPhase"
	KeyMaxPointsPerUser = "maxPointsPerUser"
	KeyShowAllLinks     = "showAllLinks"
	KeyTimerRunning     = "timerRunning"
	KeyTimerStart       = "timerStart"
	KeyTimerDuration    = "timerDuration"
)
