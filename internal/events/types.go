package events

import (
	"time"

	"github.com/retroflect/retroflect/internal/models"
)

// Origin indicates which side produced a snapshot.
type Origin string

const (
	// OriginLocal marks a snapshot produced by a mutation on this device.
	OriginLocal Origin = "local"
	// OriginRemote marks a snapshot reconstructed from the replicated store.
	OriginRemote Origin = "remote"
)

// Snapshot is one full-board notification delivered to subscribers. The board
// is a deep copy; subscribers may keep or mutate it freely.
type Snapshot struct {
	Board     *models.Board
	Origin    Origin
	Timestamp time.Time
}
