package events

// Publisher is the outward-facing half of the snapshot fanout. The board
// store publishes after every successful mutation and after every remote
// reconstruction; UI collaborators subscribe.
type Publisher interface {
	// Publish delivers a snapshot to every subscriber. Non-blocking: slow
	// subscribers lose intermediate snapshots, never block the engine.
	Publish(snap Snapshot)

	// Subscribe registers a new subscriber and returns its channel plus an
	// unsubscribe function.
	Subscribe() (<-chan Snapshot, func())

	// Close tears down every subscription.
	Close()
}

// Compile-time verification that *Bus implements Publisher
var _ Publisher = (*Bus)(nil)
