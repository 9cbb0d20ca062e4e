package models

import "time"

// Board is the full state of one retrospective/ideation board.
// It is the unit of persistence, replication and snapshot broadcast:
// the engine never hands out partially updated boards.
type Board struct {
	ID               string
	Kind             BoardKind
	ModeratorID      *string
	IsSessionActive  bool
	Columns          []*Column
	Cards            map[string]*Card
	Timer            *Timer
	HiddenEdition    bool
	VotingMode       VotingMode
	VotingPhase      VotingPhase
	MaxPointsPerUser *int
	ShowAllLinks     bool
}

// Timer is an absolute-deadline countdown. Remaining time is always derived
// from StartTime, never stored as a decrementing counter, so it survives
// reloads and clock drift on viewing devices.
type Timer struct {
	IsRunning bool
	StartTime time.Time
	Duration  time.Duration
}

// NewBoard creates a board with defaults for the given kind: inactive session,
// no moderator, the kind's default column set, no cards, no timer.
func NewBoard(id string, kind BoardKind) *Board {
	return &Board{
		ID:          id,
		Kind:        kind,
		Columns:     DefaultColumns(kind),
		Cards:       map[string]*Card{},
		VotingMode:  VotingSimpleApproval,
		VotingPhase: PhaseIdle,
	}
}

// Budget returns the per-participant point budget for BUDGETED_POINTS voting.
func (b *Board) Budget() int {
	if b.MaxPointsPerUser != nil {
		return *b.MaxPointsPerUser
	}
	return DefaultMaxPointsPerUser
}

// Column returns the column with the given id, or nil.
func (b *Board) Column(id string) *Column {
	for _, c := range b.Columns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// IsModerator reports whether userID currently holds the moderator role.
func (b *Board) IsModerator(userID string) bool {
	return b.IsSessionActive && b.ModeratorID != nil && *b.ModeratorID == userID
}

// Clone deep-copies the board. Snapshots handed to subscribers and stores must
// never alias the engine's working state.
func (b *Board) Clone() *Board {
	out := *b
	if b.ModeratorID != nil {
		id := *b.ModeratorID
		out.ModeratorID = &id
	}
	if b.MaxPointsPerUser != nil {
		n := *b.MaxPointsPerUser
		out.MaxPointsPerUser = &n
	}
	if b.Timer != nil {
		t := *b.Timer
		out.Timer = &t
	}
	out.Columns = make([]*Column, len(b.Columns))
	for i, c := range b.Columns {
		cc := *c
		out.Columns[i] = &cc
	}
	out.Cards = make(map[string]*Card, len(b.Cards))
	for id, c := range b.Cards {
		out.Cards[id] = c.Clone()
	}
	return &out
}
