// Package session implements the moderator/session lifecycle and column
// locking rules as pure transformations over a board. Callers pass a board
// they own (usually a clone); every function returns false and leaves the
// board untouched when the transition is illegal.
package session

import "github.com/retroflect/retroflect/internal/models"

// Start activates the session and assigns actorID as moderator. Legal only
// while the session is inactive.
func Start(b *models.Board, actorID string) bool {
	if b.IsSessionActive || actorID == "" {
		return false
	}
	b.IsSessionActive = true
	b.ModeratorID = &actorID
	return true
}

// Restart returns the board to its inactive defaults: no moderator, no cards,
// the kind's default column set, no timer. Board identity is preserved.
// Legal only while the session is active.
func Restart(b *models.Board) bool {
	if !b.IsSessionActive {
		return false
	}
	b.IsSessionActive = false
	b.ModeratorID = nil
	b.Cards = map[string]*models.Card{}
	b.Columns = models.DefaultColumns(b.Kind)
	b.Timer = nil
	b.VotingPhase = models.PhaseIdle
	return true
}

// BecomeModerator reassigns the moderator role to actorID without touching
// the session flag. Legal only while the session is active.
func BecomeModerator(b *models.Board, actorID string) bool {
	if !b.IsSessionActive || actorID == "" {
		return false
	}
	b.ModeratorID = &actorID
	return true
}

// ToggleLock flips a column's lock. Moderator-only; any lock/unlock
// combination is reachable, sequencing is left to moderator discretion.
func ToggleLock(b *models.Board, actorID, columnID string) bool {
	if !b.IsModerator(actorID) {
		return false
	}
	col := b.Column(columnID)
	if col == nil {
		return false
	}
	col.IsLocked = !col.IsLocked
	return true
}

// LockAll locks every column. Used by timer expiry.
func LockAll(b *models.Board) {
	for _, c := range b.Columns {
		c.IsLocked = true
	}
}
