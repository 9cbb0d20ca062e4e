package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/retroflect/retroflect/internal/linking"
	"github.com/retroflect/retroflect/internal/models"
	"github.com/retroflect/retroflect/internal/session"
	"github.com/retroflect/retroflect/internal/timer"
	"github.com/retroflect/retroflect/internal/voting"
)

// The mutation API. Every method returns the resulting snapshot; validation
// failures return the unchanged snapshot with no error.

// AddCard creates a card in an unlocked column. An anonymous card carries no
// author id anywhere, including in the replicated document. When the board is
// a hidden edition the card starts unrevealed.
func (s *Store) AddCard(ctx context.Context, actorID, columnID, content string, anonymous bool) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		col := b.Column(columnID)
		if col == nil || col.IsLocked || content == "" {
			return false
		}
		card := &models.Card{
			ID:         uuid.NewString(),
			ColumnID:   columnID,
			Content:    content,
			Votes:      map[string]int{},
			IsRevealed: !b.HiddenEdition,
		}
		if !anonymous && actorID != "" {
			author := actorID
			card.AuthorID = &author
		}
		b.Cards[card.ID] = card
		return true
	})
}

// DeleteCard removes a card and prunes its id from every other card's
// adjacency list within the same mutation.
func (s *Store) DeleteCard(ctx context.Context, cardID string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		if _, ok := b.Cards[cardID]; !ok {
			return false
		}
		linking.Prune(b, cardID)
		delete(b.Cards, cardID)
		return true
	})
}

// UpdateCardContent replaces a card's text.
func (s *Store) UpdateCardContent(ctx context.Context, cardID, content string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		card, ok := b.Cards[cardID]
		if !ok || content == "" {
			return false
		}
		card.Content = content
		return true
	})
}

// UpdateCardAuthor sets or clears a card's author. A nil author makes the
// card anonymous.
func (s *Store) UpdateCardAuthor(ctx context.Context, cardID string, authorID *string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		card, ok := b.Cards[cardID]
		if !ok {
			return false
		}
		card.AuthorID = authorID
		return true
	})
}

// RevealCard uncovers a hidden card. Moderator-only.
func (s *Store) RevealCard(ctx context.Context, actorID, cardID string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		card, ok := b.Cards[cardID]
		if !ok || !b.IsModerator(actorID) || card.IsRevealed {
			return false
		}
		card.IsRevealed = true
		return true
	})
}

// StartSession activates the session with actorID as moderator.
func (s *Store) StartSession(ctx context.Context, actorID string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		return session.Start(b, actorID)
	})
}

// RestartSession resets the board to its inactive defaults. The explicit user
// confirmation required by the UI happens before this call; the engine only
// checks legality.
func (s *Store) RestartSession(ctx context.Context) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		return session.Restart(b)
	})
}

// BecomeModerator reassigns the moderator role to actorID. Confirmation is a
// UI concern, as with RestartSession.
func (s *Store) BecomeModerator(ctx context.Context, actorID string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		return session.BecomeModerator(b, actorID)
	})
}

// ToggleLock flips a column's lock. Moderator-only.
func (s *Store) ToggleLock(ctx context.Context, actorID, columnID string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		return session.ToggleLock(b, actorID, columnID)
	})
}

// SetVotingMode switches the aggregation rule. Moderator-only. Existing
// grades are not revalidated against the new mode's domain.
func (s *Store) SetVotingMode(ctx context.Context, actorID string, mode models.VotingMode) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		switch mode {
		case models.VotingSimpleApproval, models.VotingTernary,
			models.VotingBudgetedPoints, models.VotingMajorityJudgment:
		default:
			return false
		}
		if !b.IsModerator(actorID) {
			return false
		}
		b.VotingMode = mode
		return true
	})
}

// SetVotingPhase moves the voting phase. Moderator-only; every pair of phases
// is reachable, ordering is moderator discretion.
func (s *Store) SetVotingPhase(ctx context.Context, actorID string, phase models.VotingPhase) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		switch phase {
		case models.PhaseIdle, models.PhaseOpen, models.PhaseRevealed:
		default:
			return false
		}
		if !b.IsModerator(actorID) {
			return false
		}
		b.VotingPhase = phase
		return true
	})
}

// SetMaxPointsPerUser overrides the BUDGETED_POINTS budget. Moderator-only;
// a nil value restores the default.
func (s *Store) SetMaxPointsPerUser(ctx context.Context, actorID string, max *int) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		if !b.IsModerator(actorID) || (max != nil && *max <= 0) {
			return false
		}
		b.MaxPointsPerUser = max
		return true
	})
}

// SetShowAllLinks toggles whether link lines are drawn for every card.
// Moderator-only.
func (s *Store) SetShowAllLinks(ctx context.Context, actorID string, show bool) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		if !b.IsModerator(actorID) {
			return false
		}
		b.ShowAllLinks = show
		return true
	})
}

// CastVote applies one vote under the active mode's rules.
func (s *Store) CastVote(ctx context.Context, cardID, userID string, grade int) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		return voting.Cast(b, cardID, userID, grade)
	})
}

// ToggleLink links or unlinks two cards, updating both adjacency lists in the
// same mutation.
func (s *Store) ToggleLink(ctx context.Context, cardA, cardB string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		return linking.Toggle(b, cardA, cardB)
	})
}

// StartTimer arms the countdown. Moderator-only.
func (s *Store) StartTimer(ctx context.Context, actorID string, duration time.Duration) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		if !b.IsModerator(actorID) {
			return false
		}
		return timer.Start(b, duration, s.now())
	})
}

// StopTimer halts the countdown, keeping the configured duration visible.
// Moderator-only.
func (s *Store) StopTimer(ctx context.Context, actorID string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		if !b.IsModerator(actorID) {
			return false
		}
		return timer.Stop(b)
	})
}

// ExpireTimerIfDue performs the timer's one authoritative side effect: when
// the moderator's own client observes an expired running timer, every column
// locks and the timer stops. Non-moderator clients display zero but never
// trigger this, so concurrent devices cannot race on the same expiry.
func (s *Store) ExpireTimerIfDue(ctx context.Context, actorID string) *models.Board {
	return s.apply(ctx, func(b *models.Board) bool {
		if !b.IsModerator(actorID) || !timer.Expired(b.Timer, s.now()) {
			return false
		}
		session.LockAll(b)
		b.Timer.IsRunning = false
		return true
	})
}

// PromoteCard creates one external task for the card and records the returned
// task id. Moderator-only; a card already promoted stays untouched. The
// outbound call happens before the mutation so a tracker failure leaves the
// board unchanged.
func (s *Store) PromoteCard(ctx context.Context, actorID, cardID string) *models.Board {
	current := s.Snapshot()
	card, ok := current.Cards[cardID]
	if !ok || card.PromotedTaskID != nil || !current.IsModerator(actorID) {
		return current
	}

	taskID, err := s.tasks.CreateTask(ctx, card.Content, card.AuthorID)
	if err != nil {
		slog.Error("failed to create external task", "card", cardID, "error", err)
		return current
	}

	return s.apply(ctx, func(b *models.Board) bool {
		card, ok := b.Cards[cardID]
		if !ok || card.PromotedTaskID != nil {
			return false
		}
		card.PromotedTaskID = &taskID
		return true
	})
}
