// Package voting implements the four vote-aggregation modes as pure
// transformations over a board's cards.
package voting

import (
	"sort"

	"github.com/retroflect/retroflect/internal/models"
)

// Cast applies one vote to the card, following the active mode's grade domain
// and re-cast semantics. It returns false and leaves the board untouched when
// the grade is out of domain, the card does not exist, or a BUDGETED_POINTS
// cast would overrun the participant's budget.
//
// Grades from a previously active mode are not validated retroactively; they
// stay in the map until re-cast.
func Cast(b *models.Board, cardID, userID string, grade int) bool {
	card, ok := b.Cards[cardID]
	if !ok || userID == "" {
		return false
	}

	switch b.VotingMode {
	case models.VotingSimpleApproval:
		if grade != 1 {
			return false
		}
		return toggleGrade(card, userID, grade)

	case models.VotingTernary:
		if grade < -1 || grade > 1 {
			return false
		}
		return toggleGrade(card, userID, grade)

	case models.VotingBudgetedPoints:
		if grade < 0 {
			return false
		}
		spent := PointsSpent(b, userID) - card.Votes[userID]
		if spent+grade > b.Budget() {
			return false
		}
		if grade == 0 {
			delete(card.Votes, userID)
			return true
		}
		ensureVotes(card)
		card.Votes[userID] = grade
		return true

	case models.VotingMajorityJudgment:
		if grade < models.GradeReject || grade > models.GradeExcellent {
			return false
		}
		// No retraction: a re-cast always replaces the previous grade.
		ensureVotes(card)
		card.Votes[userID] = grade
		return true
	}
	return false
}

// toggleGrade implements the retract-on-recast rule shared by the approval
// and ternary modes.
func toggleGrade(card *models.Card, userID string, grade int) bool {
	if prev, ok := card.Votes[userID]; ok && prev == grade {
		delete(card.Votes, userID)
		return true
	}
	ensureVotes(card)
	card.Votes[userID] = grade
	return true
}

// PointsSpent sums a participant's points across every card on the board.
func PointsSpent(b *models.Board, userID string) int {
	total := 0
	for _, card := range b.Cards {
		total += card.Votes[userID]
	}
	return total
}

// Score aggregates a card's votes under the given mode: caster count for
// approval, grade sum for ternary and budgeted points, lower median for
// majority judgment.
func Score(card *models.Card, mode models.VotingMode) int {
	switch mode {
	case models.VotingSimpleApproval:
		return len(card.Votes)
	case models.VotingMajorityJudgment:
		grades := make([]int, 0, len(card.Votes))
		for _, g := range card.Votes {
			grades = append(grades, g)
		}
		return LowerMedian(grades)
	default:
		sum := 0
		for _, g := range card.Votes {
			sum += g
		}
		return sum
	}
}

// LowerMedian sorts grades ascending and returns the value at index
// ceil(n/2)-1: the exact middle for odd n, the lower of the two middle values
// for even n. This tie-break determines card ranking and must not change.
// Returns 0 for an empty slice.
func LowerMedian(grades []int) int {
	if len(grades) == 0 {
		return 0
	}
	sorted := append([]int(nil), grades...)
	sort.Ints(sorted)
	return sorted[(len(sorted)+1)/2-1]
}

// VisibleTo reports whether userID may read per-caster tallies right now.
// This is a query-layer rule: the vote map itself is present in every replica
// regardless of phase.
func VisibleTo(b *models.Board, userID string) bool {
	switch b.VotingPhase {
	case models.PhaseRevealed:
		return true
	case models.PhaseOpen:
		return b.IsModerator(userID)
	default:
		return false
	}
}

func ensureVotes(card *models.Card) {
	if card.Votes == nil {
		card.Votes = map[string]int{}
	}
}
