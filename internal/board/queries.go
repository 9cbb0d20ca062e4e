package board

import (
	"sort"

	"github.com/retroflect/retroflect/internal/linking"
	"github.com/retroflect/retroflect/internal/voting"
)

// Read-side helpers. The vote map lives in every replica regardless of phase;
// visibility is enforced here, at the query layer, not in storage.

// VotesVisibleTo reports whether userID may read per-caster tallies: the
// moderator during OPEN, everyone once REVEALED.
func (s *Store) VotesVisibleTo(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return voting.VisibleTo(s.board, userID)
}

// Score aggregates a card's votes under the board's active mode. The second
// return value is false for an unknown card.
func (s *Store) Score(cardID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.board.Cards[cardID]
	if !ok {
		return 0, false
	}
	return voting.Score(card, s.board.VotingMode), true
}

// Reachable returns the ids of every card transitively linked to source,
// excluding source itself, in stable order.
func (s *Store) Reachable(source string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := linking.ReachableFrom(s.board, source)
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Ranking returns card ids ordered by descending score under the active
// mode, ties broken by id for determinism.
func (s *Store) Ranking() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	type scored struct {
		id    string
		score int
	}
	cards := make([]scored, 0, len(s.board.Cards))
	for id, card := range s.board.Cards {
		cards = append(cards, scored{id: id, score: voting.Score(card, s.board.VotingMode)})
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].score != cards[j].score {
			return cards[i].score > cards[j].score
		}
		return cards[i].id < cards[j].id
	})
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.id
	}
	return out
}
