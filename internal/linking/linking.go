// Package linking maintains the undirected card graph. Each card stores its
// own half of every edge; all symmetric updates live here so the two halves
// can never diverge.
package linking

import "github.com/retroflect/retroflect/internal/models"

// Toggle links a and b if they are unlinked, and unlinks them otherwise.
// Both adjacency lists are updated within the same mutation, never just one.
func Toggle(b *models.Board, cardA, cardB string) bool {
	if cardA == cardB {
		return false
	}
	a, okA := b.Cards[cardA]
	c, okB := b.Cards[cardB]
	if !okA || !okB {
		return false
	}
	if a.IsLinkedTo(cardB) {
		a.LinkedCardIDs = remove(a.LinkedCardIDs, cardB)
		c.LinkedCardIDs = remove(c.LinkedCardIDs, cardA)
	} else {
		a.LinkedCardIDs = append(a.LinkedCardIDs, cardB)
		c.LinkedCardIDs = append(c.LinkedCardIDs, cardA)
	}
	return true
}

// Prune removes cardID from every other card's adjacency list. Must run in
// the same mutation that deletes the card, otherwise dangling references
// survive in the remaining cards.
func Prune(b *models.Board, cardID string) {
	for _, card := range b.Cards {
		if card.ID == cardID {
			continue
		}
		if card.IsLinkedTo(cardID) {
			card.LinkedCardIDs = remove(card.LinkedCardIDs, cardID)
		}
	}
}

// ReachableFrom returns the ids of every card transitively connected to
// source, excluding source itself. Breadth-first over the adjacency lists.
func ReachableFrom(b *models.Board, source string) map[string]struct{} {
	reached := map[string]struct{}{}
	if _, ok := b.Cards[source]; !ok {
		return reached
	}
	queue := []string{source}
	visited := map[string]struct{}{source: {}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		card, ok := b.Cards[current]
		if !ok {
			continue
		}
		for _, next := range card.LinkedCardIDs {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			reached[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return reached
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
