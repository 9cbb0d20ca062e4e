package models

// Card is an atomic discussion unit placed in a column.
type Card struct {
	ID             string
	ColumnID       string
	Content        string
	AuthorID       *string // nil means anonymous
	Votes          map[string]int
	LinkedCardIDs  []string
	IsRevealed     bool
	PromotedTaskID *string
}

// Clone deep-copies the card, including its vote map and adjacency list.
func (c *Card) Clone() *Card {
	out := *c
	if c.AuthorID != nil {
		id := *c.AuthorID
		out.AuthorID = &id
	}
	if c.PromotedTaskID != nil {
		id := *c.PromotedTaskID
		out.PromotedTaskID = &id
	}
	out.Votes = make(map[string]int, len(c.Votes))
	for k, v := range c.Votes {
		out.Votes[k] = v
	}
	out.LinkedCardIDs = append([]string(nil), c.LinkedCardIDs...)
	return &out
}

// Equal reports structural equality. Used to suppress redundant writes into
// the replicated document.
func (c *Card) Equal(other *Card) bool {
	if other == nil {
		return false
	}
	if c.ID != other.ID || c.ColumnID != other.ColumnID || c.Content != other.Content || c.IsRevealed != other.IsRevealed {
		return false
	}
	if !strPtrEqual(c.AuthorID, other.AuthorID) || !strPtrEqual(c.PromotedTaskID, other.PromotedTaskID) {
		return false
	}
	if len(c.Votes) != len(other.Votes) {
		return false
	}
	for k, v := range c.Votes {
		if ov, ok := other.Votes[k]; !ok || ov != v {
			return false
		}
	}
	if len(c.LinkedCardIDs) != len(other.LinkedCardIDs) {
		return false
	}
	linked := make(map[string]struct{}, len(other.LinkedCardIDs))
	for _, id := range other.LinkedCardIDs {
		linked[id] = struct{}{}
	}
	for _, id := range c.LinkedCardIDs {
		if _, ok := linked[id]; !ok {
			return false
		}
	}
	return true
}

// IsLinkedTo reports whether other is a direct neighbor of the card.
func (c *Card) IsLinkedTo(other string) bool {
	for _, id := range c.LinkedCardIDs {
		if id == other {
			return true
		}
	}
	return false
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
