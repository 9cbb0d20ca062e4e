package cli

import (
	"fmt"
	"strings"

	"github.com/retroflect/retroflect/internal/models"
)

// ResolveCard finds a card by full id or unique prefix. Prefix matching keeps
// UUID-typing out of everyday use.
func ResolveCard(b *models.Board, idOrPrefix string) (*models.Card, error) {
	if card, ok := b.Cards[idOrPrefix]; ok {
		return card, nil
	}
	var match *models.Card
	for id, card := range b.Cards {
		if strings.HasPrefix(id, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("card id %q is ambiguous", idOrPrefix)
			}
			match = card
		}
	}
	if match == nil {
		return nil, fmt.Errorf("card %q not found", idOrPrefix)
	}
	return match, nil
}

// ShortID returns the display form of a card id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
