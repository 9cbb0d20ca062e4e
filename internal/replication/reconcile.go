package replication

import (
	"time"

	"github.com/retroflect/retroflect/internal/models"
)

// Reconstruct rebuilds a full board from the replicated document. It is
// invoked on every remote change notification: no incremental patching,
// card/column cardinality is small enough that a full rebuild stays cheap.
// Scalars fall back to board defaults when absent remotely; columns are the
// default set overlaid with whatever per-id records exist, so a column can
// never silently disappear on partial remote data.
func Reconstruct(doc Doc, boardID string, kind models.BoardKind) (*models.Board, error) {
	b := models.NewBoard(boardID, kind)

	if v, err := doc.Scalar(KeyModeratorID); err != nil {
		return nil, err
	} else if s, ok := v.(string); ok && s != "" {
		b.ModeratorID = &s
	}
	if v, err := doc.Scalar(KeySessionActive); err != nil {
		return nil, err
	} else if active, ok := v.(bool); ok {
		b.IsSessionActive = active
	}
	if v, err := doc.Scalar(KeyHiddenEdition); err != nil {
		return nil, err
	} else if hidden, ok := v.(bool); ok {
		b.HiddenEdition = hidden
	}
	if v, err := doc.Scalar(KeyShowAllLinks); err != nil {
		return nil, err
	} else if show, ok := v.(bool); ok {
		b.ShowAllLinks = show
	}
	if v, err := doc.Scalar(KeyVotingMode); err != nil {
		return nil, err
	} else if s, ok := v.(string); ok && s != "" {
		b.VotingMode = models.VotingMode(s)
	}
	if v, err := doc.Scalar(KeyVotingPhase); err != nil {
		return nil, err
	} else if s, ok := v.(string); ok && s != "" {
		b.VotingPhase = models.VotingPhase(s)
	}
	if v, err := doc.Scalar(KeyMaxPointsPerUser); err != nil {
		return nil, err
	} else if n, ok := asInt(v); ok {
		b.MaxPointsPerUser = &n
	}

	if err := reconstructTimer(doc, b); err != nil {
		return nil, err
	}

	remoteColumns, err := doc.Entries(ColColumns)
	if err != nil {
		return nil, err
	}
	b.Columns = MergeWithDefaults(models.DefaultColumns(kind), remoteColumns)

	remoteCards, err := doc.Entries(ColCards)
	if err != nil {
		return nil, err
	}
	b.Cards = make(map[string]*models.Card, len(remoteCards))
	for id, fields := range remoteCards {
		b.Cards[id] = decodeCard(id, fields)
	}

	return b, nil
}

// reconstructTimer rebuilds the optional timer from its three scalar keys.
// A missing start time means no timer.
func reconstructTimer(doc Doc, b *models.Board) error {
	startVal, err := doc.Scalar(KeyTimerStart)
	if err != nil {
		return err
	}
	start, ok := asInt64(startVal)
	if !ok {
		return nil
	}
	t := &models.Timer{StartTime: time.UnixMilli(start)}
	if v, err := doc.Scalar(KeyTimerRunning); err != nil {
		return err
	} else if running, ok := v.(bool); ok {
		t.IsRunning = running
	}
	if v, err := doc.Scalar(KeyTimerDuration); err != nil {
		return err
	} else if secs, ok := asInt64(v); ok {
		t.Duration = time.Duration(secs) * time.Second
	}
	b.Timer = t
	return nil
}

// MergeWithDefaults overlays remote column records on the fixed default set.
// Default order and identity always win; remote data only contributes titles,
// colors and lock state.
func MergeWithDefaults(defaults []*models.Column, remote map[string]map[string]any) []*models.Column {
	out := make([]*models.Column, 0, len(defaults))
	for _, def := range defaults {
		col := *def
		if fields, ok := remote[def.ID]; ok {
			if title, ok := fields["title"].(string); ok && title != "" {
				col.Title = title
			}
			if color, ok := fields["color"].(string); ok && color != "" {
				col.Color = color
			}
			if locked, ok := fields["isLocked"].(bool); ok {
				col.IsLocked = locked
			}
		}
		out = append(out, &col)
	}
	return out
}

// WriteBoard transacts the whole board into the document as one changeset.
// Cards structurally equal to the record already present are not rewritten;
// cards and columns no longer on the board are deleted from the document.
func WriteBoard(doc Doc, board *models.Board) error {
	prevCards, err := doc.Entries(ColCards)
	if err != nil {
		return err
	}
	return doc.Transact(func(tx Txn) error {
		if board.ModeratorID != nil {
			if err := tx.SetScalar(KeyModeratorID, *board.ModeratorID); err != nil {
				return err
			}
		} else if err := tx.DeleteScalar(KeyModeratorID); err != nil {
			return err
		}
		if err := tx.SetScalar(KeySessionActive, board.IsSessionActive); err != nil {
			return err
		}
		if err := tx.SetScalar(KeyHiddenEdition, board.HiddenEdition); err != nil {
			return err
		}
		if err := tx.SetScalar(KeyShowAllLinks, board.ShowAllLinks); err != nil {
			return err
		}
		if err := tx.SetScalar(KeyVotingMode, string(board.VotingMode)); err != nil {
			return err
		}
		if err := tx.SetScalar(KeyVotingPhase, string(board.VotingPhase)); err != nil {
			return err
		}
		if board.MaxPointsPerUser != nil {
			if err := tx.SetScalar(KeyMaxPointsPerUser, int64(*board.MaxPointsPerUser)); err != nil {
				return err
			}
		} else if err := tx.DeleteScalar(KeyMaxPointsPerUser); err != nil {
			return err
		}

		if err := writeTimer(tx, board.Timer); err != nil {
			return err
		}

		for _, col := range board.Columns {
			err := tx.SetEntry(ColColumns, col.ID, map[string]any{
				"title":    col.Title,
				"color":    col.Color,
				"isLocked": col.IsLocked,
			})
			if err != nil {
				return err
			}
		}

		for id, card := range board.Cards {
			if prev, ok := prevCards[id]; ok && card.Equal(decodeCard(id, prev)) {
				continue
			}
			if err := tx.SetEntry(ColCards, id, encodeCard(card)); err != nil {
				return err
			}
		}
		for id := range prevCards {
			if _, ok := board.Cards[id]; !ok {
				if err := tx.DeleteEntry(ColCards, id); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeTimer(tx Txn, t *models.Timer) error {
	if t == nil {
		for _, key := range []string{KeyTimerRunning, KeyTimerStart, KeyTimerDuration} {
			if err := tx.DeleteScalar(key); err != nil {
				return err
			}
		}
		return nil
	}
	if err := tx.SetScalar(KeyTimerRunning, t.IsRunning); err != nil {
		return err
	}
	if err := tx.SetScalar(KeyTimerStart, t.StartTime.UnixMilli()); err != nil {
		return err
	}
	return tx.SetScalar(KeyTimerDuration, int64(t.Duration/time.Second))
}

// encodeCard flattens a card into replicated-entry fields.
func encodeCard(card *models.Card) map[string]any {
	fields := map[string]any{
		"columnId":   card.ColumnID,
		"content":    card.Content,
		"isRevealed": card.IsRevealed,
	}
	if card.AuthorID != nil {
		fields["authorId"] = *card.AuthorID
	}
	if card.PromotedTaskID != nil {
		fields["promotedTaskId"] = *card.PromotedTaskID
	}
	votes := make(map[string]any, len(card.Votes))
	for user, grade := range card.Votes {
		votes[user] = int64(grade)
	}
	fields["votes"] = votes
	links := make([]any, 0, len(card.LinkedCardIDs))
	for _, id := range card.LinkedCardIDs {
		links = append(links, id)
	}
	fields["linkedCardIds"] = links
	return fields
}

// decodeCard rebuilds a card from replicated-entry fields, tolerating absent
// or partially written records.
func decodeCard(id string, fields map[string]any) *models.Card {
	card := &models.Card{
		ID:    id,
		Votes: map[string]int{},
	}
	if s, ok := fields["columnId"].(string); ok {
		card.ColumnID = s
	}
	if s, ok := fields["content"].(string); ok {
		card.Content = s
	}
	if revealed, ok := fields["isRevealed"].(bool); ok {
		card.IsRevealed = revealed
	}
	if s, ok := fields["authorId"].(string); ok && s != "" {
		card.AuthorID = &s
	}
	if s, ok := fields["promotedTaskId"].(string); ok && s != "" {
		card.PromotedTaskID = &s
	}
	switch votes := fields["votes"].(type) {
	case map[string]any:
		for user, grade := range votes {
			if n, ok := asInt(grade); ok {
				card.Votes[user] = n
			}
		}
	case map[string]int:
		for user, grade := range votes {
			card.Votes[user] = grade
		}
	}
	switch links := fields["linkedCardIds"].(type) {
	case []any:
		for _, v := range links {
			if s, ok := v.(string); ok {
				card.LinkedCardIDs = append(card.LinkedCardIDs, s)
			}
		}
	case []string:
		card.LinkedCardIDs = append(card.LinkedCardIDs, links...)
	}
	return card
}

func asInt(v any) (int, bool) {
	n, ok := asInt64(v)
	return int(n), ok
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
