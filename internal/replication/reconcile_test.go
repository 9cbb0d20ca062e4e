package replication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroflect/retroflect/internal/models"
)

func sampleBoard() *models.Board {
	b := models.NewBoard("team-weekly", models.KindRetro)
	moderator := "alice"
	b.IsSessionActive = true
	b.ModeratorID = &moderator
	b.VotingMode = models.VotingBudgetedPoints
	b.VotingPhase = models.PhaseOpen
	budget := 12
	b.MaxPointsPerUser = &budget
	b.Columns[1].IsLocked = false
	b.Cards["c1"] = &models.Card{
		ID:            "c1",
		ColumnID:      models.ColumnStart,
		Content:       "pair more often",
		AuthorID:      &moderator,
		Votes:         map[string]int{"bob": 3},
		LinkedCardIDs: []string{"c2"},
		IsRevealed:    true,
	}
	b.Cards["c2"] = &models.Card{
		ID:            "c2",
		ColumnID:      models.ColumnStop,
		Content:       "late reviews",
		Votes:         map[string]int{},
		LinkedCardIDs: []string{"c1"},
	}
	b.Timer = &models.Timer{
		IsRunning: true,
		StartTime: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Duration:  5 * time.Minute,
	}
	return b
}

func TestWriteAndReconstructRoundTrip(t *testing.T) {
	for _, doc := range []Doc{NewMemoryDoc(), NewAutomergeDoc()} {
		board := sampleBoard()
		require.NoError(t, WriteBoard(doc, board))

		got, err := Reconstruct(doc, board.ID, board.Kind)
		require.NoError(t, err)

		assert.Equal(t, board.IsSessionActive, got.IsSessionActive)
		require.NotNil(t, got.ModeratorID)
		assert.Equal(t, "alice", *got.ModeratorID)
		assert.Equal(t, models.VotingBudgetedPoints, got.VotingMode)
		assert.Equal(t, models.PhaseOpen, got.VotingPhase)
		require.NotNil(t, got.MaxPointsPerUser)
		assert.Equal(t, 12, *got.MaxPointsPerUser)

		require.Len(t, got.Cards, 2)
		assert.True(t, got.Cards["c1"].Equal(board.Cards["c1"]))
		assert.True(t, got.Cards["c2"].Equal(board.Cards["c2"]))

		require.NotNil(t, got.Timer)
		assert.True(t, got.Timer.IsRunning)
		assert.Equal(t, 5*time.Minute, got.Timer.Duration)
		assert.True(t, got.Timer.StartTime.Equal(board.Timer.StartTime))

		require.Len(t, got.Columns, 3)
		assert.False(t, got.Columns[1].IsLocked)
		assert.True(t, got.Columns[2].IsLocked)
	}
}

func TestReconstructEmptyDocYieldsDefaults(t *testing.T) {
	got, err := Reconstruct(NewMemoryDoc(), "b1", models.KindRetro)
	require.NoError(t, err)

	assert.False(t, got.IsSessionActive)
	assert.Nil(t, got.ModeratorID)
	assert.Equal(t, models.VotingSimpleApproval, got.VotingMode)
	assert.Equal(t, models.PhaseIdle, got.VotingPhase)
	assert.Nil(t, got.Timer)
	assert.Empty(t, got.Cards)
	require.Len(t, got.Columns, 3)
	assert.False(t, got.Columns[0].IsLocked)
}

func TestMergeWithDefaultsKeepsMissingColumns(t *testing.T) {
	defaults := models.DefaultColumns(models.KindRetro)

	// Partial remote data: only one column record exists.
	remote := map[string]map[string]any{
		models.ColumnStop: {"title": "Quit doing", "isLocked": false},
	}
	merged := MergeWithDefaults(defaults, remote)

	require.Len(t, merged, len(defaults), "a column must never silently disappear")
	assert.Equal(t, models.ColumnStart, merged[0].ID)
	assert.Equal(t, "Quit doing", merged[1].Title)
	assert.False(t, merged[1].IsLocked)
	assert.Equal(t, "Continue", merged[2].Title)

	// Unknown remote ids are ignored: identity set is fixed.
	remote["bogus"] = map[string]any{"title": "Nope"}
	merged = MergeWithDefaults(defaults, remote)
	require.Len(t, merged, len(defaults))
}

// countingDoc counts card entry writes to verify redundant-write suppression.
type countingDoc struct {
	Doc
	cardWrites int
}

func (d *countingDoc) Transact(fn func(tx Txn) error) error {
	return d.Doc.Transact(func(tx Txn) error {
		return fn(&countingTxn{Txn: tx, doc: d})
	})
}

type countingTxn struct {
	Txn
	doc *countingDoc
}

func (t *countingTxn) SetEntry(collection, id string, fields map[string]any) error {
	if collection == ColCards {
		t.doc.cardWrites++
	}
	return t.Txn.SetEntry(collection, id, fields)
}

func TestWriteBoardSuppressesUnchangedCards(t *testing.T) {
	doc := &countingDoc{Doc: NewMemoryDoc()}
	board := sampleBoard()

	require.NoError(t, WriteBoard(doc, board))
	assert.Equal(t, 2, doc.cardWrites)

	// Nothing changed: no card is rewritten.
	require.NoError(t, WriteBoard(doc, board))
	assert.Equal(t, 2, doc.cardWrites)

	// One card changed: exactly one write.
	board.Cards["c2"].Content = "late code reviews"
	require.NoError(t, WriteBoard(doc, board))
	assert.Equal(t, 3, doc.cardWrites)
}

func TestWriteBoardDeletesRemovedCards(t *testing.T) {
	doc := NewMemoryDoc()
	board := sampleBoard()
	require.NoError(t, WriteBoard(doc, board))

	delete(board.Cards, "c2")
	board.Cards["c1"].LinkedCardIDs = nil
	require.NoError(t, WriteBoard(doc, board))

	got, err := Reconstruct(doc, board.ID, board.Kind)
	require.NoError(t, err)
	require.Len(t, got.Cards, 1)
	assert.NotContains(t, got.Cards, "c2")
}

func TestWriteBoardClearsTimer(t *testing.T) {
	doc := NewMemoryDoc()
	board := sampleBoard()
	require.NoError(t, WriteBoard(doc, board))

	board.Timer = nil
	require.NoError(t, WriteBoard(doc, board))

	got, err := Reconstruct(doc, board.ID, board.Kind)
	require.NoError(t, err)
	assert.Nil(t, got.Timer)
}
