package board

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/retroflect/retroflect/internal/database"
	"github.com/retroflect/retroflect/internal/events"
	"github.com/retroflect/retroflect/internal/models"
	"github.com/retroflect/retroflect/internal/replication"
)

// fakeTracker records promotions and hands out sequential task ids.
type fakeTracker struct {
	calls int
	fail  bool
}

func (f *fakeTracker) CreateTask(_ context.Context, content string, _ *string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("tracker down")
	}
	f.calls++
	return fmt.Sprintf("task-%d", f.calls), nil
}

func testRepo(t *testing.T) database.BoardRepository {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return database.NewBoardRepository(db)
}

func newTestStore(t *testing.T, cfg Config) *Store {
	t.Helper()
	if cfg.BoardID == "" {
		cfg.BoardID = "b1"
	}
	if cfg.Kind == "" {
		cfg.Kind = models.KindRetro
	}
	if cfg.Repo == nil {
		cfg.Repo = testRepo(t)
	}
	s, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

// startSession is a helper making alice the moderator.
func startSession(t *testing.T, s *Store) {
	t.Helper()
	b := s.StartSession(context.Background(), "alice")
	if !b.IsSessionActive {
		t.Fatal("failed to start session")
	}
}

func addCard(t *testing.T, s *Store, columnID, content string) string {
	t.Helper()
	before := len(s.Snapshot().Cards)
	b := s.AddCard(context.Background(), "alice", columnID, content, false)
	if len(b.Cards) != before+1 {
		t.Fatalf("failed to add card to %s", columnID)
	}
	for id, c := range b.Cards {
		if c.Content == content {
			return id
		}
	}
	t.Fatal("added card not found")
	return ""
}

func TestNewCreatesDefaultBoard(t *testing.T) {
	repo := testRepo(t)
	s := newTestStore(t, Config{Repo: repo})

	b := s.Snapshot()
	if b.ID != "b1" || b.IsSessionActive || len(b.Cards) != 0 {
		t.Error("first access should create a default board")
	}

	// The default board is durably cached immediately.
	cached, err := repo.LoadSnapshot(context.Background(), "b1")
	if err != nil {
		t.Fatalf("default board was not persisted: %v", err)
	}
	if cached.ID != "b1" {
		t.Error("cached board has wrong id")
	}
}

func TestAddCardValidation(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()

	// Locked column: rejected.
	b := s.AddCard(ctx, "alice", models.ColumnStop, "nope", false)
	if len(b.Cards) != 0 {
		t.Error("card in a locked column should be rejected")
	}

	// Unknown column: rejected.
	b = s.AddCard(ctx, "alice", "bogus", "nope", false)
	if len(b.Cards) != 0 {
		t.Error("card in an unknown column should be rejected")
	}

	// Unlocked column: accepted, author recorded.
	b = s.AddCard(ctx, "alice", models.ColumnStart, "pair more", false)
	if len(b.Cards) != 1 {
		t.Fatal("card should be added")
	}
	for _, c := range b.Cards {
		if c.AuthorID == nil || *c.AuthorID != "alice" {
			t.Error("author should be recorded")
		}
		if c.ColumnID != models.ColumnStart {
			t.Error("card must reference the requested column")
		}
		if !c.IsRevealed {
			t.Error("cards start revealed outside hidden editions")
		}
	}

	// Anonymous card: no author anywhere.
	b = s.AddCard(ctx, "alice", models.ColumnStart, "anon idea", true)
	for _, c := range b.Cards {
		if c.Content == "anon idea" && c.AuthorID != nil {
			t.Error("anonymous card must carry no author id")
		}
	}
}

func TestDeleteCardPrunesLinks(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()

	a := addCard(t, s, models.ColumnStart, "a")
	b := addCard(t, s, models.ColumnStart, "b")
	c := addCard(t, s, models.ColumnStart, "c")
	s.ToggleLink(ctx, a, b)
	s.ToggleLink(ctx, b, c)

	snap := s.DeleteCard(ctx, b)
	if _, ok := snap.Cards[b]; ok {
		t.Fatal("card should be deleted")
	}
	for id, card := range snap.Cards {
		if card.IsLinkedTo(b) {
			t.Errorf("card %s still links the deleted card", id)
		}
	}
	for _, id := range s.Reachable(a) {
		if id == b {
			t.Error("deleted card must not be reachable")
		}
	}

	// Deleting a missing card is a silent no-op.
	again := s.DeleteCard(ctx, b)
	if len(again.Cards) != 2 {
		t.Error("no-op delete must not change the board")
	}
}

func TestModeratorOnlyGuards(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()
	startSession(t, s)

	// Non-moderator attempts are silent no-ops.
	b := s.SetVotingMode(ctx, "mallory", models.VotingTernary)
	if b.VotingMode != models.VotingSimpleApproval {
		t.Error("non-moderator must not change the voting mode")
	}
	b = s.SetVotingPhase(ctx, "mallory", models.PhaseOpen)
	if b.VotingPhase != models.PhaseIdle {
		t.Error("non-moderator must not change the voting phase")
	}
	b = s.StartTimer(ctx, "mallory", time.Minute)
	if b.Timer != nil {
		t.Error("non-moderator must not start the timer")
	}

	// The moderator succeeds.
	b = s.SetVotingMode(ctx, "alice", models.VotingTernary)
	if b.VotingMode != models.VotingTernary {
		t.Error("moderator should change the voting mode")
	}
	b = s.SetVotingPhase(ctx, "alice", models.PhaseOpen)
	if b.VotingPhase != models.PhaseOpen {
		t.Error("moderator should change the voting phase")
	}
}

func TestTimerExpiryIsModeratorOnly(t *testing.T) {
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestStore(t, Config{Now: func() time.Time { return current }})
	ctx := context.Background()
	startSession(t, s)
	s.ToggleLock(ctx, "alice", models.ColumnStop)

	s.StartTimer(ctx, "alice", time.Minute)
	current = current.Add(2 * time.Minute)

	// A non-moderator observing expiry never triggers the side effect.
	b := s.ExpireTimerIfDue(ctx, "bob")
	if !b.Timer.IsRunning {
		t.Fatal("non-moderator expiry must be a no-op")
	}

	// The moderator's client performs the one authoritative side effect.
	b = s.ExpireTimerIfDue(ctx, "alice")
	if b.Timer.IsRunning {
		t.Error("timer should stop on expiry")
	}
	for _, col := range b.Columns {
		if !col.IsLocked {
			t.Errorf("column %s should be locked on expiry", col.ID)
		}
	}

	// Idempotent: a second call is a no-op.
	again := s.ExpireTimerIfDue(ctx, "alice")
	if again.Timer.IsRunning {
		t.Error("second expiry must remain a no-op")
	}
}

func TestStopTimerKeepsDuration(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()
	startSession(t, s)

	s.StartTimer(ctx, "alice", 5*time.Minute)
	b := s.StopTimer(ctx, "alice")
	if b.Timer == nil || b.Timer.IsRunning {
		t.Fatal("timer should be stopped")
	}
	if b.Timer.Duration != 5*time.Minute {
		t.Error("stop must keep the configured duration")
	}
}

func TestPromoteCard(t *testing.T) {
	tasks := &fakeTracker{}
	s := newTestStore(t, Config{Tasks: tasks})
	ctx := context.Background()
	startSession(t, s)
	id := addCard(t, s, models.ColumnStart, "automate the release")

	// Non-moderator promotion is rejected without calling the tracker.
	b := s.PromoteCard(ctx, "bob", id)
	if b.Cards[id].PromotedTaskID != nil || tasks.calls != 0 {
		t.Error("non-moderator must not promote")
	}

	b = s.PromoteCard(ctx, "alice", id)
	if b.Cards[id].PromotedTaskID == nil || *b.Cards[id].PromotedTaskID != "task-1" {
		t.Error("promotion should record the external task id")
	}

	// Promoting twice creates no second task.
	b = s.PromoteCard(ctx, "alice", id)
	if tasks.calls != 1 {
		t.Errorf("expected 1 tracker call, got %d", tasks.calls)
	}
	if *b.Cards[id].PromotedTaskID != "task-1" {
		t.Error("task id must not change on re-promotion")
	}
}

func TestPromoteCardTrackerFailure(t *testing.T) {
	tasks := &fakeTracker{fail: true}
	s := newTestStore(t, Config{Tasks: tasks})
	ctx := context.Background()
	startSession(t, s)
	id := addCard(t, s, models.ColumnStart, "flaky tests")

	b := s.PromoteCard(ctx, "alice", id)
	if b.Cards[id].PromotedTaskID != nil {
		t.Error("a tracker failure must leave the card unpromoted")
	}
}

func TestRestartSessionResetsBoard(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()
	startSession(t, s)
	addCard(t, s, models.ColumnStart, "x")
	s.ToggleLock(ctx, "alice", models.ColumnStop)
	s.StartTimer(ctx, "alice", time.Minute)

	b := s.RestartSession(ctx)
	if b.IsSessionActive || b.ModeratorID != nil {
		t.Error("restart should deactivate the session")
	}
	if len(b.Cards) != 0 || b.Timer != nil {
		t.Error("restart should empty cards and clear the timer")
	}
	for i, col := range b.Columns {
		if (i == 0) == col.IsLocked {
			t.Errorf("column %s lock state wrong after restart", col.ID)
		}
	}
}

func TestLoadSeedsEmptyReplicatedStore(t *testing.T) {
	repo := testRepo(t)
	doc := replication.NewMemoryDoc()

	// Device works offline first.
	s := newTestStore(t, Config{Repo: repo})
	startSession(t, s)
	addCard(t, s, models.ColumnStart, "offline card")

	// Replication comes online against an empty document: push, not pull.
	s2 := newTestStore(t, Config{Repo: repo, Doc: doc})
	if len(s2.Snapshot().Cards) != 1 {
		t.Fatal("local snapshot should survive the seed")
	}
	remote, err := replication.Reconstruct(doc, "b1", models.KindRetro)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	if len(remote.Cards) != 1 {
		t.Error("empty document should be seeded from the local snapshot")
	}
}

func TestLoadPrefersNonEmptyReplicatedStore(t *testing.T) {
	repo := testRepo(t)

	// Some other device already wrote board state.
	doc := replication.NewMemoryDoc()
	remoteBoard := models.NewBoard("b1", models.KindRetro)
	remoteBoard.Cards["r1"] = &models.Card{
		ID: "r1", ColumnID: models.ColumnStart, Content: "remote card", Votes: map[string]int{},
	}
	if err := replication.WriteBoard(doc, remoteBoard); err != nil {
		t.Fatalf("WriteBoard failed: %v", err)
	}

	// This device holds a conflicting local snapshot.
	local := models.NewBoard("b1", models.KindRetro)
	local.Cards["l1"] = &models.Card{
		ID: "l1", ColumnID: models.ColumnStart, Content: "stale local", Votes: map[string]int{},
	}
	if err := repo.SaveSnapshot(context.Background(), local); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	s := newTestStore(t, Config{Repo: repo, Doc: doc})

	b := s.Snapshot()
	if _, ok := b.Cards["r1"]; !ok {
		t.Error("remote reconstruction should be authoritative")
	}
	if _, ok := b.Cards["l1"]; ok {
		t.Error("stale local card should be superseded")
	}

	// The local durable store is overwritten with the reconstruction.
	cached, err := repo.LoadSnapshot(context.Background(), "b1")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if _, ok := cached.Cards["r1"]; !ok {
		t.Error("local store should be overwritten to match remote")
	}
}

func TestRemoteChangeSupersedesMemory(t *testing.T) {
	repo := testRepo(t)
	doc := replication.NewMemoryDoc()
	bus := events.NewBus()
	s := newTestStore(t, Config{Repo: repo, Doc: doc, Bus: bus})

	ch, cancel := bus.Subscribe()
	defer cancel()

	// A remote peer adds a card directly to the document.
	remoteBoard := s.Snapshot()
	remoteBoard.Cards["r9"] = &models.Card{
		ID: "r9", ColumnID: models.ColumnStart, Content: "from peer", Votes: map[string]int{},
	}
	if err := replication.WriteBoard(doc, remoteBoard); err != nil {
		t.Fatalf("WriteBoard failed: %v", err)
	}
	doc.SignalRemoteChange()

	if _, ok := s.Snapshot().Cards["r9"]; !ok {
		t.Error("remote change should supersede memory")
	}

	select {
	case snap := <-ch:
		if snap.Origin != events.OriginRemote {
			t.Errorf("expected remote origin, got %s", snap.Origin)
		}
	case <-time.After(time.Second):
		t.Fatal("remote snapshot never broadcast")
	}
}

func TestMutationsBroadcastLocalSnapshots(t *testing.T) {
	bus := events.NewBus()
	s := newTestStore(t, Config{Bus: bus})
	ch, cancel := bus.Subscribe()
	defer cancel()

	s.StartSession(context.Background(), "alice")

	select {
	case snap := <-ch:
		if snap.Origin != events.OriginLocal {
			t.Errorf("expected local origin, got %s", snap.Origin)
		}
		if !snap.Board.IsSessionActive {
			t.Error("broadcast snapshot should reflect the mutation")
		}
	case <-time.After(time.Second):
		t.Fatal("mutation never broadcast")
	}
}

func TestVoteVisibilityQuery(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()
	startSession(t, s)
	id := addCard(t, s, models.ColumnStart, "x")
	s.CastVote(ctx, id, "bob", 1)

	if s.VotesVisibleTo("bob") {
		t.Error("tallies hidden while IDLE")
	}
	s.SetVotingPhase(ctx, "alice", models.PhaseOpen)
	if !s.VotesVisibleTo("alice") {
		t.Error("moderator sees tallies during OPEN")
	}
	if s.VotesVisibleTo("bob") {
		t.Error("participant must not see tallies during OPEN")
	}
	s.SetVotingPhase(ctx, "alice", models.PhaseRevealed)
	if !s.VotesVisibleTo("bob") {
		t.Error("everyone sees tallies once REVEALED")
	}
}

func TestRanking(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()
	a := addCard(t, s, models.ColumnStart, "a")
	b := addCard(t, s, models.ColumnStart, "b")

	s.CastVote(ctx, b, "alice", 1)
	s.CastVote(ctx, b, "bob", 1)
	s.CastVote(ctx, a, "alice", 1)

	ranked := s.Ranking()
	if len(ranked) != 2 || ranked[0] != b || ranked[1] != a {
		t.Errorf("expected [%s %s], got %v", b, a, ranked)
	}
}
