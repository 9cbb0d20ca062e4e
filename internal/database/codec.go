package database

import (
	"encoding/json"
	"time"

	"github.com/retroflect/retroflect/internal/models"
)

// Wire representation of a board snapshot. Kept separate from the domain
// structs so the stored layout does not drift when internal fields move.

type boardRecord struct {
	ID               string                 `json:"id"`
	Kind             string                 `json:"kind"`
	ModeratorID      *string                `json:"moderatorId,omitempty"`
	IsSessionActive  bool                   `json:"isSessionActive"`
	Columns          []columnRecord         `json:"columns"`
	Cards            map[string]cardRecord  `json:"cards"`
	Timer            *timerRecord           `json:"timer,omitempty"`
	HiddenEdition    bool                   `json:"hiddenEdition"`
	VotingMode       string                 `json:"votingMode"`
	VotingPhase      string                 `json:"votingPhase"`
	MaxPointsPerUser *int                   `json:"maxPointsPerUser,omitempty"`
	ShowAllLinks     bool                   `json:"showAllLinks"`
}

type columnRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	IsLocked bool   `json:"isLocked"`
}

type cardRecord struct {
	ID             string         `json:"id"`
	ColumnID       string         `json:"columnId"`
	Content        string         `json:"content"`
	AuthorID       *string        `json:"authorId,omitempty"`
	Votes          map[string]int `json:"votes,omitempty"`
	LinkedCardIDs  []string       `json:"linkedCardIds,omitempty"`
	IsRevealed     bool           `json:"isRevealed"`
	PromotedTaskID *string        `json:"promotedTaskId,omitempty"`
}

type timerRecord struct {
	IsRunning       bool  `json:"isRunning"`
	StartTimeMillis int64 `json:"startTime"`
	DurationSeconds int64 `json:"duration"`
}

func encodeBoard(b *models.Board) ([]byte, error) {
	rec := boardRecord{
		ID:               b.ID,
		Kind:             string(b.Kind),
		ModeratorID:      b.ModeratorID,
		IsSessionActive:  b.IsSessionActive,
		Columns:          make([]columnRecord, 0, len(b.Columns)),
		Cards:            make(map[string]cardRecord, len(b.Cards)),
		HiddenEdition:    b.HiddenEdition,
		VotingMode:       string(b.VotingMode),
		VotingPhase:      string(b.VotingPhase),
		MaxPointsPerUser: b.MaxPointsPerUser,
		ShowAllLinks:     b.ShowAllLinks,
	}
	for _, c := range b.Columns {
		rec.Columns = append(rec.Columns, columnRecord{
			ID:       c.ID,
			Title:    c.Title,
			Color:    c.Color,
			IsLocked: c.IsLocked,
		})
	}
	for id, c := range b.Cards {
		rec.Cards[id] = cardRecord{
			ID:             c.ID,
			ColumnID:       c.ColumnID,
			Content:        c.Content,
			AuthorID:       c.AuthorID,
			Votes:          c.Votes,
			LinkedCardIDs:  c.LinkedCardIDs,
			IsRevealed:     c.IsRevealed,
			PromotedTaskID: c.PromotedTaskID,
		}
	}
	if b.Timer != nil {
		rec.Timer = &timerRecord{
			IsRunning:       b.Timer.IsRunning,
			StartTimeMillis: b.Timer.StartTime.UnixMilli(),
			DurationSeconds: int64(b.Timer.Duration / time.Second),
		}
	}
	return json.Marshal(rec)
}

func decodeBoard(raw []byte) (*models.Board, error) {
	var rec boardRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	b := &models.Board{
		ID:               rec.ID,
		Kind:             models.BoardKind(rec.Kind),
		ModeratorID:      rec.ModeratorID,
		IsSessionActive:  rec.IsSessionActive,
		Columns:          make([]*models.Column, 0, len(rec.Columns)),
		Cards:            make(map[string]*models.Card, len(rec.Cards)),
		HiddenEdition:    rec.HiddenEdition,
		VotingMode:       models.VotingMode(rec.VotingMode),
		VotingPhase:      models.VotingPhase(rec.VotingPhase),
		MaxPointsPerUser: rec.MaxPointsPerUser,
		ShowAllLinks:     rec.ShowAllLinks,
	}
	for _, c := range rec.Columns {
		b.Columns = append(b.Columns, &models.Column{
			ID:       c.ID,
			Title:    c.Title,
			Color:    c.Color,
			IsLocked: c.IsLocked,
		})
	}
	for id, c := range rec.Cards {
		card := &models.Card{
			ID:             c.ID,
			ColumnID:       c.ColumnID,
			Content:        c.Content,
			AuthorID:       c.AuthorID,
			Votes:          c.Votes,
			LinkedCardIDs:  c.LinkedCardIDs,
			IsRevealed:     c.IsRevealed,
			PromotedTaskID: c.PromotedTaskID,
		}
		if card.Votes == nil {
			card.Votes = map[string]int{}
		}
		b.Cards[id] = card
	}
	if rec.Timer != nil {
		b.Timer = &models.Timer{
			IsRunning: rec.Timer.IsRunning,
			StartTime: time.UnixMilli(rec.Timer.StartTimeMillis),
			Duration:  time.Duration(rec.Timer.DurationSeconds) * time.Second,
		}
	}
	return b, nil
}
