package events

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"voting-service/internal/models"
)

// Event kinds
const (
	TypeVoteCast         = "vote.cast"
	TypeVotePurchased    = "vote.purchased"
	TypeCandidateChanged = "candidate.changed"
	TypeCandidateDeleted = "candidate.deleted"
)

// Event is emitted after a change to the ledger has been committed.
type Event struct {
	Type        string             `json:"type"`
	UserID      uint               `json:"user_id,omitempty"`
	CandidateID uint               `json:"candidate_id"`
	VoteType    string             `json:"vote_type,omitempty"`
	Rows        int                `json:"rows,omitempty"`
	Counts      *models.VoteCounts `json:"counts,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// Key partitions events by user so one voter's events stay ordered.
func (e Event) Key() []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(e.UserID))
	return key
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishQuietly sends the event and only logs a failure. Events are a
// notification channel; the vote itself is already stored.
func PublishQuietly(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event", "type", event.Type, "candidateID", event.CandidateID, "error", err)
	}
}
