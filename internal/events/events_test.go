package events

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"voting-service/internal/models"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func sampleEvent() Event {
	return Event{
		Type:        TypeVotePurchased,
		UserID:      42,
		CandidateID: 7,
		VoteType:    models.VoteTypePaid,
		Rows:        6,
		Counts:      &models.VoteCounts{PaidVotes: 6, TotalVotes: 6},
		OccurredAt:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, uint64(42), binary.BigEndian.Uint64(msg.Key))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeVotePurchased, decoded.Type)
	assert.Equal(t, 6, decoded.Rows)
	assert.Equal(t, int64(6), decoded.Counts.TotalVotes)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{writer: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, boom)
}

func TestSaramaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewSaramaConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var decoded Event
		if err := json.Unmarshal(val, &decoded); err != nil {
			return err
		}
		if decoded.CandidateID != 7 {
			return errors.New("unexpected candidate")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewSaramaPublisherFrom(producer, "votes")
	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.ErrorIs(t, p.Publish(context.Background(), sampleEvent()), sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingPublisher{}
	b := &recordingPublisher{err: boom}

	err := Multi{a, b}.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)

	assert.NoError(t, Multi{a, Noop{}}.Close())
}

func TestPublishQuietly(t *testing.T) {
	p := &recordingPublisher{err: errors.New("boom")}

	assert.NotPanics(t, func() {
		PublishQuietly(context.Background(), p, sampleEvent())
		PublishQuietly(context.Background(), nil, sampleEvent())
	})
	assert.Len(t, p.events, 1)
}
