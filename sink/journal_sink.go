package sink

import (
	"context"
	"cosmokit/contract"
	"cosmokit/domain"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	journalPrefix = "evt:"
	// DigestExtension carries the value digest of the event payload, equal for equal events.
	DigestExtension = "digest"
)

// JournalEntry is one event as stored by JournalSink.
type JournalEntry struct {
	Sequence uint64
	Event    cloudevents.Event
}

// JournalSink keeps an audit trail of consumed events in BadgerDB, one CloudEvent
// per key "evt:<sequence>". Aggregates are never rebuilt from it.
type JournalSink struct {
	db       *badger.DB
	log      *slog.Logger
	source   string
	sequence *badger.Sequence
}

func NewJournalSink(db *badger.DB, log *slog.Logger, source string) (*JournalSink, error) {
	sequence, err := db.GetSequence([]byte("seq:journal"), 100)
	if err != nil {
		return nil, fmt.Errorf("journal sequence: %w", err)
	}
	return &JournalSink{db: db, log: log, source: source, sequence: sequence}, nil
}

func (j *JournalSink) Consume(_ context.Context, e domain.Event) error {
	name := domain.MessageName(e)
	event := cloudevents.NewEvent()
	event.SetID(uuid.NewString())
	event.SetSource(j.source)
	event.SetType(name)
	event.SetTime(time.Now().UTC())
	hash, err := digest(e)
	if err != nil {
		return fmt.Errorf("digesting %s: %w", name, err)
	}
	event.SetExtension(DigestExtension, fmt.Sprintf("%016x", hash))
	if err := event.SetData(cloudevents.ApplicationJSON, e); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid cloudevent %s: %w", name, err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	next, err := j.sequence.Next()
	if err != nil {
		return err
	}
	j.log.Debug("Journaling event", "event", name, "sequence", next)
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(journalKey(next), data)
	})
}

// Entries returns the journal in sequence order.
func (j *JournalSink) Entries() ([]JournalEntry, error) {
	var entries []JournalEntry
	err := j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(journalPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			sequence, err := strconv.ParseUint(strings.TrimPrefix(string(item.Key()), journalPrefix), 10, 64)
			if err != nil {
				return fmt.Errorf("malformed journal key %q: %w", item.Key(), err)
			}
			entry := JournalEntry{Sequence: sequence}
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry.Event)
			}); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	return entries, err
}

// Close releases the leased sequence range.
func (j *JournalSink) Close() error {
	return j.sequence.Release()
}

// digest prefers the event's own value hash when it declares one.
func digest(e domain.Event) (uint64, error) {
	if value, ok := e.(domain.ValueObject); ok {
		return value.ValueHash()
	}
	return domain.HashValue(e)
}

// journalKey zero-pads the sequence so badger's byte order is sequence order.
func journalKey(sequence uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", journalPrefix, sequence))
}

var _ contract.EventSink = (*JournalSink)(nil)
