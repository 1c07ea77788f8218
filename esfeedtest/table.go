package esfeedtest

import (
	"encoding/json"
	"fmt"
	"time"
)

type tableRow struct {
	EventID     string
	EventType   string
	EventNumber int64
	Data        json.RawMessage
	Updated     time.Time
}

// table holds the events of one stream ordered by EventNumber, starting at 0.
type table struct {
	rows     []tableRow
	eventIDs map[string]struct{}
}

func newTable() *table {
	return &table{
		eventIDs: make(map[string]struct{}),
	}
}

// append adds the events. An event id that is already in the table is skipped so
// a retried append does not duplicate events.
func (t *table) append(events []appendEvent, now time.Time) error {
	for i, event := range events {
		if event.EventType == "" {
			return fmt.Errorf("event %d has no eventType", i)
		}
		if event.EventID == "" {
			return fmt.Errorf("event %d has no eventId", i)
		}
	}

	for _, event := range events {
		if _, ok := t.eventIDs[event.EventID]; ok {
			continue
		}

		t.rows = append(t.rows, tableRow{
			EventID:     event.EventID,
			EventType:   event.EventType,
			EventNumber: int64(len(t.rows)),
			Data:        event.Data,
			Updated:     now,
		})
		t.eventIDs[event.EventID] = struct{}{}
	}

	return nil
}

// window returns the rows in [start, start+count).
func (t *table) window(start, count int) []tableRow {
	if start >= len(t.rows) {
		return nil
	}

	end := min(start+count, len(t.rows))
	return t.rows[start:end]
}

func (t *table) row(number int64) (tableRow, bool) {
	if number < 0 || number >= int64(len(t.rows)) {
		return tableRow{}, false
	}

	return t.rows[number], true
}
