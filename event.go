package esfeed

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Event is a fully loaded event of a stream.
type Event struct {
	// ID of the event. How it is populated is decided by the IDPolicy of the Client.
	ID string
	// Type is the event type tag given when the event was published.
	Type string
	// Data is the payload exactly as the origin returned it.
	Data json.RawMessage
	// Number is the position of the event in its stream, or -1 if the origin did not tell.
	Number int64
	// Summary of the Entry the event was loaded from.
	Summary string
	// URI the event body was loaded from.
	URI string
}

// Unmarshal decodes the Data of the event into v.
func (e Event) Unmarshal(v any) error {
	return json.Unmarshal(e.Data, v)
}

// IDPolicy decides where the ID of a loaded Event comes from.
type IDPolicy int

const (
	// IDFromBody uses the eventId of the event body and falls back to the Atom id of the entry.
	IDFromBody IDPolicy = iota
	// IDFromEntry always uses the Atom id of the entry.
	IDFromEntry
	// IDFromSummary uses the summary of the entry.
	IDFromSummary
	// IDNone leaves the ID empty.
	IDNone
)

func (p IDPolicy) String() string {
	switch p {
	case IDFromBody:
		return "body"
	case IDFromEntry:
		return "entry"
	case IDFromSummary:
		return "summary"
	case IDNone:
		return "none"
	default:
		return fmt.Sprintf("IDPolicy(%d)", int(p))
	}
}

// resolve sets the fields of event that depend on the entry it was loaded from.
func (p IDPolicy) resolve(entry Entry, event Event) Event {
	switch p {
	case IDFromBody:
		if event.ID == "" {
			event.ID = entry.ID
		}
	case IDFromEntry:
		event.ID = entry.ID
	case IDFromSummary:
		event.ID = entry.Summary
	case IDNone:
		event.ID = ""
	}

	if event.Number < 0 {
		event.Number = entry.Number()
	}

	event.Summary = entry.Summary
	return event
}

// decodeEvent reads the {"eventType", "data"} body of an event.
func decodeEvent(uri string, body []byte) (Event, error) {
	if !gjson.ValidBytes(body) {
		return Event{}, fmt.Errorf("event is not valid json")
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return Event{}, fmt.Errorf("event is not an object")
	}

	eventType := doc.Get("eventType")
	if eventType.Type != gjson.String {
		return Event{}, fmt.Errorf("event needs an eventType string")
	}

	event := Event{
		ID:     doc.Get("eventId").String(),
		Type:   eventType.Str,
		Number: -1,
		URI:    uri,
	}

	if data := doc.Get("data"); data.Exists() {
		event.Data = json.RawMessage(data.Raw)
	}

	if number := doc.Get("eventNumber"); number.Type == gjson.Number {
		event.Number = number.Int()
	}

	return event, nil
}
