package esfeedtest

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/kyuff/esfeed"
	"github.com/kyuff/esfeed/internal/assert"
)

// VerifyEvents checks events against the expectations in order. An expectation is
// either the event type as a string, an esfeed.NewEvent compared by type and data,
// or a func(esfeed.Event) bool matcher.
func VerifyEvents(t *testing.T, events []esfeed.Event, expected ...any) bool {
	t.Helper()

	if !assert.Equalf(t, len(expected), len(events), "wrong number of events") {
		var sb = &strings.Builder{}
		sb.WriteString("\n Expected events:\n")
		for _, e := range expected {
			sb.WriteString(fmt.Sprintf("  - %s\n", expectedName(e)))
		}
		sb.WriteString("\n Got events:\n")
		for _, e := range events {
			sb.WriteString(fmt.Sprintf("  - %s\n", e.Type))
		}
		t.Log(sb.String())
		return false
	}

	var valid []bool
	for i := range expected {
		var (
			got      = events[i]
			expected = expected[i]
		)

		switch want := expected.(type) {
		case string:
			valid = append(valid, assert.Equalf(t, want, got.Type, "type of event %d", i))
		case esfeed.NewEvent:
			valid = append(valid,
				assert.Equalf(t, want.EventType, got.Type, "type of event %d", i),
				assert.Truef(t, sameData(t, want.Data, got), "data of event %d", i),
			)
		case func(event esfeed.Event) bool:
			valid = append(valid, assert.Truef(t, want(got), "Event %d did not match", i))
		default:
			t.Logf("unsupported expectation %T for event %d", expected, i)
			valid = append(valid, false)
		}
	}

	for _, v := range valid {
		if !v {
			t.Fail()
			return false
		}
	}

	return true
}

func sameData(t *testing.T, want any, got esfeed.Event) bool {
	t.Helper()

	wantJSON, err := marshalCompact(want)
	if err != nil {
		t.Logf("marshal expected data: %s", err)
		return false
	}

	gotJSON, err := marshalCompact(got.Data)
	if err != nil {
		t.Logf("marshal event data: %s", err)
		return false
	}

	if wantJSON != gotJSON {
		t.Logf("\nExpected data: %s\n     Got data: %s", wantJSON, gotJSON)
		return false
	}

	return true
}

func expectedName(e any) string {
	switch want := e.(type) {
	case string:
		return want
	case esfeed.NewEvent:
		return want.EventType
	default:
		return fmt.Sprintf("%T", e)
	}
}

// marshalCompact renders a value as JSON with sorted keys so payloads compare regardless of formatting.
func marshalCompact(v any) (string, error) {
	if raw, ok := v.(json.RawMessage); ok && len(raw) == 0 {
		v = nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	var value any
	if err := json.Unmarshal(b, &value); err != nil {
		return "", err
	}

	b, err = json.Marshal(value)
	return string(b), err
}
