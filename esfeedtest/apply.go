package esfeedtest

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/kyuff/esfeed"
	"github.com/kyuff/esfeed/internal/assert"
	"github.com/kyuff/esfeed/internal/uuid"
)

// ApplyState is a test helper meant to make it easy to hydrate a state using event data.
// The events are numbered from 0 in the order given, as if read from one stream.
func ApplyState[T esfeed.Handler](t *testing.T, state T, events ...esfeed.NewEvent) T {
	t.Helper()
	if len(events) == 0 {
		return state
	}

	stream := uuid.V7()
	for i, event := range events {
		data, err := json.Marshal(event.Data)
		if !assert.NoError(t, err) {
			return state
		}

		id := event.EventID
		if id == "" {
			id = uuid.V7()
		}

		err = state.Handle(t.Context(), esfeed.Event{
			ID:      id,
			Type:    event.EventType,
			Data:    data,
			Number:  int64(i),
			Summary: event.EventType,
			URI:     fmt.Sprintf("/streams/%s/%d", stream, i),
		})
		assert.NoError(t, err)
	}

	return state
}
