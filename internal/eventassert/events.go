package eventassert

import (
	"testing"

	"github.com/kyuff/esfeed"
	"github.com/kyuff/esfeed/internal/assert"
)

func EqualEvent(t *testing.T, expected, actual esfeed.Event) bool {
	t.Helper()
	equal := []bool{
		assert.Equalf(t, expected.ID, actual.ID, "ID not equal"),
		assert.Equalf(t, expected.Type, actual.Type, "Type not equal"),
		assert.Equalf(t, expected.Number, actual.Number, "Number not equal"),
		assert.Equalf(t, string(expected.Data), string(actual.Data), "Data not equal"),
	}
	for _, eq := range equal {
		if !eq {
			return false
		}
	}

	return true
}

// Types returns the Type of each event, handy to assert the order of a read.
func Types(events []esfeed.Event) []string {
	types := make([]string, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type)
	}

	return types
}
