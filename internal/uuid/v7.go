package uuid

import (
	"github.com/gofrs/uuid/v5"
)

// V7 returns a new time ordered uuid as a string. It panics if the system has no entropy.
func V7() string {
	return uuid.Must(uuid.NewV7()).String()
}
