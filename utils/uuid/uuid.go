// Package uuid generates identifiers used to tell store
// instances apart in log output
package uuid

import (
	google_uuid "github.com/google/uuid"
)

// New returns a random version 4 UUID in its canonical string form
func New() string {
	return google_uuid.New().String()
}
