package uuid_test

import (
	"testing"

	google_uuid "github.com/google/uuid"
	"github.com/jrife/txstore/utils/uuid"
)

func TestNew(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	if a == b {
		t.Fatalf("expected two calls to return different ids, got %s twice", a)
	}

	parsed, err := google_uuid.Parse(a)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if parsed.Version() != 4 {
		t.Fatalf("expected version 4, got %d", parsed.Version())
	}
}
