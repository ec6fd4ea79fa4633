package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

func TestStoreGetMissing(t *testing.T) {
	s := NewStore()
	if _, err := s.Get(context.Background(), "users"); !errors.Is(err, ports.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestStoreSetReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	in := []byte(`[1]`)
	if err := s.Set(ctx, "k", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[1] = '9'

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[1]` {
		t.Fatalf("stored value changed through caller slice: %s", got)
	}
	got[1] = '7'
	again, _ := s.Get(ctx, "k")
	if string(again) != `[1]` {
		t.Fatalf("stored value changed through returned slice: %s", again)
	}
}
