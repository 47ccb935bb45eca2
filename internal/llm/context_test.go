package llm

import (
	"context"
	"testing"
)

func TestPurposeFrom(t *testing.T) {
	ctx := context.Background()
	if got := PurposeFrom(ctx); got != "unknown" {
		t.Fatalf("PurposeFrom(empty) = %q", got)
	}
	if got := PurposeFrom(WithPurpose(ctx, "tutoring")); got != "tutoring" {
		t.Fatalf("PurposeFrom = %q", got)
	}
}

func TestSessionFrom(t *testing.T) {
	ctx := context.Background()
	if _, ok := SessionFrom(ctx); ok {
		t.Fatal("expected no session")
	}
	if _, ok := SessionFrom(WithSession(ctx, "")); ok {
		t.Fatal("empty id should not count")
	}
	ctx = WithPurpose(WithSession(ctx, "s-1"), "tutoring")
	if id, ok := SessionFrom(ctx); !ok || id != "s-1" {
		t.Fatalf("SessionFrom = %q, %v", id, ok)
	}
}
