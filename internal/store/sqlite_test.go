package store_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nhle/tempmail/internal/testutil"
)

func TestRecordCountsNewIDs(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	n, err := s.Record(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if n != 3 {
		t.Errorf("first Record = %d; want 3", n)
	}

	n, err = s.Record(ctx, []string{"b", "c", "d"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if n != 1 {
		t.Errorf("second Record = %d; want 1", n)
	}

	total, err := s.SeenCount(ctx)
	if err != nil {
		t.Fatalf("SeenCount: %v", err)
	}
	if total != 4 {
		t.Errorf("SeenCount = %d; want 4", total)
	}
}

func TestRecordEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)
	n, err := s.Record(context.Background(), nil)
	if err != nil || n != 0 {
		t.Errorf("Record(nil) = %d, %v", n, err)
	}
}

func TestOpenedAndForget(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if _, err := s.Record(ctx, []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkOpened(ctx, "a"); err != nil {
		t.Fatalf("MarkOpened: %v", err)
	}
	// Opening a message the poller has not observed yet records it too.
	if err := s.MarkOpened(ctx, "z"); err != nil {
		t.Fatalf("MarkOpened unseen: %v", err)
	}

	opened, err := s.Opened(ctx)
	if err != nil {
		t.Fatalf("Opened: %v", err)
	}
	if diff := cmp.Diff(map[string]bool{"a": true, "z": true}, opened); diff != "" {
		t.Errorf("Opened mismatch (-want +got):\n%s", diff)
	}

	if err := s.Forget(ctx, "a"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	opened, err = s.Opened(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if opened["a"] {
		t.Error("forgotten message still reported as opened")
	}

	n, err := s.Record(ctx, []string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("re-recording a forgotten id = %d; want 1", n)
	}
}
