package credential

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/google/go-cmp/cmp"
)

func newTestStash() *Stash {
	return New(keyring.NewArrayKeyring(nil))
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStash()
	want := Account{Address: "abc@example.test", Password: "secret"}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(want.Address)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := newTestStash().Load("nobody@example.test")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

func TestSaveRejectsEmptyAddress(t *testing.T) {
	if err := newTestStash().Save(Account{Password: "x"}); err == nil {
		t.Error("expected error for empty address")
	}
}

func TestAddressesAndDelete(t *testing.T) {
	s := newTestStash()
	for _, addr := range []string{"b@example.test", "a@example.test"} {
		if err := s.Save(Account{Address: addr, Password: "pw"}); err != nil {
			t.Fatal(err)
		}
	}

	addrs, err := s.Addresses()
	if err != nil {
		t.Fatalf("Addresses: %v", err)
	}
	if diff := cmp.Diff([]string{"a@example.test", "b@example.test"}, addrs); diff != "" {
		t.Errorf("Addresses mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete("a@example.test"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("a@example.test"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Delete err = %v; want ErrNotFound", err)
	}
}
