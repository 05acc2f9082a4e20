package expiry

import (
	"math"
	"testing"
	"time"

	"github.com/eternalApril/lunakv/internal/clock"
	"github.com/eternalApril/lunakv/internal/storage"
)

func setup(t *testing.T) (*Manager, *clock.Manual, *storage.MapStorage) {
	t.Helper()
	c := clock.NewManual(time.Unix(1_700_000_000, 0))
	return NewManager(c), c, storage.NewMapStorage()
}

func put(s storage.Storage, key string) {
	s.Do(key, func(tx storage.Tx) error { //nolint:errcheck
		tx.Set(key, &storage.Entity{Type: storage.TypeString, Value: "v"})
		return nil
	})
}

func TestCheckAndEvict(t *testing.T) {
	m, c, s := setup(t)
	put(s, "k")

	s.Do("k", func(tx storage.Tx) error { //nolint:errcheck
		if !m.SetExpiry(tx, "k", 10*time.Millisecond) {
			t.Fatalf("SetExpiry on existing key should succeed")
		}
		if !m.CheckAndEvict(tx, "k") {
			t.Errorf("key should be live before its TTL")
		}
		return nil
	})

	c.Advance(10 * time.Millisecond)

	s.Do("k", func(tx storage.Tx) error { //nolint:errcheck
		if m.CheckAndEvict(tx, "k") {
			t.Errorf("key should be expired once the TTL has elapsed")
		}
		if tx.Exists("k") {
			t.Errorf("expired key should be physically removed")
		}
		return nil
	})
}

func TestSetExpiry(t *testing.T) {
	m, _, s := setup(t)

	s.Do("missing", func(tx storage.Tx) error { //nolint:errcheck
		if m.SetExpiry(tx, "missing", time.Second) {
			t.Errorf("SetExpiry on missing key should report false")
		}
		return nil
	})

	put(s, "k")
	s.Do("k", func(tx storage.Tx) error { //nolint:errcheck
		if !m.SetExpiry(tx, "k", -time.Second) {
			t.Errorf("non-positive TTL on existing key should report true")
		}
		if tx.Exists("k") {
			t.Errorf("non-positive TTL should delete the key")
		}
		return nil
	})
}

func TestTTLAndPersist(t *testing.T) {
	m, c, s := setup(t)
	put(s, "k")

	s.Do("k", func(tx storage.Tx) error { //nolint:errcheck
		if _, st := m.TTL(tx, "missing"); st != NotFound {
			t.Errorf("expected NotFound, got %d", st)
		}
		if _, st := m.TTL(tx, "k"); st != NoTimeout {
			t.Errorf("expected NoTimeout, got %d", st)
		}
		if m.Persist(tx, "k") {
			t.Errorf("Persist on key without TTL should report false")
		}

		m.SetExpiry(tx, "k", 5*time.Second)
		return nil
	})

	c.Advance(2 * time.Second)

	s.Do("k", func(tx storage.Tx) error { //nolint:errcheck
		d, st := m.TTL(tx, "k")
		if st != Active || d != 3*time.Second {
			t.Errorf("expected 3s active TTL, got %v (%d)", d, st)
		}

		if !m.Persist(tx, "k") {
			t.Errorf("Persist should remove the TTL")
		}
		return nil
	})

	c.Advance(time.Hour)

	s.Do("k", func(tx storage.Tx) error { //nolint:errcheck
		if !m.CheckAndEvict(tx, "k") {
			t.Errorf("persisted key must not expire")
		}
		return nil
	})
}

func TestDeadlineSaturates(t *testing.T) {
	m, c, s := setup(t)
	put(s, "k")

	if got, want := m.Deadline(time.Second), c.Now().UnixNano()+int64(time.Second); got != want {
		t.Errorf("Deadline(1s) = %d, want %d", got, want)
	}
	if got := m.Deadline(time.Duration(math.MaxInt64)); got != math.MaxInt64 {
		t.Errorf("Deadline(max) = %d, want %d", got, int64(math.MaxInt64))
	}

	s.Do("k", func(tx storage.Tx) error { //nolint:errcheck
		if !m.SetExpiry(tx, "k", time.Duration(math.MaxInt64)) {
			t.Fatal("SetExpiry on an existing key returned false")
		}
		return nil
	})

	c.Advance(24 * 365 * time.Hour)
	s.Do("k", func(tx storage.Tx) error { //nolint:errcheck
		if !m.CheckAndEvict(tx, "k") {
			t.Error("key with a far deadline expired")
		}
		if _, status := m.TTL(tx, "k"); status != Active {
			t.Errorf("TTL status = %v, want Active", status)
		}
		return nil
	})
}
