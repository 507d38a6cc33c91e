package pending

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Notes string `json:"notes"`
}

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	require.NoError(t, err)
	return store
}

func TestEnqueueDrainFIFO(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "queue.json"))

	for _, notes := range []string{"first", "second", "third"} {
		_, err := store.Enqueue(KindCase, payload{Notes: notes}, "")
		require.NoError(t, err)
	}

	entries, err := store.DrainAll(KindCase)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, expected := range []string{"first", "second", "third"} {
		var p payload
		require.NoError(t, json.Unmarshal(entries[i].Payload, &p))
		require.Equal(t, expected, p.Notes)
		require.False(t, entries[i].Synced)
	}

	// DrainAll reads without removing.
	again, err := store.DrainAll(KindCase)
	require.NoError(t, err)
	require.Len(t, again, 3)
}

func TestKindsAreIsolated(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "queue.json"))

	_, err := store.Enqueue(KindCase, payload{Notes: "a case"}, "")
	require.NoError(t, err)
	_, err = store.Enqueue(KindResearch, payload{Notes: "a study"}, "")
	require.NoError(t, err)

	require.NoError(t, store.Clear(KindCase))

	cases, err := store.DrainAll(KindCase)
	require.NoError(t, err)
	require.Empty(t, cases)

	research, err := store.DrainAll(KindResearch)
	require.NoError(t, err)
	require.Len(t, research, 1)
}

func TestDurableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")

	store := openStore(t, path)
	entry, err := store.Enqueue(KindCase, payload{Notes: "survives"}, "ref-1")
	require.NoError(t, err)

	reopened := openStore(t, path)
	entries, err := reopened.DrainAll(KindCase)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, entry.LocalID, entries[0].LocalID)
	require.Equal(t, "ref-1", entries[0].ClientRef)

	// Local ids keep incrementing after a restart.
	next, err := reopened.Enqueue(KindCase, payload{Notes: "later"}, "")
	require.NoError(t, err)
	require.Greater(t, next.LocalID, entry.LocalID)
}

func TestClearRoundTrip(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "queue.json"))

	_, err := store.Enqueue(KindResearch, payload{Notes: "x"}, "")
	require.NoError(t, err)

	require.NoError(t, store.Clear(KindResearch))

	entries, err := store.DrainAll(KindResearch)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRemoveKeepsUnconfirmed(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "queue.json"))

	first, err := store.Enqueue(KindCase, payload{Notes: "confirmed"}, "")
	require.NoError(t, err)
	_, err = store.Enqueue(KindCase, payload{Notes: "still pending"}, "")
	require.NoError(t, err)
	third, err := store.Enqueue(KindCase, payload{Notes: "also confirmed"}, "")
	require.NoError(t, err)

	require.NoError(t, store.Remove(KindCase, []int64{first.LocalID, third.LocalID}))

	entries, err := store.DrainAll(KindCase)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var p payload
	require.NoError(t, json.Unmarshal(entries[0].Payload, &p))
	require.Equal(t, "still pending", p.Notes)
}
