package storage

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/raykavin/gochartjs/pkg/style"
	"github.com/stretchr/testify/require"
)

// tick returns a clock advancing one second per call.
func tick() func() time.Time {
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func stores(t *testing.T) map[string]DocumentStore {
	t.Helper()

	bunt, err := FromMemory(WithClock(tick()))
	require.NoError(t, err)

	sql, err := FromSQLite(":memory:", WithClock(tick()))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, bunt.Close())
		require.NoError(t, sql.Close())
	})

	return map[string]DocumentStore{"buntdb": bunt, "sqlite": sql}
}

func doc(name string) *Document {
	return &Document{
		Name:   name,
		Title:  "Chart " + name,
		Config: json.RawMessage(`{"data":{"datasets":[]}}`),
		Width:  style.Pixels(600),
		Height: style.Percent(40),
	}
}

func TestStore_SaveGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			saved := doc("line")
			require.NoError(t, store.Save(saved))
			require.Equal(t, time.Date(2024, time.June, 1, 10, 0, 1, 0, time.UTC), saved.UpdatedAt)

			got, err := store.Get("line")
			require.NoError(t, err)
			require.Equal(t, "Chart line", got.Title)
			require.JSONEq(t, string(saved.Config), string(got.Config))
			require.Equal(t, style.Pixels(600), got.Width)
			require.Equal(t, style.Percent(40), got.Height)
			require.True(t, saved.UpdatedAt.Equal(got.UpdatedAt))

			_, err = store.Get("missing")
			require.ErrorIs(t, err, ErrNotFound)

			require.ErrorIs(t, store.Save(&Document{}), ErrNoName)
		})
	}
}

func TestStore_ReplaceAndList(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(doc("a")))
			require.NoError(t, store.Save(doc("b")))
			require.NoError(t, store.Save(doc("c")))

			replaced := doc("a")
			replaced.Title = "updated"
			require.NoError(t, store.Save(replaced))

			docs, err := store.List()
			require.NoError(t, err)

			names := make([]string, 0, len(docs))
			for _, d := range docs {
				names = append(names, d.Name)
			}
			require.Equal(t, []string{"b", "c", "a"}, names)
			require.Equal(t, "updated", docs[2].Title)

			docs, err = store.List(WithNamePrefix("c"))
			require.NoError(t, err)
			require.Len(t, docs, 1)

			docs, err = store.List(WithUpdatedSince(replaced.UpdatedAt))
			require.NoError(t, err)
			require.Len(t, docs, 1)
			require.Equal(t, "a", docs[0].Name)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(doc("gone")))
			require.NoError(t, store.Delete("gone"))

			_, err := store.Get("gone")
			require.ErrorIs(t, err, ErrNotFound)

			require.ErrorIs(t, store.Delete("gone"), ErrNotFound)
		})
	}
}

func TestBuntStore_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.db")

	store, err := FromFile(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(doc("kept")))
	require.NoError(t, store.Close())

	reopened, err := FromFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("kept")
	require.NoError(t, err)
	require.Equal(t, "Chart kept", got.Title)
}
