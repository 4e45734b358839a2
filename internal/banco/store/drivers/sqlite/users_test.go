package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/aussiebroadwan/mibanco/internal/banco/store/drivers/sqlite"
	"github.com/aussiebroadwan/mibanco/internal/banco/store/storetest"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestUsers(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return newTestStore(t) })
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
}

func TestInfo(t *testing.T) {
	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "banco-test.db") + "?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	info := st.Info()
	require.Equal(t, "sqlite", info.Driver)
	require.Equal(t, "banco-test.db", info.Name)
}
