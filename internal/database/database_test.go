package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adops/internal/logger"
)

func TestConnectAndMigrateSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "adops.db")

	db, err := Connect(dsn, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"ads", "advertisers", "invoices", "invoice_items", "products", "admin_settings"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, isPostgres("postgres://u:p@localhost/adops"))
	assert.True(t, isPostgres("postgresql://localhost/adops"))
	assert.False(t, isPostgres("adops.db"))
	assert.False(t, isPostgres("file:test?mode=memory"))
}
