// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/pkg/db"
	"github.com/Skotchmaster/marketplace/pkg/hash"
)

// InitTestDB opens a migrated sqlite database private to the test.
func InitTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "market.db") + "?_pragma=foreign_keys(1)"
	gdb, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err, "open sqlite")
	require.NoError(t, models.Migrate(gdb), "migrate")

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

// CreateAccount inserts an active account whose password is its username.
func CreateAccount(t testing.TB, gdb *gorm.DB, username string, seller, superuser bool) *models.Account {
	t.Helper()

	pw, err := hash.HashPassword(username)
	require.NoError(t, err)

	acc := &models.Account{
		Username:    username,
		Password:    pw,
		FirstName:   "first_" + username,
		LastName:    "last_" + username,
		IsSeller:    seller,
		IsSuperuser: superuser,
		IsActive:    true,
	}
	require.NoError(t, gdb.Create(acc).Error)
	return acc
}

// CloseDB closes the pool behind gdb, e.g. to simulate an outage.
func CloseDB(gdb *gorm.DB) error {
	return db.Close(gdb)
}
