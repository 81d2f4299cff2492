// Package testutil prepares a postgres database for repository tests.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/storage/database"
)

// hostEnv must point to a postgres server for PrepareDB to run.
const hostEnv = "TEST_DATABASE_HOST"

var tables = []string{"fee", "attendance", "enrollment", "student", "class", "location"}

// PrepareDB creates and migrates the test database, then empties it.
// The test is skipped when TEST_DATABASE_HOST is not set.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv(hostEnv) == "" {
		t.Skipf("%s is not set", hostEnv)
	}
	t.Setenv("ENV", "TEST")

	conf := core.NewConfig()
	conf.Database.Engine = "postgres"

	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("PrepareDB() failed to create database: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db, "up"); err != nil {
		t.Fatalf("PrepareDB() failed to migrate database: %v", err)
	}
	for _, table := range tables {
		if _, err = db.ExecContext(context.Background(), "DELETE FROM "+table); err != nil {
			t.Fatalf("PrepareDB() failed to empty %s: %v", table, err)
		}
	}
	return db
}

// NopLogger discards everything.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}
