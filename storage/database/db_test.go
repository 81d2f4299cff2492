package database

import (
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMigrate(t *testing.T) {
	origRun := gooseRunFunc
	t.Cleanup(func() { gooseRunFunc = origRun })

	tests := []struct {
		name    string
		command string
		args    []string
		runErr  error
		wantErr bool
	}{
		{name: "up", command: "up"},
		{name: "down to", command: "down-to", args: []string{"0"}},
		{name: "failure", command: "up", runErr: errors.New("boom"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCmd, gotDir string
			var gotArgs []string
			gooseRunFunc = func(command string, _ *sql.DB, dir string, args ...string) error {
				gotCmd, gotDir, gotArgs = command, dir, args
				return tt.runErr
			}

			err := Migrate(sqlx.NewDb(&sql.DB{}, "postgres"), tt.command, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Migrate() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.command, gotCmd)
			assert.Equal(t, migrationsDir, gotDir)
			assert.Equal(t, tt.args, gotArgs)
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir(migrationsDir)
	assert.NoError(t, err)
	assert.NotEmpty(t, entries)
}
