package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDB(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_CONNECTION", "")

	d, c := resolveDB("", "")
	assert.Equal(t, "sqlite", d)
	assert.Contains(t, c, "studytrack.db")

	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_CONNECTION", "postgres://localhost/study")
	d, c = resolveDB("", "")
	assert.Equal(t, "pgx", d)
	assert.Equal(t, "postgres://localhost/study", c)

	d, c = resolveDB("sqlite", "x.db")
	assert.Equal(t, "sqlite", d, "flags win over env")
	assert.Equal(t, "x.db", c)
}

func TestMigrateUpDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.db")

	for _, sub := range []string{"up", "down", "up"} {
		cmd := MigrateCmd()
		cmd.SetArgs([]string{sub, "--driver", "sqlite", "--db", path})
		require.NoError(t, cmd.Execute(), sub)
	}
}

func TestBuildRejectsUnknownBinary(t *testing.T) {
	cmd := BuildCmd()
	cmd.SetArgs([]string{"nope"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	assert.ErrorContains(t, cmd.Execute(), "unknown binary")
}
