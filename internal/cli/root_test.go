package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "ea-coach", cmd.Use)

	for _, name := range []string{"start", "migrate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("port"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestMigrateRequiresPostgres(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	err := runMigrations(context.Background(), t.TempDir()+"/missing.yaml")
	assert.ErrorContains(t, err, "postgres url not configured")
}
