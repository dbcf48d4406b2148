package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rounds/migrations"
)

func TestFS_PairedMigrations(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}

	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestFS_SeedsPaymentTypes(t *testing.T) {
	body, err := fs.ReadFile(migrations.FS, "000001_init.up.sql")
	require.NoError(t, err)

	for _, name := range []string{"'Cash'", "'Card'", "'Bank Transfer'"} {
		assert.Contains(t, string(body), name)
	}
}
