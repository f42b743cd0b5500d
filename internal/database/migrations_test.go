package database

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesEmbeddedAndOrdered(t *testing.T) {
	names, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.Contains(t, names, "001_kv.sql")
	assert.True(t, sort.StringsAreSorted(names), "migrations must apply in lexical order")
}
