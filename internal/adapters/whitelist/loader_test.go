package whitelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStoreContains(t *testing.T) {
	store := NewStore([]string{"Gmail.com", " example.org ", ""}, zap.NewNop())

	assert.True(t, store.Contains("gmail.com"))
	assert.True(t, store.Contains("GMAIL.COM"))
	assert.True(t, store.Contains("example.org"))
	assert.False(t, store.Contains("evil.test"))
	assert.Equal(t, 2, store.Size())
}

func TestLoadFromCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "safe.csv")
	snapshotPath := filepath.Join(dir, "safe_domains.txt")

	csvData := "id,text,label\n1,gmail.com,safe\n2,Example.org,safe\n3,gmail.com,safe\n4,,safe\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csvData), 0644))

	store, err := Load(csvPath, snapshotPath, nil, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, store.Contains("gmail.com"))
	assert.True(t, store.Contains("example.org"))
	assert.Equal(t, 2, store.Size())

	// The snapshot is persisted for the next startup
	snapshot, err := os.ReadFile(snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "gmail.com\nexample.org\n", string(snapshot))
}

func TestLoadPrefersSnapshot(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "safe.csv")
	snapshotPath := filepath.Join(dir, "safe_domains.txt")

	require.NoError(t, os.WriteFile(csvPath, []byte("text\ncsv-only.test\n"), 0644))
	require.NoError(t, os.WriteFile(snapshotPath, []byte("snapshot.test\n"), 0644))

	store, err := Load(csvPath, snapshotPath, nil, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, store.Contains("snapshot.test"))
	assert.False(t, store.Contains("csv-only.test"))
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()

	store, err := Load(
		filepath.Join(dir, "does-not-exist.csv"),
		filepath.Join(dir, "does-not-exist.txt"),
		nil,
		zap.NewNop(),
	)
	require.NoError(t, err)

	for _, domain := range DefaultDomains {
		assert.True(t, store.Contains(domain))
	}
	assert.Equal(t, len(DefaultDomains), store.Size())
}

func TestLoadIncludesExtraDomains(t *testing.T) {
	dir := t.TempDir()

	store, err := Load("", filepath.Join(dir, "none.txt"), []string{"corp.example"}, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, store.Contains("corp.example"))
	assert.True(t, store.Contains("gmail.com"))
}

func TestLoadRejectsCSVWithoutTextColumn(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("id,domain\n1,gmail.com\n"), 0644))

	_, err := Load(csvPath, "", nil, zap.NewNop())
	assert.Error(t, err)
}
