package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwd/internal/models"
	"dwd/internal/structures"
	"dwd/internal/testutil"
)

func newTestFileManager(compress bool) *FileManager {
	conf := &structures.Config{}
	conf.Subscriptions.CompressArchive = compress
	return NewFileManager(conf, &testutil.MockCompressor{}, &testutil.MockLogger{})
}

func TestFileManager_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subscribers_20240101.json")

	fm := newTestFileManager(false)
	state := models.SubscriberFile{
		"01011112222": {
			Phone:     "01011112222",
			Vehicles:  []string{"사다리", "굴절"},
			CreatedAt: "2024-01-01T10:00:00+09:00",
		},
	}
	require.NoError(t, fm.SaveToFile(path, state))

	loaded, err := fm.LoadFromFile(path)
	require.NoError(t, err)
	require.Contains(t, loaded, "01011112222")
	assert.Equal(t, []string{"사다리", "굴절"}, loaded["01011112222"].Vehicles)

	// The temp file is renamed away by a successful save.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_LoadFromFile_Missing(t *testing.T) {
	fm := newTestFileManager(false)

	state, err := fm.LoadFromFile(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, state)
	assert.NotNil(t, state)
}

func TestFileManager_LoadFromFile_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	fm := newTestFileManager(false)
	state, err := fm.LoadFromFile(path)
	assert.Error(t, err)
	assert.Empty(t, state)
}

func TestFileManager_LoadFromFile_NullDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "null.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0644))

	fm := newTestFileManager(false)
	state, err := fm.LoadFromFile(path)
	require.NoError(t, err)
	assert.NotNil(t, state)
}

func TestFileManager_Archive_MovesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "subscribers_20240101.json")
	archiveDir := filepath.Join(dir, "archive")
	require.NoError(t, os.WriteFile(src, []byte("{}"), 0644))

	fm := newTestFileManager(false)
	require.NoError(t, fm.Archive(src, archiveDir))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(archiveDir, "subscribers_20240101.json"))
	assert.NoError(t, err)
}

func TestFileManager_Archive_Compacts(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "subscribers_20240101.json")
	archiveDir := filepath.Join(dir, "archive")
	require.NoError(t, os.WriteFile(src, []byte(`{"a":1}`), 0644))

	fm := newTestFileManager(true)
	require.NoError(t, fm.Archive(src, archiveDir))

	moved := filepath.Join(archiveDir, "subscribers_20240101.json")
	_, err := os.Stat(moved)
	assert.True(t, os.IsNotExist(err), "plain archive should be replaced")

	data, err := os.ReadFile(moved + ".zst")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestFileManager_Archive_CompactionFailureKeepsPlain(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "subscribers_20240101.json")
	archiveDir := filepath.Join(dir, "archive")
	require.NoError(t, os.WriteFile(src, []byte("{}"), 0644))

	logger := &testutil.MockLogger{}
	conf := &structures.Config{}
	conf.Subscriptions.CompressArchive = true
	fm := NewFileManager(conf, &testutil.MockCompressor{CompressErr: assert.AnError}, logger)

	require.NoError(t, fm.Archive(src, archiveDir))

	_, err := os.Stat(filepath.Join(archiveDir, "subscribers_20240101.json"))
	assert.NoError(t, err, "plain file stays when compaction fails")
	assert.True(t, logger.HasLevel("warn"))
}
