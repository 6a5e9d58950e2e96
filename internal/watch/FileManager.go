package watch

import (
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"dwd/internal/models"
	"dwd/internal/providers"
	"dwd/internal/structures"
	"dwd/internal/watch/interfaces"
)

// FileManager persists one day's subscriber map as a single JSON snapshot
// and moves outdated snapshots into the archive directory at rotation.
type FileManager struct {
	compressor      interfaces.CompressorInterface
	logger          providers.Logger
	compressArchive bool
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor:      compressor,
		logger:          logger,
		compressArchive: conf.Subscriptions.CompressArchive,
	}
}

func (f *FileManager) SaveToFile(fileName string, data models.SubscriberFile) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(jsonData)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile reads back a day's snapshot. A missing file is an empty day,
// not an error; a corrupt file yields an empty map plus the parse error so
// the caller can warn and carry on.
func (f *FileManager) LoadFromFile(fileName string) (models.SubscriberFile, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return models.SubscriberFile{}, nil
		}
		return models.SubscriberFile{}, err
	}

	var state models.SubscriberFile
	if err := json.Unmarshal(data, &state); err != nil {
		return models.SubscriberFile{}, err
	}
	if state == nil {
		state = models.SubscriberFile{}
	}
	return state, nil
}

// Archive moves fileName into archiveDir, keyed by its original name. When
// archive compaction is on, the moved file is additionally zstd-compressed;
// compaction failure leaves the plain file in place and is only logged.
func (f *FileManager) Archive(fileName, archiveDir string) error {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return err
	}
	dst := filepath.Join(archiveDir, filepath.Base(fileName))
	if err := os.Rename(fileName, dst); err != nil {
		return err
	}

	if f.compressArchive {
		if err := f.compactArchived(dst); err != nil {
			f.logger.Warnf(providers.TypeApp, "archive compaction of %s failed: %s", dst, err)
		}
	}
	return nil
}

func (f *FileManager) compactArchived(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	compressed, err := f.compressor.Compress(data)
	if err != nil {
		return err
	}

	zstPath := path + ".zst"
	tmpFile := zstPath + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, zstPath); err != nil {
		os.Remove(tmpFile)
		return err
	}
	return os.Remove(path)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
