package watch

import (
	"io"
	"os"
	"strings"
	"sync"

	"dwd/internal/providers"
)

// Tailer tracks a byte offset into the active log file and yields the
// complete lines appended since the last read. Its mutex serializes pulls
// against file switches so two callers can never interleave offset updates.
type Tailer struct {
	mu      sync.Mutex
	path    string
	offset  int64
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewTailer(logger providers.Logger, metrics providers.MetricsProviderInterface) *Tailer {
	return &Tailer{
		logger:  logger,
		metrics: metrics,
	}
}

// Prepare points the tailer at path, creating an empty file if absent, and
// seeks to the current end so pre-existing content is never reprocessed.
func (t *Tailer) Prepare(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prepareLocked(path, false)
}

// SwitchFile retargets the tailer during rollover. Reads continue from the
// new file's current end.
func (t *Tailer) SwitchFile(newPath string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prepareLocked(newPath, false)
}

// ForceReset retargets the tailer and rewinds to offset 0, so lines already
// present in the fresh file are treated as new. This is what the daily reset
// wants: a freshly rotated file is read from its start.
func (t *Tailer) ForceReset(newPath string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prepareLocked(newPath, true)
}

func (t *Tailer) prepareLocked(path string, rewind bool) error {
	t.path = path
	t.offset = 0

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		t.metrics.SetTailOffset(0)
		return err
	}
	defer f.Close()

	if !rewind {
		end, err := f.Seek(0, io.SeekEnd)
		if err != nil {
			t.metrics.SetTailOffset(0)
			return err
		}
		t.offset = end
	}
	t.metrics.SetTailOffset(t.offset)
	return nil
}

// PullNewLines reads from the stored offset to end-of-file and splits on
// newlines. A line written mid-flush may come back truncated; that is
// accepted, there is no reassembly buffer.
func (t *Tailer) PullNewLines() ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.Open(t.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	t.offset += int64(len(data))
	t.metrics.SetTailOffset(t.offset)

	if len(data) == 0 {
		return nil, nil
	}

	var lines []string
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (t *Tailer) Path() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path
}

func (t *Tailer) Offset() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}
