package testutil

import (
	"sync"
	"time"

	"dwd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether any recorded entry has the given level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockSms implements providers.SmsProviderInterface and records attempts.
// Phones listed in FailFor fail; everything else succeeds.
type MockSms struct {
	mu         sync.Mutex
	Configured bool
	FailFor    map[string]bool
	Sent       []SentSms
}

type SentSms struct {
	Phone string
	Text  string
}

func (m *MockSms) Send(phone, text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentSms{Phone: phone, Text: text})
	return !m.FailFor[phone]
}

func (m *MockSms) IsConfigured() bool { return m.Configured }

func (m *MockSms) SentTo() []SentSms {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentSms(nil), m.Sent...)
}

// MockCompressor passes data through unchanged unless told to fail.
type MockCompressor struct {
	CompressErr   error
	DecompressErr error
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressErr != nil {
		return nil, m.CompressErr
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressErr != nil {
		return nil, m.DecompressErr
	}
	return val, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface with counters.
type MockMetrics struct {
	mu             sync.Mutex
	Lines          int
	Duplicates     int
	Sent           int
	Failed         int
	WatchRestarts  int
	SubscriberSets []int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) IncLinesProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines++
}

func (m *MockMetrics) IncDuplicatesSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duplicates++
}

func (m *MockMetrics) IncNotificationsSent(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent++
}

func (m *MockMetrics) IncNotificationsFailed(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failed++
}

func (m *MockMetrics) IncWatchRestarts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WatchRestarts++
}

func (m *MockMetrics) SetSubscribers(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubscriberSets = append(m.SubscriberSets, count)
}

func (m *MockMetrics) SetTailOffset(_ int64) {}
