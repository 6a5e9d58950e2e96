package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwd/internal/models"
	"dwd/internal/providers"
	"dwd/internal/structures"
	"dwd/internal/watch"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type upsertCall struct {
	phone    string
	vehicles []string
}

type holdCall struct {
	phone string
	hold  bool
}

type mockStore struct {
	upserts []upsertCall
	removes []string
	holds   []holdCall
	records []*models.SubscriptionRecord
}

func (m *mockStore) Upsert(phone string, vehicles []string, _ bool) {
	m.upserts = append(m.upserts, upsertCall{phone: phone, vehicles: vehicles})
}
func (m *mockStore) Remove(phone string) { m.removes = append(m.removes, phone) }
func (m *mockStore) SetCancelHold(phone string, hold bool) {
	m.holds = append(m.holds, holdCall{phone: phone, hold: hold})
}
func (m *mockStore) List() []*models.SubscriptionRecord    { return m.records }
func (m *mockStore) SubscribersForVehicle(_ string) []string { return nil }
func (m *mockStore) EnsureToday()                          {}
func (m *mockStore) RotateTo(_ string)                     {}
func (m *mockStore) Reset0900()                            {}
func (m *mockStore) Today() string                         { return "20240101" }
func (m *mockStore) Count() int                            { return len(m.records) }

type mockSms struct {
	configured bool
	fail       bool
	sent       []string
}

func (m *mockSms) Send(phone, _ string) bool {
	m.sent = append(m.sent, phone)
	return !m.fail
}
func (m *mockSms) IsConfigured() bool { return m.configured }

type mockScheduler struct {
	resets     int
	activeFile string
	nextReset  time.Time
}

func (m *mockScheduler) Init()                {}
func (m *mockScheduler) Stop()                {}
func (m *mockScheduler) Reset()               { m.resets++ }
func (m *mockScheduler) NextReset() time.Time { return m.nextReset }
func (m *mockScheduler) ActiveFile() string   { return m.activeFile }

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache                     { return &mockCache{data: make(map[string][]byte)} }
func (m *mockCache) Get(key string) ([]byte, bool) { v, ok := m.data[key]; return v, ok }
func (m *mockCache) Set(key string, value []byte)  { m.data[key] = value }
func (m *mockCache) Del(key string)                { delete(m.data, key) }

// --- helpers ---

type controllerFixture struct {
	ac        *ApiController
	store     *mockStore
	sms       *mockSms
	scheduler *mockScheduler
	cache     *mockCache
	status    *models.StatusLog
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	conf := &structures.Config{
		Watcher: structures.WatcherConfig{
			LogDir:     "/logs",
			FilePrefix: "ERSS_",
			Timezone:   "Asia/Seoul",
		},
		Subscriptions: structures.SubscriptionsConfig{ResetAt: "09:00"},
	}
	clock, err := watch.NewClock(conf)
	require.NoError(t, err)

	f := &controllerFixture{
		store:     &mockStore{},
		sms:       &mockSms{configured: true},
		scheduler: &mockScheduler{activeFile: "/logs/ERSS_2024.01.01.txt"},
		cache:     newMockCache(),
		status:    models.NewStatusLog(10, time.Now),
	}
	f.ac = NewApiController(&mockLogger{}, conf, f.store, f.sms, f.scheduler, f.status, f.cache, clock)
	return f
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func getReq(handler http.HandlerFunc, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// --- Subscribe tests ---

func TestSubscribe_Valid(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.Subscribe, `{"phone":"010-1111-2222","vehicles":["사다리"]}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, f.store.upserts, 1)
	assert.Equal(t, "01011112222", f.store.upserts[0].phone)
	assert.Equal(t, []string{"사다리"}, f.store.upserts[0].vehicles)
}

func TestSubscribe_ResolvesAlias(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.Subscribe, `{"phone":"01011112222","vehicles":["금암구급02"]}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, f.store.upserts, 1)
	assert.Equal(t, []string{"금암구급2"}, f.store.upserts[0].vehicles)
}

func TestSubscribe_InvalidPhone(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.Subscribe, `{"phone":"12345","vehicles":["사다리"]}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, f.store.upserts)
}

func TestSubscribe_EmptyVehicles(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.Subscribe, `{"phone":"01011112222","vehicles":[]}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, f.store.upserts)
}

func TestSubscribe_UnknownVehicle(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.Subscribe, `{"phone":"01011112222","vehicles":["지휘차"]}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, f.store.upserts)
}

func TestSubscribe_InvalidJSON(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.Subscribe, "not json")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubscribe_OversizedBody(t *testing.T) {
	f := newControllerFixture(t)

	big := strings.Repeat("x", maxRequestBodySize+1)
	rr := postJSON(f.ac.Subscribe, big)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubscribe_InvalidatesCache(t *testing.T) {
	f := newControllerFixture(t)
	f.cache.Set("list", []byte("[]"))
	f.cache.Set("status", []byte("[]"))

	postJSON(f.ac.Subscribe, `{"phone":"01011112222","vehicles":["사다리"]}`)

	_, ok := f.cache.Get("list")
	assert.False(t, ok)
	_, ok = f.cache.Get("status")
	assert.False(t, ok)
}

// --- Unsubscribe / Hold tests ---

func TestUnsubscribe(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.Unsubscribe, `{"phone":"010-1111-2222"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"01011112222"}, f.store.removes)
}

func TestUnsubscribe_InvalidPhone(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.Unsubscribe, `{"phone":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, f.store.removes)
}

func TestHold(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.Hold, `{"phone":"01011112222","hold":true}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, f.store.holds, 1)
	assert.Equal(t, holdCall{phone: "01011112222", hold: true}, f.store.holds[0])
}

// --- List / Vehicles / Status tests ---

func TestList_MasksPhones(t *testing.T) {
	f := newControllerFixture(t)
	f.store.records = []*models.SubscriptionRecord{
		{Phone: "01011112222", Vehicles: []string{"사다리"}, CreatedAt: "2024-01-01T10:00:00+09:00"},
	}

	rr := getReq(f.ac.List, "/list")

	assert.Equal(t, http.StatusOK, rr.Code)
	var entries []listEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "010-1111-2222", entries[0].Phone)
}

func TestList_ServedFromCache(t *testing.T) {
	f := newControllerFixture(t)
	f.cache.Set("list", []byte(`[{"phone":"cached"}]`))

	rr := getReq(f.ac.List, "/list")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "cached")
}

func TestList_PopulatesCache(t *testing.T) {
	f := newControllerFixture(t)

	getReq(f.ac.List, "/list")

	_, ok := f.cache.Get("list")
	assert.True(t, ok)
}

func TestVehicles(t *testing.T) {
	f := newControllerFixture(t)

	rr := getReq(f.ac.Vehicles, "/vehicles")

	assert.Equal(t, http.StatusOK, rr.Code)
	var vehicles []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &vehicles))
	assert.Contains(t, vehicles, "사다리")
	assert.Contains(t, vehicles, "금암구급1")
	assert.Len(t, vehicles, 9)
}

func TestStatus(t *testing.T) {
	f := newControllerFixture(t)
	f.status.Append("[Watch] ERSS_2024.01.01.txt")

	rr := getReq(f.ac.Status, "/status")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "[Watch]")
}

// --- Diagnostics / Reset / TestSend tests ---

func TestDiagnostics(t *testing.T) {
	f := newControllerFixture(t)

	rr := getReq(f.ac.Diagnostics, "/diagnostics")

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "/logs", body["log_dir"])
	assert.Equal(t, "/logs/ERSS_2024.01.01.txt", body["active_file"])
	assert.Equal(t, "Asia/Seoul", body["timezone"])
	assert.Equal(t, true, body["sms_configured"])
}

func TestReset(t *testing.T) {
	f := newControllerFixture(t)
	f.cache.Set("status", []byte("[]"))

	rr := postJSON(f.ac.Reset, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, f.scheduler.resets)
	_, ok := f.cache.Get("status")
	assert.False(t, ok)
}

func TestTestSend_Success(t *testing.T) {
	f := newControllerFixture(t)

	rr := postJSON(f.ac.TestSend, `{"phone":"010-1111-2222"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sent")
	assert.Equal(t, []string{"01011112222"}, f.sms.sent)
}

func TestTestSend_Failure(t *testing.T) {
	f := newControllerFixture(t)
	f.sms.fail = true

	rr := postJSON(f.ac.TestSend, `{"phone":"01011112222"}`)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed")
}
