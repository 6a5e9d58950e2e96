package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"dwd/internal/models"
	"dwd/internal/providers"
	"dwd/internal/services"
	"dwd/internal/structures"
	"dwd/internal/watch"
	"dwd/internal/watch/interfaces"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const testMessage = "[테스트] 출동알림 시스템 연결 확인"

type ApiController struct {
	logger    providers.Logger
	conf      *structures.Config
	store     services.SubscriptionStoreInterface
	sms       providers.SmsProviderInterface
	scheduler interfaces.SchedulerInterface
	status    *models.StatusLog
	cache     providers.CacheProviderInterface
	clock     *watch.Clock
}

func NewApiController(
	logger providers.Logger,
	conf *structures.Config,
	store services.SubscriptionStoreInterface,
	sms providers.SmsProviderInterface,
	scheduler interfaces.SchedulerInterface,
	status *models.StatusLog,
	cache providers.CacheProviderInterface,
	clock *watch.Clock,
) *ApiController {
	return &ApiController{
		logger:    logger,
		conf:      conf,
		store:     store,
		sms:       sms,
		scheduler: scheduler,
		status:    status,
		cache:     cache,
		clock:     clock,
	}
}

type subscribeRequest struct {
	Phone    string   `json:"phone"`
	Vehicles []string `json:"vehicles"`
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

type holdRequest struct {
	Phone string `json:"phone"`
	Hold  bool   `json:"hold"`
}

type listEntry struct {
	Phone      string   `json:"phone"`
	Vehicles   []string `json:"vehicles"`
	CancelHold bool     `json:"cancel_hold_until_09"`
	CreatedAt  string   `json:"created_at"`
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) invalidate() {
	ac.cache.Del("list")
	ac.cache.Del("status")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

// Subscribe replaces the phone's record for the rest of the day. The phone
// is validated and normalized here; the store trusts its input.
func (ac *ApiController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if !models.ValidPhone(req.Phone) {
		http.Error(w, "phone must be 10-11 digits", http.StatusBadRequest)
		return
	}
	if len(req.Vehicles) == 0 {
		http.Error(w, "vehicles must not be empty", http.StatusBadRequest)
		return
	}
	for i, v := range req.Vehicles {
		req.Vehicles[i] = models.ResolveAlias(v)
		if !models.KnownVehicle(req.Vehicles[i]) {
			http.Error(w, "unknown vehicle: "+v, http.StatusBadRequest)
			return
		}
	}

	phone := models.NormalizePhone(req.Phone)
	ac.store.Upsert(phone, req.Vehicles, false)
	ac.invalidate()

	ac.logger.Infof(providers.TypePost, "subscribed %s", models.MaskPhone(phone))
	writeJSON(w, http.StatusCreated, map[string]any{
		"phone":    models.MaskPhone(phone),
		"vehicles": req.Vehicles,
	})
}

func (ac *ApiController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !models.ValidPhone(req.Phone) {
		http.Error(w, "phone must be 10-11 digits", http.StatusBadRequest)
		return
	}

	phone := models.NormalizePhone(req.Phone)
	ac.store.Remove(phone)
	ac.invalidate()

	ac.logger.Infof(providers.TypePost, "unsubscribed %s", models.MaskPhone(phone))
	writeJSON(w, http.StatusOK, map[string]string{"phone": models.MaskPhone(phone)})
}

// Hold toggles notification suppression without dropping the subscription.
func (ac *ApiController) Hold(w http.ResponseWriter, r *http.Request) {
	var req holdRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !models.ValidPhone(req.Phone) {
		http.Error(w, "phone must be 10-11 digits", http.StatusBadRequest)
		return
	}

	phone := models.NormalizePhone(req.Phone)
	ac.store.SetCancelHold(phone, req.Hold)
	ac.invalidate()

	writeJSON(w, http.StatusOK, map[string]any{
		"phone": models.MaskPhone(phone),
		"hold":  req.Hold,
	})
}

// List returns today's subscriptions with phones in masked display form.
func (ac *ApiController) List(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "list", func() (any, error) {
		recs := ac.store.List()
		out := make([]listEntry, 0, len(recs))
		for _, rec := range recs {
			out = append(out, listEntry{
				Phone:      models.MaskPhone(rec.Phone),
				Vehicles:   rec.Vehicles,
				CancelHold: rec.CancelHold,
				CreatedAt:  rec.CreatedAt,
			})
		}
		return out, nil
	})
}

func (ac *ApiController) Vehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Vehicles())
}

func (ac *ApiController) Status(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "status", func() (any, error) {
		return ac.status.List(), nil
	})
}

func (ac *ApiController) Diagnostics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"log_dir":        ac.conf.Watcher.LogDir,
		"active_file":    ac.scheduler.ActiveFile(),
		"timezone":       ac.conf.Watcher.Timezone,
		"now":            ac.clock.NowISO(),
		"next_reset":     ac.scheduler.NextReset().Format("2006-01-02T15:04:05Z07:00"),
		"sms_configured": ac.sms.IsConfigured(),
	})
}

// Reset runs the full daily routine on demand.
func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	ac.scheduler.Reset()
	ac.invalidate()
	ac.logger.Infof(providers.TypePost, "manual reset")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// TestSend fires one diagnostic SMS outside the notification pipeline.
func (ac *ApiController) TestSend(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !models.ValidPhone(req.Phone) {
		http.Error(w, "phone must be 10-11 digits", http.StatusBadRequest)
		return
	}

	if ac.sms.Send(models.NormalizePhone(req.Phone), testMessage) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"status": "failed"})
}
