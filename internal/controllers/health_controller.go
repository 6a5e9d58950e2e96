package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"dwd/internal/services"
	"dwd/internal/watch/interfaces"
)

type HealthController struct {
	store     services.SubscriptionStoreInterface
	scheduler interfaces.SchedulerInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Subscribers   int     `json:"subscribers"`
	Day           string  `json:"day"`
	ActiveFile    string  `json:"active_file"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Subscribers:   hc.store.Count(),
		Day:           hc.store.Today(),
		ActiveFile:    filepath.Base(hc.scheduler.ActiveFile()),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store services.SubscriptionStoreInterface, scheduler interfaces.SchedulerInterface) *HealthController {
	return &HealthController{
		store:     store,
		scheduler: scheduler,
		startTime: time.Now(),
	}
}
