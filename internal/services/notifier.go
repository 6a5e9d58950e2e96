package services

import (
	"fmt"
	"sync"

	"dwd/internal/models"
	"dwd/internal/providers"
	"dwd/internal/structures"
	"dwd/internal/watch"
)

// The message carries the vehicle name and nothing else from the log line.
const notifyPrefix = "[출동알림] "

type NotifierInterface interface {
	HandleLine(line string)
}

// Notifier turns one appended log line into at most one set of SMS attempts.
// The line lock makes the dedup check-then-insert atomic and serializes
// whole-line handling against duplicate filesystem events.
type Notifier struct {
	mu      sync.Mutex
	dedup   *watch.DedupCache
	store   SubscriptionStoreInterface
	sms     providers.SmsProviderInterface
	status  *models.StatusLog
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewNotifier(
	conf *structures.Config,
	store SubscriptionStoreInterface,
	sms providers.SmsProviderInterface,
	status *models.StatusLog,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) NotifierInterface {
	return &Notifier{
		dedup:   watch.NewDedupCache(conf.Watcher.DedupSize),
		store:   store,
		sms:     sms,
		status:  status,
		logger:  logger,
		metrics: metrics,
	}
}

func (n *Notifier) HandleLine(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	h := watch.LineHash(line)
	if n.dedup.Seen(h) {
		n.metrics.IncDuplicatesSkipped()
		return
	}
	n.dedup.Record(h)

	token, ok := watch.LastBracketValue(line)
	if !ok {
		return
	}
	if !models.KnownVehicle(token) {
		n.logger.Debugf(providers.TypeWatch, "token %q is not a vehicle, dropped", token)
		return
	}

	targets := n.store.SubscribersForVehicle(token)
	if len(targets) == 0 {
		n.status.Append("[Skip] " + token + " / 구독자 없음 또는 보류")
		return
	}

	text := notifyPrefix + token
	sent, failed := 0, 0
	for _, phone := range targets {
		if n.sms.Send(phone, text) {
			sent++
			n.metrics.IncNotificationsSent(token)
		} else {
			failed++
			n.metrics.IncNotificationsFailed(token)
		}
	}

	n.status.Append(fmt.Sprintf("[Send] %s → 성공 %d / 실패 %d", token, sent, failed))
	n.logger.Infof(providers.TypeWatch, "notified %s: %d ok, %d failed", token, sent, failed)
}
