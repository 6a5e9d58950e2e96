package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"dwd/internal/models"
	"dwd/internal/providers"
	"dwd/internal/structures"
	"dwd/internal/watch/interfaces"
)

// Store is the slice of the subscription store the scheduler drives.
type Store interface {
	EnsureToday()
	Reset0900()
}

// LineHandler consumes one appended log line.
type LineHandler interface {
	HandleLine(line string)
}

// Scheduler owns the two clock-driven actions of the daemon: the daily
// subscription reset at a fixed local time, and the short-interval rollover
// check that retargets the tailer when the date changes. Both serialize
// through opsMu, and both may run concurrently with in-flight line handling.
type Scheduler struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	clock   *Clock
	store   Store
	tailer  *Tailer
	watcher *Watcher
	handler LineHandler
	status  *models.StatusLog

	cron  *gron.Cron
	opsMu sync.Mutex

	timerMu    sync.Mutex
	resetTimer *time.Timer
	nextReset  time.Time
	stopped    bool
}

func NewScheduler(
	conf *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	clock *Clock,
	store Store,
	tailer *Tailer,
	watcher *Watcher,
	handler LineHandler,
	status *models.StatusLog,
) interfaces.SchedulerInterface {
	return &Scheduler{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
		store:   store,
		tailer:  tailer,
		watcher: watcher,
		handler: handler,
		status:  status,
	}
}

func (s *Scheduler) Init() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if err := os.MkdirAll(s.conf.Watcher.LogDir, 0o755); err != nil {
		s.logger.Errorf(providers.TypeWatch, "create log dir: %s", err)
		s.status.Append("[WatchError] " + err.Error())
	}
	if err := s.tailer.Prepare(s.clock.CurrentLogPath()); err != nil {
		s.logger.Warnf(providers.TypeWatch, "prepare tail: %s", err)
		s.status.Append("[TailError] " + err.Error())
	}
	s.startWatchLocked()

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.conf.Watcher.RolloverCheck), s.checkRollover)
	s.cron.Start()

	s.scheduleReset()
}

func (s *Scheduler) Stop() {
	s.timerMu.Lock()
	s.stopped = true
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.timerMu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
	}

	// Let an in-flight reset or rollover finish before tearing the watch down.
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	s.watcher.Stop()
}

// Reset is the manual trigger for the daily routine, identical to the
// scheduled run.
func (s *Scheduler) Reset() {
	s.resetDaily()
}

func (s *Scheduler) NextReset() time.Time {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	return s.nextReset
}

func (s *Scheduler) ActiveFile() string {
	return s.tailer.Path()
}

// resetDaily archives and empties the subscriber store, recomputes today's
// log path and rewinds the tailer to offset 0. The rewind is deliberate:
// lines already sitting in a freshly created file count as new.
func (s *Scheduler) resetDaily() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.status.Append("[Reset] Daily reset at " + s.conf.Subscriptions.ResetAt)
	s.logger.Infof(providers.TypeApp, "Daily reset")

	s.store.Reset0900()

	if err := s.tailer.ForceReset(s.clock.CurrentLogPath()); err != nil {
		s.logger.Warnf(providers.TypeWatch, "reset tail: %s", err)
		s.status.Append("[TailError] " + err.Error())
	}
	s.restartWatchLocked()
}

// checkRollover runs on the short interval. It covers a missed daily reset
// (process down at the trigger time) through EnsureToday, and switches the
// tailed file when the computed path for today no longer matches. Unlike the
// daily reset, the switch lands at the new file's end.
func (s *Scheduler) checkRollover() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.store.EnsureToday()

	newPath := s.clock.CurrentLogPath()
	if newPath == s.tailer.Path() {
		if s.watcher.Running() {
			return
		}
		// A previous start failed, typically because the log directory was
		// missing. Keep retrying on every tick until the watch holds.
		if err := os.MkdirAll(s.conf.Watcher.LogDir, 0o755); err != nil {
			s.logger.Warnf(providers.TypeWatch, "create log dir: %s", err)
			return
		}
		if err := s.tailer.Prepare(newPath); err != nil {
			s.logger.Warnf(providers.TypeWatch, "prepare tail: %s", err)
			s.status.Append("[TailError] " + err.Error())
		}
		s.restartWatchLocked()
		return
	}

	s.status.Append("[Rollover] Switch to " + filepath.Base(newPath))
	s.logger.Infof(providers.TypeWatch, "rollover to %s", newPath)

	if err := s.tailer.SwitchFile(newPath); err != nil {
		s.logger.Warnf(providers.TypeWatch, "switch tail: %s", err)
		s.status.Append("[TailError] " + err.Error())
	}
	s.restartWatchLocked()
}

// scheduleReset arms a one-shot timer for the next occurrence of the reset
// time in the configured timezone, then re-arms itself after firing. gron
// cannot express a timezone-pinned wall-clock trigger, so this one job runs
// outside it.
func (s *Scheduler) scheduleReset() {
	next, err := s.clock.NextOccurrence(s.conf.Subscriptions.ResetAt)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "reset schedule: %s", err)
		return
	}

	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.stopped {
		return
	}
	s.nextReset = next
	s.resetTimer = time.AfterFunc(next.Sub(s.clock.Now()), func() {
		s.resetDaily()
		s.scheduleReset()
	})
}

// onFileEvent is the single drain point for filesystem notifications.
func (s *Scheduler) onFileEvent() {
	lines, err := s.tailer.PullNewLines()
	if err != nil {
		s.logger.Warnf(providers.TypeWatch, "tail read: %s", err)
		s.status.Append("[TailError] " + err.Error())
		return
	}
	for _, line := range lines {
		s.metrics.IncLinesProcessed()
		s.handler.HandleLine(line)
	}
}

func (s *Scheduler) startWatchLocked() {
	err := s.watcher.Start(s.conf.Watcher.LogDir, s.tailer.Path, s.onFileEvent)
	if err != nil {
		s.logger.Errorf(providers.TypeWatch, "start watch: %s", err)
		s.status.Append("[WatchError] " + err.Error())
		return
	}
	s.status.Append("[Watch] " + filepath.Base(s.tailer.Path()))
}

func (s *Scheduler) restartWatchLocked() {
	s.watcher.Stop()
	s.metrics.IncWatchRestarts()
	s.startWatchLocked()
}
