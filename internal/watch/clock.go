package watch

import (
	"path/filepath"
	"time"

	"dwd/internal/structures"
)

// Clock supplies the current time in the single configured timezone.
// Every day-boundary decision in the daemon goes through it.
type Clock struct {
	loc    *time.Location
	logDir string
	prefix string
	nowFn  func() time.Time
}

func NewClock(conf *structures.Config) (*Clock, error) {
	loc, err := time.LoadLocation(conf.Watcher.Timezone)
	if err != nil {
		return nil, err
	}
	return &Clock{
		loc:    loc,
		logDir: conf.Watcher.LogDir,
		prefix: conf.Watcher.FilePrefix,
		nowFn:  time.Now,
	}, nil
}

func (c *Clock) Now() time.Time {
	return c.nowFn().In(c.loc)
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// TodayDots is the log-file-name date form, YYYY.MM.DD.
func (c *Clock) TodayDots() string {
	return c.Now().Format("2006.01.02")
}

// TodayCompact is the subscriber-file date form, YYYYMMDD.
func (c *Clock) TodayCompact() string {
	return c.Now().Format("20060102")
}

func (c *Clock) NowISO() string {
	return c.Now().Format("2006-01-02T15:04:05Z07:00")
}

// CurrentLogPath is the dispatch log the daemon should be tailing right now:
// {logDir}/{prefix}{YYYY.MM.DD}.txt. A new file appears at local midnight.
func (c *Clock) CurrentLogPath() string {
	return filepath.Join(c.logDir, c.prefix+c.TodayDots()+".txt")
}

// NextOccurrence returns the next wall-clock instant of hhmm ("15:04" form)
// in the configured timezone, today if still ahead, otherwise tomorrow.
func (c *Clock) NextOccurrence(hhmm string) (time.Time, error) {
	at, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	now := c.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, c.loc)
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, at.Hour(), at.Minute(), 0, 0, c.loc)
	}
	return next, nil
}
