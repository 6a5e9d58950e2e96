package interfaces

import "time"

type SchedulerInterface interface {
	Init()
	Stop()
	Reset()
	NextReset() time.Time
	ActiveFile() string
}
