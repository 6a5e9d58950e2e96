package services

import (
	"dwd/internal/models"
	"dwd/internal/structures"
	"dwd/internal/watch"
)

func NewStatusLog(conf *structures.Config, clock *watch.Clock) *models.StatusLog {
	return models.NewStatusLog(conf.Status.Capacity, clock.Now)
}
