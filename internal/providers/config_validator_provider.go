package providers

import (
	"fmt"
	"time"

	"dwd/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors.ErrOrNil()
	}

	// Struct tags cannot express these two.
	if _, err := time.LoadLocation(c.conf.Watcher.Timezone); err != nil {
		return fmt.Errorf("watcher.timezone: %w", err)
	}
	if _, err := time.Parse("15:04", c.conf.Subscriptions.ResetAt); err != nil {
		return fmt.Errorf("subscriptions.resetAt must be HH:MM: %w", err)
	}
	return nil
}
