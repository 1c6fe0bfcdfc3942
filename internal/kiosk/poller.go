package kiosk

import (
	"context"
	"log"
	"time"
)

// DefaultPollInterval is how often the poller refreshes when the caller does
// not choose an interval.
const DefaultPollInterval = 30 * time.Second

// Poller refreshes the controller on a fixed interval so both surfaces stay
// in sync with the backend without user action.
type Poller struct {
	controller *Controller
	interval   time.Duration
}

// NewPoller creates a poller. A non-positive interval falls back to the
// default.
func NewPoller(controller *Controller, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{controller: controller, interval: interval}
}

// Run refreshes immediately, then on every tick until the context is
// cancelled. Refresh errors are logged and the loop keeps going; the next
// successful refresh clears the disconnected state.
func (p *Poller) Run(ctx context.Context) {
	if err := p.controller.Refresh(ctx); err != nil {
		log.Printf("refresh failed: %v", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.controller.Refresh(ctx); err != nil {
				log.Printf("refresh failed: %v", err)
			}
		}
	}
}
