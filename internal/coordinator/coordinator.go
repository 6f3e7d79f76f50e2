// Package coordinator receives forecast payload updates from the data-fetch
// collaborator and fans them out to subscribers, retaining the latest payload
// for pull-style access.
package coordinator

import (
	"context"
	"sync"

	"github.com/minutewx/nexthour/internal/forecast"
	"github.com/minutewx/nexthour/internal/log"
)

// Update is a single event on the push contract: either a fresh forecast
// payload or a report that the upstream refresh failed.
type Update struct {
	Payload *forecast.Payload
	Err     error
}

// Source is the pull side of the collaborator contract.
type Source interface {
	// GetLatestForecast returns the most recently published payload, or
	// false if no payload has been received yet.
	GetLatestForecast() (*forecast.Payload, bool)
}

// Coordinator distributes incoming updates to all subscribers.
type Coordinator struct {
	mu          sync.RWMutex
	latest      *forecast.Payload
	subscribers []chan Update

	in chan Update
}

// New creates a Coordinator. Start must be called before updates flow.
func New() *Coordinator {
	return &Coordinator{
		in: make(chan Update, 20),
	}
}

// Subscribe registers a new subscriber and returns its update channel. All
// subscriptions must be made before Start.
func (c *Coordinator) Subscribe() <-chan Update {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Update, 20)
	c.subscribers = append(c.subscribers, ch)
	return ch
}

// Start runs the update distributor until the context is cancelled.
func (c *Coordinator) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case u := <-c.in:
				if u.Payload != nil {
					c.mu.Lock()
					c.latest = u.Payload
					c.mu.Unlock()
				}

				c.mu.RLock()
				subs := c.subscribers
				c.mu.RUnlock()

				if len(subs) == 0 {
					log.Debug("no subscribers registered, update discarded")
				}
				for _, ch := range subs {
					select {
					case ch <- u:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Publish pushes a fresh forecast payload to all subscribers.
func (c *Coordinator) Publish(p *forecast.Payload) {
	c.in <- Update{Payload: p}
}

// PublishFailure reports an upstream refresh failure to all subscribers.
func (c *Coordinator) PublishFailure(err error) {
	c.in <- Update{Err: err}
}

// GetLatestForecast implements Source.
func (c *Coordinator) GetLatestForecast() (*forecast.Payload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest, c.latest != nil
}
