package core

import (
	"github.com/robgonnella/sweep/internal/discovery"
	"github.com/robgonnella/sweep/internal/event"
	"github.com/robgonnella/sweep/internal/sweep"
)

// Monitor logs sweep progress published on the event manager. The returned
// function waits for every event already sent to be logged, then stops
// monitoring. Aborting errors are not logged here, they reach the caller.
func (c *Core) Monitor() func() {
	evtReceiveChan := make(chan event.Event, 100)

	ids := []int{
		c.events.RegisterListener(event.ProbeCompletedEventType, evtReceiveChan),
		c.events.RegisterListener(event.HostCompletedEventType, evtReceiveChan),
		c.events.RegisterListener(event.SweepFinishedEventType, evtReceiveChan),
	}

	stopping := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			select {
			case evt := <-evtReceiveChan:
				c.handleEvent(evt)
			case <-stopping:
				// everything pending is already buffered
				for {
					select {
					case evt := <-evtReceiveChan:
						c.handleEvent(evt)
					default:
						return
					}
				}
			}
		}
	}()

	return func() {
		for _, id := range ids {
			c.events.Wait(id)
			c.events.RemoveListener(id)
		}

		close(stopping)
		<-done
	}
}

func (c *Core) handleEvent(evt event.Event) {
	switch payload := evt.Payload.(type) {
	case sweep.ProbeEvent:
		c.logger.Debug().
			Str("type", string(evt.Type)).
			Str("ip", payload.IP).
			Uint16("port", payload.Result.Port).
			Str("state", string(payload.Result.State)).
			Str("rtt", payload.Result.RTT.String()).
			Msg("probe completed")
	case discovery.HostResult:
		c.logger.Debug().
			Str("type", string(evt.Type)).
			Str("ip", payload.IP).
			Str("status", string(payload.Status)).
			Str("state", string(payload.State)).
			Msg("host completed")
	case *sweep.Report:
		counts := payload.CountByState()

		c.logger.Debug().
			Str("type", string(evt.Type)).
			Str("id", payload.ID).
			Int("open", counts[sweep.StateOpen]).
			Int("closed", counts[sweep.StateClosed]).
			Int("filtered", counts[sweep.StateFiltered]).
			Bool("cancelled", payload.Cancelled).
			Str("duration", payload.Duration().String()).
			Msg("sweep finished")
	default:
		c.logger.Warn().Str("type", string(evt.Type)).Msg("unknown event payload")
	}
}
