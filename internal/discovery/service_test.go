package discovery_test

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/robgonnella/sweep/internal/discovery"
	"github.com/robgonnella/sweep/internal/event"
	"github.com/robgonnella/sweep/internal/exception"
	mock_sweep "github.com/robgonnella/sweep/internal/mock/sweep"
	"github.com/robgonnella/sweep/internal/sweep"
	"github.com/stretchr/testify/assert"
)

func TestHostSweeper(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	t.Run("marks open and refused hosts up", func(st *testing.T) {
		prober := mock_sweep.NewMockProber(ctrl)

		states := map[string]sweep.State{
			"10.0.0.1": sweep.StateOpen,
			"10.0.0.2": sweep.StateClosed,
			"10.0.0.3": sweep.StateFiltered,
		}

		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), uint16(80)).DoAndReturn(
			func(ctx context.Context, ip net.IP, port uint16) (sweep.ProbeResult, error) {
				return sweep.ProbeResult{Port: port, State: states[ip.String()]}, nil
			},
		).Times(3)

		service := discovery.NewHostSweeper(prober, 2, nil)

		results, err := service.Sweep(context.Background(), []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}, 80)

		assert.NoError(st, err)
		assert.Equal(st, []discovery.HostResult{
			{IP: "10.0.0.1", Port: 80, Status: discovery.HostUp, State: sweep.StateOpen},
			{IP: "10.0.0.2", Port: 80, Status: discovery.HostUp, State: sweep.StateClosed},
			{IP: "10.0.0.3", Port: 80, Status: discovery.HostDown, State: sweep.StateFiltered},
		}, results)
	})

	t.Run("marks host down on unexpected probe error", func(st *testing.T) {
		prober := mock_sweep.NewMockProber(ctrl)

		ioErr := exception.NewUnexpectedIOError("10.0.0.255:80", errors.New("permission denied"))

		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), gomock.Any()).Return(sweep.ProbeResult{}, ioErr)

		service := discovery.NewHostSweeper(prober, 1, nil)

		results, err := service.Sweep(context.Background(), []string{"10.0.0.255"}, 80)

		assert.NoError(st, err)
		assert.Len(st, results, 1)
		assert.Equal(st, discovery.HostDown, results[0].Status)
	})

	t.Run("returns hosts probed before cancellation", func(st *testing.T) {
		prober := mock_sweep.NewMockProber(ctrl)

		ctx, cancel := context.WithCancel(context.Background())

		defer cancel()

		once := sync.Once{}

		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, ip net.IP, port uint16) (sweep.ProbeResult, error) {
				if ip.String() == "10.0.0.1" {
					return sweep.ProbeResult{Port: port, State: sweep.StateOpen}, nil
				}

				once.Do(cancel)

				<-ctx.Done()

				return sweep.ProbeResult{}, ctx.Err()
			},
		).AnyTimes()

		service := discovery.NewHostSweeper(prober, 1, nil)

		results, err := service.Sweep(ctx, []string{"10.0.0.0/29"}, 22)

		assert.NoError(st, err)
		assert.Equal(st, []discovery.HostResult{
			{IP: "10.0.0.1", Port: 22, Status: discovery.HostUp, State: sweep.StateOpen},
		}, results)
	})

	t.Run("publishes host events", func(st *testing.T) {
		prober := mock_sweep.NewMockProber(ctrl)

		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), gomock.Any()).Return(
			sweep.ProbeResult{Port: 22, State: sweep.StateClosed}, nil,
		)

		events := event.NewEventManager()
		listener := make(chan event.Event, 1)

		events.RegisterListener(event.HostCompletedEventType, listener)

		service := discovery.NewHostSweeper(prober, 1, events)

		_, err := service.Sweep(context.Background(), []string{"10.0.0.9"}, 22)

		assert.NoError(st, err)

		evt := <-listener

		payload, ok := evt.Payload.(discovery.HostResult)

		assert.True(st, ok)
		assert.Equal(st, "10.0.0.9", payload.IP)
		assert.Equal(st, discovery.HostUp, payload.Status)
	})

	t.Run("returns input error for bad target", func(st *testing.T) {
		prober := mock_sweep.NewMockProber(ctrl)

		service := discovery.NewHostSweeper(prober, 1, nil)

		_, err := service.Sweep(context.Background(), []string{"nope"}, 22)

		assert.True(st, exception.IsInputError(err))
	})
}
