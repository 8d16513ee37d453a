package core_test

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/robgonnella/sweep/internal/config"
	"github.com/robgonnella/sweep/internal/core"
	"github.com/robgonnella/sweep/internal/discovery"
	"github.com/robgonnella/sweep/internal/event"
	"github.com/robgonnella/sweep/internal/exception"
	"github.com/robgonnella/sweep/internal/logger"
	mock_config "github.com/robgonnella/sweep/internal/mock/config"
	mock_recon "github.com/robgonnella/sweep/internal/mock/recon"
	mock_report "github.com/robgonnella/sweep/internal/mock/report"
	mock_sweep "github.com/robgonnella/sweep/internal/mock/sweep"
	"github.com/robgonnella/sweep/internal/recon"
	"github.com/robgonnella/sweep/internal/sweep"
	"github.com/robgonnella/sweep/internal/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func engineFactory(engine sweep.Engine, got *core.ScanOptions) core.EngineFactory {
	return func(opts core.ScanOptions, events event.Manager) sweep.Engine {
		*got = opts
		return engine
	}
}

func TestCoreConfig(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockConfig := mock_config.NewMockService(ctrl)

	conf := *config.Default()

	coreService := core.New(conf, mockConfig, nil, event.NewEventManager())

	t.Run("returns config", func(st *testing.T) {
		assert.Equal(st, conf, coreService.Conf())
	})

	t.Run("updates config", func(st *testing.T) {
		newConf := *config.Default()
		newConf.Sweep.Ports = "22,80"

		mockConfig.EXPECT().Save(&newConf).Return(nil)

		err := coreService.UpdateConfig(newConf)

		assert.NoError(st, err)
		assert.Equal(st, newConf, coreService.Conf())
	})

	t.Run("keeps config when save fails", func(st *testing.T) {
		before := coreService.Conf()

		newConf := *config.Default()
		newConf.Sweep.Ports = "443"

		mockConfig.EXPECT().Save(&newConf).Return(errors.New("mock error"))

		err := coreService.UpdateConfig(newConf)

		assert.Error(st, err)
		assert.Equal(st, before, coreService.Conf())
	})
}

func TestCoreScan(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockConfig := mock_config.NewMockService(ctrl)
	mockReports := mock_report.NewMockService(ctrl)
	mockEngine := mock_sweep.NewMockEngine(ctrl)

	conf := *config.Default()
	got := core.ScanOptions{}

	coreService := core.New(
		conf,
		mockConfig,
		mockReports,
		event.NewEventManager(),
		core.WithEngineFactory(engineFactory(mockEngine, &got)),
	)

	t.Run("sweeps and stores report", func(st *testing.T) {
		opts := core.ScanOptionsFromConfig("127.0.0.1", conf)
		opts.Ports = "80,22,22"

		report := &sweep.Report{
			ID:    "id",
			Host:  "127.0.0.1",
			IP:    "127.0.0.1",
			Ports: []uint16{22, 80},
		}

		mockEngine.EXPECT().
			Sweep(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, target *sweep.Target) (*sweep.Report, error) {
				assert.Equal(st, []uint16{22, 80}, target.Ports)
				assert.Equal(st, "127.0.0.1", target.IP.String())
				return report, nil
			})

		mockReports.EXPECT().Save(report).Return(nil)

		r, err := coreService.Scan(context.Background(), opts)

		assert.NoError(st, err)
		assert.Equal(st, report, r)
		assert.Equal(st, core.EngineConnect, got.Engine)
	})

	t.Run("does not store report when no-save is set", func(st *testing.T) {
		opts := core.ScanOptionsFromConfig("127.0.0.1", conf)
		opts.NoSave = true

		report := &sweep.Report{ID: "id"}

		mockEngine.EXPECT().Sweep(gomock.Any(), gomock.Any()).Return(report, nil)

		r, err := coreService.Scan(context.Background(), opts)

		assert.NoError(st, err)
		assert.Equal(st, report, r)
	})

	t.Run("returns report when storing fails", func(st *testing.T) {
		opts := core.ScanOptionsFromConfig("127.0.0.1", conf)

		report := &sweep.Report{ID: "id"}

		mockEngine.EXPECT().Sweep(gomock.Any(), gomock.Any()).Return(report, nil)
		mockReports.EXPECT().Save(report).Return(errors.New("mock error"))

		r, err := coreService.Scan(context.Background(), opts)

		assert.NoError(st, err)
		assert.Equal(st, report, r)
	})

	t.Run("stores partial report and returns sweep error", func(st *testing.T) {
		opts := core.ScanOptionsFromConfig("127.0.0.1", conf)

		report := &sweep.Report{ID: "id"}
		ioErr := exception.NewUnexpectedIOError("127.0.0.1:22", errors.New("mock error"))

		mockEngine.EXPECT().Sweep(gomock.Any(), gomock.Any()).Return(report, ioErr)
		mockReports.EXPECT().Save(report).Return(nil)

		r, err := coreService.Scan(context.Background(), opts)

		assert.ErrorIs(st, err, ioErr)
		assert.Equal(st, report, r)
	})

	t.Run("fails fast on bad ports", func(st *testing.T) {
		opts := core.ScanOptionsFromConfig("127.0.0.1", conf)
		opts.Ports = "0-10"

		r, err := coreService.Scan(context.Background(), opts)

		assert.Nil(st, r)
		assert.True(st, exception.IsInputError(err))
	})

	t.Run("fails fast on unknown engine", func(st *testing.T) {
		opts := core.ScanOptionsFromConfig("127.0.0.1", conf)
		opts.Engine = "syn"

		r, err := coreService.Scan(context.Background(), opts)

		assert.Nil(st, r)
		assert.True(st, exception.IsInputError(err))
	})

	t.Run("fails fast on bad timeout", func(st *testing.T) {
		opts := core.ScanOptionsFromConfig("127.0.0.1", conf)
		opts.Timeout = 0

		_, err := coreService.Scan(context.Background(), opts)

		assert.True(st, exception.IsInputError(err))
	})

	t.Run("fails fast on empty host", func(st *testing.T) {
		opts := core.ScanOptionsFromConfig("", conf)

		_, err := coreService.Scan(context.Background(), opts)

		assert.True(st, exception.IsInputError(err))
	})
}

func TestCoreHosts(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockConfig := mock_config.NewMockService(ctrl)
	mockProber := mock_sweep.NewMockProber(ctrl)

	conf := *config.Default()

	var gotTimeout time.Duration

	coreService := core.New(
		conf,
		mockConfig,
		nil,
		event.NewEventManager(),
		core.WithProberFactory(func(timeout time.Duration) sweep.Prober {
			gotTimeout = timeout
			return mockProber
		}),
		core.WithNetworkLookup(func() (*util.NetworkInfo, error) {
			return &util.NetworkInfo{
				Gateway: net.ParseIP("10.0.0.1"),
				UserIP:  net.ParseIP("10.0.0.2"),
				Cidr:    "10.0.0.0/30",
			}, nil
		}),
	)

	t.Run("sweeps given targets", func(st *testing.T) {
		opts := core.HostsOptionsFromConfig([]string{"192.168.1.5"}, conf)

		mockProber.EXPECT().
			Probe(gomock.Any(), net.ParseIP("192.168.1.5"), uint16(80)).
			Return(sweep.ProbeResult{Port: 80, State: sweep.StateClosed}, nil)

		results, err := coreService.Hosts(context.Background(), opts)

		assert.NoError(st, err)
		assert.Equal(st, conf.Hosts.Timeout, gotTimeout)
		assert.Equal(st, []discovery.HostResult{
			{IP: "192.168.1.5", Port: 80, Status: discovery.HostUp, State: sweep.StateClosed},
		}, results)
	})

	t.Run("sweeps default network without targets", func(st *testing.T) {
		opts := core.HostsOptionsFromConfig(nil, conf)

		mockProber.EXPECT().
			Probe(gomock.Any(), net.ParseIP("10.0.0.1"), uint16(80)).
			Return(sweep.ProbeResult{Port: 80, State: sweep.StateOpen}, nil)

		mockProber.EXPECT().
			Probe(gomock.Any(), net.ParseIP("10.0.0.2"), uint16(80)).
			Return(sweep.ProbeResult{Port: 80, State: sweep.StateFiltered}, nil)

		results, err := coreService.Hosts(context.Background(), opts)

		assert.NoError(st, err)
		assert.Equal(st, []discovery.HostResult{
			{IP: "10.0.0.1", Port: 80, Status: discovery.HostUp, State: sweep.StateOpen},
			{IP: "10.0.0.2", Port: 80, Status: discovery.HostDown, State: sweep.StateFiltered},
		}, results)
	})

	t.Run("fails fast on port zero", func(st *testing.T) {
		opts := core.HostsOptionsFromConfig(nil, conf)
		opts.Port = 0

		_, err := coreService.Hosts(context.Background(), opts)

		assert.True(st, exception.IsInputError(err))
	})
}

func TestCoreReports(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockConfig := mock_config.NewMockService(ctrl)
	mockReports := mock_report.NewMockService(ctrl)

	conf := *config.Default()

	coreService := core.New(conf, mockConfig, mockReports, event.NewEventManager())

	t.Run("lists reports", func(st *testing.T) {
		reports := []*sweep.Report{{ID: "a"}, {ID: "b"}}

		mockReports.EXPECT().List().Return(reports, nil)

		r, err := coreService.Reports()

		assert.NoError(st, err)
		assert.Equal(st, reports, r)
	})

	t.Run("gets report", func(st *testing.T) {
		report := &sweep.Report{ID: "a"}

		mockReports.EXPECT().Get("a").Return(report, nil)

		r, err := coreService.Report("a")

		assert.NoError(st, err)
		assert.Equal(st, report, r)
	})

	t.Run("deletes report", func(st *testing.T) {
		mockReports.EXPECT().Delete("a").Return(exception.ErrRecordNotFound)

		err := coreService.DeleteReport("a")

		assert.ErrorIs(st, err, exception.ErrRecordNotFound)
	})

	t.Run("reports are empty without storage", func(st *testing.T) {
		noStorage := core.New(conf, mockConfig, nil, event.NewEventManager())

		r, err := noStorage.Reports()

		assert.NoError(st, err)
		assert.Empty(st, r)

		_, err = noStorage.Report("a")

		assert.Error(st, err)
	})
}

func TestCoreDNS(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockConfig := mock_config.NewMockService(ctrl)
	resolver := mock_recon.NewMockDNSResolver(ctrl)

	gotNameserver := ""

	coreService := core.New(
		*config.Default(),
		mockConfig,
		nil,
		event.NewEventManager(),
		core.WithDNSResolverFactory(func(nameserver string, timeout time.Duration) (recon.DNSResolver, error) {
			gotNameserver = nameserver
			return resolver, nil
		}),
	)

	t.Run("queries through configured nameserver", func(st *testing.T) {
		resolver.EXPECT().LookupHost(gomock.Any(), "example.com").Return([]string{"93.184.215.14"}, nil)
		resolver.EXPECT().LookupMX(gomock.Any(), "example.com").Return(nil, errors.New("no such host"))
		resolver.EXPECT().LookupNS(gomock.Any(), "example.com").Return([]*net.NS{{Host: "a.iana-servers.net."}}, nil)
		resolver.EXPECT().LookupTXT(gomock.Any(), "example.com").Return([]string{"v=spf1 -all"}, nil)

		opts := core.DNSOptions{Domain: "example.com", Nameserver: "1.1.1.1", Timeout: time.Second}

		result, err := coreService.DNS(context.Background(), opts)

		assert.NoError(st, err)
		assert.Equal(st, "1.1.1.1", gotNameserver)
		assert.Equal(st, "1.1.1.1", result.Nameserver)
		assert.Equal(st, []string{"93.184.215.14"}, result.Results.A)
		assert.Equal(st, []string{"a.iana-servers.net"}, result.Results.NS)
		assert.Equal(st, "no such host", result.Errors[recon.RecordMX])
	})

	t.Run("uses config defaults", func(st *testing.T) {
		opts := core.DNSOptionsFromConfig("example.com", *config.Default())

		assert.Equal(st, "", opts.Nameserver)
		assert.Equal(st, 3*time.Second, opts.Timeout)
	})

	t.Run("fails fast on bad timeout", func(st *testing.T) {
		_, err := coreService.DNS(context.Background(), core.DNSOptions{Domain: "example.com"})

		assert.True(st, exception.IsInputError(err))
	})

	t.Run("rejects hostname nameserver", func(st *testing.T) {
		system := core.New(*config.Default(), mockConfig, nil, event.NewEventManager())

		_, err := system.DNS(context.Background(), core.DNSOptions{
			Domain:     "example.com",
			Nameserver: "dns.google",
			Timeout:    time.Second,
		})

		assert.True(st, exception.IsInputError(err))
	})
}

func TestCoreMonitor(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	buf := &bytes.Buffer{}

	logger.GlobalSetOutput(buf)

	defer logger.GlobalSetOutput(zerolog.ConsoleWriter{Out: os.Stderr})

	mockConfig := mock_config.NewMockService(ctrl)

	events := event.NewEventManager()

	coreService := core.New(*config.Default(), mockConfig, nil, events)

	t.Run("logs every event sent before stop", func(st *testing.T) {
		buf.Reset()

		stop := coreService.Monitor()

		for port := uint16(1); port <= 500; port++ {
			events.Send(event.Event{
				Type: event.ProbeCompletedEventType,
				Payload: sweep.ProbeEvent{
					ReportID: "id",
					IP:       "127.0.0.1",
					Result:   sweep.ProbeResult{Port: port, State: sweep.StateClosed},
				},
			})
		}

		events.Send(event.Event{
			Type:    event.SweepFinishedEventType,
			Payload: &sweep.Report{ID: "id"},
		})

		stop()

		assert.Equal(st, 500, strings.Count(buf.String(), "probe completed"))
		assert.Contains(st, buf.String(), "sweep finished")
	})

	t.Run("does not leak deliveries after stop", func(st *testing.T) {
		stop := coreService.Monitor()

		stop()

		before := runtime.NumGoroutine()

		for i := 0; i < 1000; i++ {
			events.Send(event.Event{Type: event.ProbeCompletedEventType})
		}

		assert.Eventually(st, func() bool {
			return runtime.NumGoroutine() <= before+5
		}, time.Second*5, time.Millisecond*10)
	})

	t.Run("does not log aborting errors", func(st *testing.T) {
		buf.Reset()

		stop := coreService.Monitor()

		events.ReportError(errors.New("mock error"))

		stop()

		assert.NotContains(st, buf.String(), "mock error")
	})

	assert.Equal(t, events, coreService.Events())
}
