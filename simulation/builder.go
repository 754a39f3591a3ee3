package simulation

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"

	"github.com/sarchlab/simsync/datarecording"
	"github.com/sarchlab/simsync/handler"
	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/monitoring"
	"github.com/sarchlab/simsync/timing"
)

// Builder can be used to build a simulation session.
type Builder struct {
	host           host.Host
	logger         *slog.Logger
	namePrefix     string
	freq           timing.Freq
	frames         uint64
	monitorOn      bool
	monitorPort    int
	recordOn       bool
	outputFileName string
}

// MakeBuilder creates a new builder. Sessions run at 60 frames per second
// without monitoring or recording.
func MakeBuilder() Builder {
	return Builder{
		freq: 60 * timing.Hz,
	}
}

// WithHost sets the host the session synchronizes with.
func (b Builder) WithHost(h host.Host) Builder {
	b.host = h
	return b
}

// WithLogger sets the logger.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithNamedVarPrefix sets the prefix of named variables.
func (b Builder) WithNamedVarPrefix(prefix string) Builder {
	b.namePrefix = prefix
	return b
}

// WithFrameRate sets how often frames run.
func (b Builder) WithFrameRate(f timing.Freq) Builder {
	b.freq = f
	return b
}

// WithFrames limits the number of frames. Zero runs until Stop.
func (b Builder) WithFrames(n uint64) Builder {
	b.frames = n
	return b
}

// WithMonitoring turns the monitoring server on.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithRecording records the session into a database.
func (b Builder) WithRecording() Builder {
	b.recordOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() error {
	if b.host == nil {
		return fmt.Errorf("simulation needs a host")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		return fmt.Errorf("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordOn && b.outputFileName != "" {
		return fmt.Errorf("output file cannot be set when recording is disabled")
	}

	return nil
}

// Build builds the session. Monitoring starts serving right away.
func (b Builder) Build(name string) (*Simulation, error) {
	if err := b.parametersMustBeValid(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Simulation{
		id:      xid.New().String(),
		host:    b.host,
		logger:  logger,
		metrics: prometheus.NewRegistry(),
		engine:  timing.NewSerialEngine(),
	}

	s.handler = handler.MakeBuilder().
		WithHost(b.host).
		WithLogger(logger).
		WithMetricsRegisterer(s.metrics).
		WithNamedVarPrefix(b.namePrefix).
		Build(name)

	s.driver = handler.MakeFrameDriverBuilder().
		WithEngine(s.engine).
		WithFreq(b.freq).
		WithFrames(b.frames).
		WithLogger(logger).
		Build(name+".Driver", s.handler)

	s.driver.AcceptHook(frameStartHook{s})

	if b.recordOn {
		if err := b.buildRecorder(s); err != nil {
			return nil, err
		}
	}

	if b.monitorOn {
		if err := b.buildMonitor(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (b Builder) buildRecorder(s *Simulation) error {
	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "simsync_" + s.id
	}

	backend, err := datarecording.New(outputPath)
	if err != nil {
		return err
	}

	s.recorder, err = datarecording.NewRecorder(backend, s.handler, s.logger)
	if err != nil {
		return err
	}

	s.outputPath = outputPath + ".sqlite3"
	s.handler.AcceptHook(s.recorder)
	s.handler.Registry().AcceptHook(s.recorder)

	return nil
}

func (b Builder) buildMonitor(s *Simulation) error {
	s.monitor = monitoring.NewMonitor().
		WithLogger(s.logger).
		WithGatherer(s.metrics)
	if b.monitorPort > 0 {
		s.monitor.WithPortNumber(b.monitorPort)
	}

	s.monitor.RegisterEngine(s.engine)
	s.monitor.RegisterTarget(s.handler)

	url, err := s.monitor.StartServer()
	if err != nil {
		return err
	}

	s.monitorURL = url

	return nil
}
