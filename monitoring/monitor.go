// Package monitoring serves a running session over HTTP: the registry's
// variables and events, the frame state, process resources, a CPU profile
// and the Prometheus metrics.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/simsync/idgen"
	"github.com/sarchlab/simsync/monitoring/web"
	"github.com/sarchlab/simsync/registry"
	"github.com/sarchlab/simsync/timing"
)

// Engine is the event engine that drives the frames.
type Engine interface {
	Pause()
	Continue()
	CurrentTime() timing.VTimeInSec
}

// Target is a frame handler whose registry can be inspected.
type Target interface {
	Name() string
	TimeStamp() float64
	TickCounter() uint64
	IsPaused() bool

	// Inspect runs fn while no frame is in progress.
	Inspect(fn func(r *registry.Registry))
}

// Monitor can turn a session into a server and allows external monitoring
// and controlling of the frame loop.
type Monitor struct {
	engine     Engine
	targets    []Target
	gatherer   prometheus.Gatherer
	portNumber int
	logger     *slog.Logger

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
	progressIDs      idgen.Generator

	server *http.Server
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		logger:      slog.Default(),
		progressIDs: idgen.New(),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("port not allowed for the monitoring server, using a random port",
			"port", portNumber)

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogger sets the logger.
func (m *Monitor) WithLogger(logger *slog.Logger) *Monitor {
	m.logger = logger
	return m
}

// WithGatherer sets where /metrics reads from. Without one the metrics
// route is not served.
func (m *Monitor) WithGatherer(g prometheus.Gatherer) *Monitor {
	m.gatherer = g
	return m
}

// RegisterEngine registers the engine that drives the frames.
func (m *Monitor) RegisterEngine(e Engine) {
	m.engine = e
}

// RegisterTarget registers a frame handler to be monitored.
func (m *Monitor) RegisterTarget(t Target) {
	m.targets = append(m.targets, t)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := newProgressBar(m.progressIDs.Generate(), name, total)

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the routes of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/list_targets", m.listTargets)
	r.HandleFunc("/api/frame/{target}", m.frame)
	r.HandleFunc("/api/variables/{target}", m.listVariables)
	r.HandleFunc("/api/simobjects/{target}", m.listSimObjects)
	r.HandleFunc("/api/events/{target}", m.listEvents)
	r.HandleFunc("/api/stats/{target}", m.stats)
	r.HandleFunc("/api/variable/{target}/{name}", m.variableDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	if m.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
	}

	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", fmt.Errorf("cannot listen on %s: %w", actualPort, err)
	}

	url := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	m.logger.Info("monitoring session", "url", url)

	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitoring server stopped", "error", err)
		}
	}()

	return url, nil
}

// StopServer shuts the server down.
func (m *Monitor) StopServer(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	if m.engine == nil {
		http.Error(w, "no engine registered", http.StatusNotFound)
		return
	}

	m.engine.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	if m.engine == nil {
		http.Error(w, "no engine registered", http.StatusNotFound)
		return
	}

	m.engine.Continue()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	if m.engine == nil {
		http.Error(w, "no engine registered", http.StatusNotFound)
		return
	}

	fmt.Fprintf(w, "{\"now\":%.10f}", float64(m.engine.CurrentTime()))
}

func (m *Monitor) listTargets(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.targets))
	for _, t := range m.targets {
		names = append(names, t.Name())
	}

	m.writeJSON(w, names)
}

type frameRsp struct {
	Name        string  `json:"name"`
	TickCounter uint64  `json:"tick_counter"`
	TimeStamp   float64 `json:"time_stamp"`
	Paused      bool    `json:"paused"`
}

func (m *Monitor) frame(w http.ResponseWriter, r *http.Request) {
	t := m.findTargetOr404(w, mux.Vars(r)["target"])
	if t == nil {
		return
	}

	var rsp frameRsp

	t.Inspect(func(_ *registry.Registry) {
		rsp = frameRsp{
			Name:        t.Name(),
			TickCounter: t.TickCounter(),
			TimeStamp:   t.TimeStamp(),
			Paused:      t.IsPaused(),
		}
	})

	m.writeJSON(w, rsp)
}

func (m *Monitor) listVariables(w http.ResponseWriter, r *http.Request) {
	m.inspectJSON(w, r, func(reg *registry.Registry) any { return reg.Variables() })
}

func (m *Monitor) listSimObjects(w http.ResponseWriter, r *http.Request) {
	m.inspectJSON(w, r, func(reg *registry.Registry) any { return reg.SimObjects() })
}

func (m *Monitor) listEvents(w http.ResponseWriter, r *http.Request) {
	m.inspectJSON(w, r, func(reg *registry.Registry) any { return reg.Events() })
}

func (m *Monitor) stats(w http.ResponseWriter, r *http.Request) {
	m.inspectJSON(w, r, func(reg *registry.Registry) any { return reg.Stats() })
}

func (m *Monitor) inspectJSON(
	w http.ResponseWriter,
	r *http.Request,
	collect func(reg *registry.Registry) any,
) {
	t := m.findTargetOr404(w, mux.Vars(r)["target"])
	if t == nil {
		return
	}

	var out any

	t.Inspect(func(reg *registry.Registry) {
		out = collect(reg)
	})

	m.writeJSON(w, out)
}

func (m *Monitor) variableDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	t := m.findTargetOr404(w, vars["target"])
	if t == nil {
		return
	}

	m.serializeVariable(w, t, vars["name"], nil)
}

type fieldReq struct {
	TargetName string `json:"target_name,omitempty"`
	VarName    string `json:"var_name,omitempty"`
	FieldName  string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	req := fieldReq{}

	if err := json.Unmarshal([]byte(mux.Vars(r)["json"]), &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t := m.findTargetOr404(w, req.TargetName)
	if t == nil {
		return
	}

	var fields []string
	if req.FieldName != "" {
		fields = strings.Split(req.FieldName, ".")
	}

	m.serializeVariable(w, t, req.VarName, fields)
}

// serializeVariable writes a variable one level deep, starting at the
// field path when one is given.
func (m *Monitor) serializeVariable(
	w http.ResponseWriter,
	t Target,
	name string,
	fields []string,
) {
	var (
		buf   bytes.Buffer
		found bool
		err   error
	)

	t.Inspect(func(reg *registry.Registry) {
		v, ok := reg.LookupVariable(name)
		if !ok {
			return
		}

		found = true

		serializer := goseth.NewSerializer()
		serializer.SetRoot(v)
		serializer.SetMaxDepth(1)

		if len(fields) > 0 {
			if err = serializer.SetEntryPoint(fields); err != nil {
				return
			}
		}

		err = serializer.Serialize(&buf)
	})

	switch {
	case !found:
		http.Error(w, "Variable not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		m.write(w, buf.Bytes())
	}
}

func (m *Monitor) findTargetOr404(w http.ResponseWriter, name string) Target {
	for _, t := range m.targets {
		if t.Name() == name {
			return t
		}
	}

	http.Error(w, "Target not found", http.StatusNotFound)

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressBarRsp, 0, len(m.progressBars))

	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	m.writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.fail(w, err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		m.fail(w, err)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		m.fail(w, err)
		return
	}

	m.writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		m.fail(w, err)
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		m.fail(w, err)
		return
	}

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	m.write(w, data)
}

func (m *Monitor) write(w http.ResponseWriter, data []byte) {
	if _, err := w.Write(data); err != nil {
		m.logger.Warn("cannot write monitoring response", "error", err)
	}
}

func (m *Monitor) fail(w http.ResponseWriter, err error) {
	m.logger.Error("monitoring request failed", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
