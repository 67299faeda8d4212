// Package monitoring turns a running simulation into a small web server so
// the run can be observed from outside the process. The monitor never reaches
// into live engine state; the run loop publishes snapshots and the HTTP
// handlers serve the latest one.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/driftlab/wakesim/wake"
)

// Monitor serves the latest published engine snapshot over HTTP.
type Monitor struct {
	portNumber int
	url        string

	snapshotLock sync.Mutex
	snapshot     snapshotRsp
	vesselList   []wake.VesselSummary
	poolSamples  []wake.GlobalWakePoint

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

type snapshotRsp struct {
	Now          float64                  `json:"now"`
	Vessels      int                      `json:"vessels"`
	WakePoints   int                      `json:"wake_points"`
	OrphanTrails int                      `json:"orphan_trails"`
	Trails       []wake.OrphanedWakeTrail `json:"trails"`
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// Publish stores the engine state to serve. The run loop calls it once per
// tick; all slices must be fresh and become the monitor's to keep.
func (m *Monitor) Publish(
	now wake.Seconds,
	stats wake.Stats,
	trails []wake.OrphanedWakeTrail,
	vessels []wake.VesselSummary,
	pool []wake.GlobalWakePoint,
) {
	m.snapshotLock.Lock()
	defer m.snapshotLock.Unlock()

	m.snapshot = snapshotRsp{
		Now:          float64(now),
		Vessels:      stats.ActiveVesselCount,
		WakePoints:   stats.TotalWakePointCount,
		OrphanTrails: stats.OrphanedTrailCount,
		Trails:       trails,
	}
	m.vesselList = vessels
	m.poolSamples = pool
}

// URL returns the address the server listens on. It is empty before
// StartServer.
func (m *Monitor) URL() string {
	return m.url
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

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

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/stats", m.stats)
	r.HandleFunc("/api/vessels", m.vessels)
	r.HandleFunc("/api/pool", m.pool)
	r.HandleFunc("/api/trails", m.trails)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	m.snapshotLock.Lock()
	now := m.snapshot.Now
	m.snapshotLock.Unlock()

	fmt.Fprintf(w, "{\"now\":%.10f}", now)
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	m.snapshotLock.Lock()
	rsp := m.snapshot
	rsp.Trails = nil
	m.snapshotLock.Unlock()

	writeJSON(w, rsp)
}

func (m *Monitor) vessels(w http.ResponseWriter, _ *http.Request) {
	m.snapshotLock.Lock()
	vessels := m.vesselList
	m.snapshotLock.Unlock()

	if vessels == nil {
		vessels = []wake.VesselSummary{}
	}

	writeJSON(w, vessels)
}

func (m *Monitor) pool(w http.ResponseWriter, _ *http.Request) {
	m.snapshotLock.Lock()
	pool := m.poolSamples
	m.snapshotLock.Unlock()

	if pool == nil {
		pool = []wake.GlobalWakePoint{}
	}

	writeJSON(w, pool)
}

func (m *Monitor) trails(w http.ResponseWriter, _ *http.Request) {
	m.snapshotLock.Lock()
	trails := m.snapshot.Trails
	m.snapshotLock.Unlock()

	if trails == nil {
		trails = []wake.OrphanedWakeTrail{}
	}

	writeJSON(w, trails)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
