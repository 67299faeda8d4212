package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/driftlab/wakesim/datarecording"
	"github.com/driftlab/wakesim/monitoring"
	"github.com/driftlab/wakesim/wake"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a fixed-duration headless simulation.",
	Long: `Run advances the engine at a fixed tick rate for the requested ` +
		`duration. With --record the run is written to a SQLite database; ` +
		`with a monitor port the run can be watched over HTTP while it ` +
		`executes.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runSimulation(cmd)
	},
}

func init() {
	runCmd.Flags().Float64("duration", 60,
		"simulated seconds to run")
	runCmd.Flags().Float64("rate", 60,
		"ticks per simulated second")
	runCmd.Flags().Int64("seed", 0,
		"random seed; a non-zero seed makes the run reproducible")
	runCmd.Flags().Bool("realtime", false,
		"pace ticks against the wall clock instead of free-running")
	runCmd.Flags().Bool("record", false,
		"record the run into a SQLite database")
	runCmd.Flags().String("output", "",
		"recording file name (default: a generated run ID)")
	runCmd.Flags().Int("monitor-port", 0,
		"monitoring server port; 0 picks a free port")
	runCmd.Flags().Bool("no-monitor", false,
		"disable the monitoring server")
	runCmd.Flags().Bool("open", false,
		"open the monitoring server in a browser")
	runCmd.Flags().Bool("linear-decay", false,
		"use the legacy linear-age decay model")
	runCmd.Flags().Int("vessels", 0,
		"override the max vessel count")
	runCmd.Flags().Int("pool", 0,
		"override the global wake pool capacity")

	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command) {
	duration, _ := cmd.Flags().GetFloat64("duration")
	rate, _ := cmd.Flags().GetFloat64("rate")
	if duration <= 0 || rate <= 0 {
		fmt.Fprintln(os.Stderr, "duration and rate must be positive")
		os.Exit(1)
	}

	engine := buildEngine(cmd)

	var logger *datarecording.WakeLogger
	var recorder datarecording.DataRecorder
	if record, _ := cmd.Flags().GetBool("record"); record {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = os.Getenv("WAKESIM_OUTPUT")
		}

		recorder = datarecording.New(output)
		logger = datarecording.NewWakeLogger(recorder)
		engine.AcceptHook(logger)
	}

	monitor := startMonitor(cmd)

	dt := wake.Seconds(1 / rate)
	totalTicks := int(duration * rate)

	// Snapshot roughly once per simulated second.
	snapshotEvery := int(rate)
	if snapshotEvery < 1 {
		snapshotEvery = 1
	}

	var bar *monitoring.ProgressBar
	if monitor != nil {
		bar = monitor.CreateProgressBar("simulation", uint64(totalTicks))
	}

	realtime, _ := cmd.Flags().GetBool("realtime")

	for tick := 0; tick < totalTicks; tick++ {
		now := wake.Seconds(float64(tick) / rate)
		engine.Update(now, dt)

		if logger != nil && tick%snapshotEvery == 0 {
			logger.Snapshot(now, engine.Stats())
		}

		if monitor != nil {
			monitor.Publish(now, engine.Stats(),
				engine.OrphanedTrails(),
				engine.VesselSummaries(),
				engine.WakeSamples())
			bar.IncrementFinished(1)
		}

		if realtime {
			time.Sleep(time.Duration(float64(time.Second) / rate))
		}
	}

	if recorder != nil {
		recorder.Flush()
	}

	stats := engine.Stats()
	fmt.Printf("simulated %.1fs over %d ticks: "+
		"%d vessels live, %d wake points, %d orphan trails\n",
		duration, totalTicks, stats.ActiveVesselCount,
		stats.TotalWakePointCount, stats.OrphanedTrailCount)

	atexit.Exit(0)
}

func buildEngine(cmd *cobra.Command) *wake.Engine {
	builder := wake.MakeBuilder()

	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		builder = builder.
			WithRand(rand.New(rand.NewSource(seed))).
			WithIDGenerator(wake.NewSequentialIDGenerator())
	}

	if linear, _ := cmd.Flags().GetBool("linear-decay"); linear {
		builder = builder.WithLinearAgeDecay()
	}

	if vessels, _ := cmd.Flags().GetInt("vessels"); vessels > 0 {
		builder = builder.WithMaxVessels(vessels)
	}

	if pool, _ := cmd.Flags().GetInt("pool"); pool > 0 {
		builder = builder.WithMaxWakePoints(pool)
	}

	return builder.Build()
}

func startMonitor(cmd *cobra.Command) *monitoring.Monitor {
	if noMonitor, _ := cmd.Flags().GetBool("no-monitor"); noMonitor {
		return nil
	}

	port, _ := cmd.Flags().GetInt("monitor-port")
	if port == 0 {
		if env := os.Getenv("WAKESIM_MONITOR_PORT"); env != "" {
			if p, err := strconv.Atoi(env); err == nil {
				port = p
			}
		}
	}

	monitor := monitoring.NewMonitor()
	if port > 0 {
		monitor.WithPortNumber(port)
	}
	monitor.StartServer()

	if open, _ := cmd.Flags().GetBool("open"); open {
		if err := browser.OpenURL(monitor.URL()); err != nil {
			fmt.Fprintf(os.Stderr, "cannot open browser: %v\n", err)
		}
	}

	return monitor
}
