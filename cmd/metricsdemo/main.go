// Command metricsdemo wires a metrics.Registry to its export collaborators:
// a Graphite flusher, a tabular CSV writer and the HTTP exposition surface.
// It is an example binary, not part of the library, patterned on the
// teacher's cmd/cache/main.go startup sequence (flags, YAML config, logger,
// worker goroutines, signal-driven shutdown).
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/appmetrics/appmetrics/clock"
	"github.com/appmetrics/appmetrics/decorator"
	"github.com/appmetrics/appmetrics/export"
	"github.com/appmetrics/appmetrics/export/csvreport"
	"github.com/appmetrics/appmetrics/export/graphite"
	"github.com/appmetrics/appmetrics/export/httpmetrics"
	exportprometheus "github.com/appmetrics/appmetrics/export/prometheus"
	zerologadapter "github.com/appmetrics/appmetrics/logging/zerolog_adapter"
	"github.com/appmetrics/appmetrics/metrics"
)

var (
	configFileName = flag.String("config", "/etc/appmetrics/config.yml", "path to config file")
	logLevel       = flag.String("log-level", "info", "log level")
	printVersion   = flag.Bool("version", false, "print version and exit")

	// Version is set at build time via -ldflags.
	Version = "latest"
)

func main() {
	flag.Parse()
	if *printVersion {
		fmt.Printf("appmetrics demo version: %s\n", Version)
		os.Exit(0)
	}

	config, err := export.ReadConfig(*configFileName)
	if err != nil {
		fmt.Printf("can not read settings: %s\n", err.Error())
		os.Exit(1)
	}

	logger, err := zerologadapter.ConfigureLog("stdout", *logLevel, "metricsdemo", true)
	if err != nil {
		fmt.Printf("can not configure log: %s\n", err.Error())
		os.Exit(1)
	}

	clk := clock.NewSystemClock()
	registry := metrics.NewRegistry(clk)
	registry.SetLogger(logger)

	seedDemoInstruments(registry)

	var wg sync.WaitGroup
	shutdown := make(chan struct{})

	graphiteReporter := graphite.NewReporter(registry, config.GraphiteSettings())
	if err := graphiteReporter.Start(); err != nil {
		logger.Warningf("graphite reporter disabled: %s", err.Error())
	} else if config.Graphite.Enabled {
		runEvery(&wg, shutdown, config.GraphiteSettings().Interval, graphiteReporter.Sync)
		logger.Infof("graphite reporter syncing to %s every %s", config.Graphite.URI, config.GraphiteSettings().Interval)
	}

	if config.CSV.Enabled {
		csvReporter := csvreport.NewReporter(config.CSV.Directory, clk)
		interval := time.Duration(config.CSV.Interval) * time.Second
		runEvery(&wg, shutdown, interval, func() {
			if err := csvReporter.Write(registry, config.CSV.Tag); err != nil {
				logger.Errorf("csv report failed: %s", err.Error())
			}
		})
		logger.Infof("csv reporter writing tag %q into %s every %s", config.CSV.Tag, config.CSV.Directory, interval)
	}

	var httpServer *http.Server
	if config.HTTP.Enabled {
		router := httpmetrics.NewRouter(registry)
		if config.Prometheus.Enabled {
			router.Handle(config.Prometheus.Path, exportprometheus.NewHandler(registry, config.Prometheus.Subsystem))
			logger.Infof("prometheus scrape endpoint mounted at %s", config.Prometheus.Path)
		}
		httpServer = &http.Server{
			Addr:    config.HTTP.Listen,
			Handler: router,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Infof("http exposition listening on %s", config.HTTP.Listen)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Errorf("http server stopped: %s", err.Error())
			}
		}()
	}

	logger.Infof("appmetrics demo started. Version: %s", Version)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	logger.Infof("received signal %s, shutting down", sig.String())

	close(shutdown)
	if httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}
	wg.Wait()
	logger.Infof("appmetrics demo stopped. Version: %s", Version)
}

// runEvery launches a goroutine that calls f on a fixed interval until
// shutdown is closed, tracked by wg.
func runEvery(wg *sync.WaitGroup, shutdown chan struct{}, interval time.Duration, f func()) {
	if interval <= 0 {
		interval = time.Second
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				f()
			case <-shutdown:
				return
			}
		}
	}()
}

// seedDemoInstruments registers a representative set of instruments and
// drives them with synthetic traffic, so the exposed surface has something
// to show immediately: a counter and meter for request volume, a histogram
// of simulated request latency timed via decorator.TimeFuncWithClock, and
// a gauge reporting a pool size.
func seedDemoInstruments(registry *metrics.Registry) {
	requests, _ := registry.NewCounter("requests.total")
	latency, _ := registry.NewHistogram("requests.latency_seconds", metrics.ExpDecayingReservoirOpts(1028, 0.015, 0))
	throughput, _ := registry.NewMeter("requests.throughput")
	poolSize, _ := registry.NewGauge("workers.pool_size")

	_ = registry.Tag("requests.total", "demo")
	_ = registry.Tag("requests.latency_seconds", "demo")
	_ = registry.Tag("requests.throughput", "demo")
	_ = registry.Tag("workers.pool_size", "demo")

	poolSize.Notify(8)

	timedRequest := decorator.TimeFunc(latency, func() {
		time.Sleep(time.Duration(5+rand.Intn(40)) * time.Millisecond)
	})

	go func() {
		for {
			requests.Notify(1)
			throughput.Notify(1)
			timedRequest()
			time.Sleep(100 * time.Millisecond)
		}
	}()
}
