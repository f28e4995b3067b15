// Command ohc-bench drives a synthetic create/find workload against a
// hashentry.Engine and reports throughput and final arena occupancy.
package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/ohcgo/ohc/arena"
	"github.com/ohcgo/ohc/config"
	"github.com/ohcgo/ohc/hashentry"
	"github.com/ohcgo/ohc/keyhash"
	"github.com/ohcgo/ohc/mem"
	"github.com/ohcgo/ohc/metrics/prom"
	"github.com/ohcgo/ohc/partition"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to a JSONC scenario file (defaults to a built-in scenario)")
		listenAddr = pflag.StringP("listen", "l", "", "if set, serve Prometheus metrics on this address after the run and block")
		namespace  = pflag.String("namespace", "ohc", "Prometheus metric namespace")
		verbose    = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.WithError(err).Fatal("load config")
		}
		cfg = loaded
	}

	registry := prometheus.NewRegistry()
	adapter := prom.New(registry, *namespace)

	layout, err := hashentry.NewLayout(cfg.Engine.BlockSize)
	if err != nil {
		log.WithError(err).Fatal("build layout")
	}
	a, err := arena.New(int(cfg.Engine.ArenaSize), layout.BlockSize)
	if err != nil {
		log.WithError(err).Fatal("build arena")
	}
	defer a.Close()
	registry.MustRegister(prom.NewArenaCollector(*namespace, func() (int, int, int) {
		s := a.Stats()
		return s.Total, s.Free, s.Used
	}))

	table, err := partition.NewTable(cfg.Engine.PartitionCount)
	if err != nil {
		log.WithError(err).Fatal("build partition table")
	}

	eng := hashentry.NewEngine(hashentry.Config{
		Layout:           layout,
		Allocator:        a,
		Accessor:         mem.NewAccessor(),
		Partitions:       table,
		LRUWarnThreshold: cfg.Engine.LRUWarnThreshold,
		Metrics:          adapter,
		Logger:           log,
	})

	log.WithFields(logrus.Fields{
		"blockSize":      cfg.Engine.BlockSize,
		"partitionCount": cfg.Engine.PartitionCount,
		"keys":           cfg.Workload.Keys,
		"operations":     cfg.Workload.Operations,
		"concurrency":    cfg.Workload.Concurrency,
	}).Info("starting workload")

	start := time.Now()
	created, found, failed := runWorkload(eng, table, cfg.Workload)
	elapsed := time.Since(start)

	fmt.Printf("elapsed=%s created=%d found=%d failed=%d ops/sec=%.0f\n",
		elapsed, created, found, failed, float64(cfg.Workload.Operations)/elapsed.Seconds())
	stats := a.Stats()
	fmt.Printf("arena: total=%d used=%d free=%d\n", stats.Total, stats.Used, stats.Free)

	if *listenAddr != "" {
		http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		log.WithField("addr", *listenAddr).Info("serving /metrics")
		if err := http.ListenAndServe(*listenAddr, nil); err != nil {
			log.WithError(err).Fatal("serve metrics")
		}
	}
}

// runWorkload spreads cfg.Operations across cfg.Concurrency goroutines, each
// with its own PRNG stream, mixing CreateEntry calls with FindEntry lookups
// according to cfg.ReadPercent.
func runWorkload(eng *hashentry.Engine, table *partition.Table, cfg config.Workload) (created, found, failed int64) {
	perWorker := cfg.Operations / cfg.Concurrency
	var g errgroup.Group
	var createdCount, foundCount, failedCount atomic.Int64

	for w := 0; w < cfg.Concurrency; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(w) + 1))
			keyBuf := make([]byte, cfg.KeySize)
			valBuf := make([]byte, cfg.ValueSize)
			for i := 0; i < perWorker; i++ {
				keyIdx := rng.Intn(cfg.Keys)
				fillDeterministic(keyBuf, keyIdx)
				hash := keyhash.Sum64(keyBuf)

				if rng.Intn(100) < cfg.ReadPercent {
					p := table.LockForHash(hash)
					head := eng.FindEntry(p, hash, hashentry.NewArraySource(keyBuf))
					table.Unlock(p)
					if head != 0 {
						foundCount.Add(1)
					}
					continue
				}

				rng.Read(valBuf)
				p := table.LockForHash(hash)
				head := eng.CreateEntry(hash, hashentry.NewArraySource(keyBuf), hashentry.NewArraySource(valBuf))
				if head == 0 {
					table.Unlock(p)
					failedCount.Add(1)
					continue
				}
				eng.AddAsHead(p, head)
				table.Unlock(p)
				createdCount.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	return createdCount.Load(), foundCount.Load(), failedCount.Load()
}

// fillDeterministic writes idx's decimal digits into buf, left-padded with
// zeros, so the same idx always hashes to the same key across workers.
func fillDeterministic(buf []byte, idx int) {
	s := strconv.Itoa(idx)
	for i := range buf {
		buf[i] = '0'
	}
	copy(buf[max(0, len(buf)-len(s)):], s)
}
