// Package config loads the JSONC configuration consumed by cmd/ohc-bench:
// engine geometry plus a synthetic workload description. JSONC (JSON with
// comments and trailing commas) is parsed via github.com/tailscale/hujson
// and then standardized to plain JSON before unmarshaling.
package config

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/tailscale/hujson"
)

// Engine mirrors hashentry.Config's tunables, kept separate from that
// package so config has no dependency on hashentry beyond field names.
type Engine struct {
	ArenaSize        int64 `json:"arenaSize"`
	BlockSize        int   `json:"blockSize"`
	PartitionCount   int   `json:"partitionCount"`
	LRUWarnThreshold int   `json:"lruWarnThreshold"`
}

// Workload describes a synthetic benchmark run against the engine.
type Workload struct {
	Keys        int `json:"keys"`
	KeySize     int `json:"keySize"`
	ValueSize   int `json:"valueSize"`
	Operations  int `json:"operations"`
	Concurrency int `json:"concurrency"`
	// ReadPercent is the fraction (0-100) of operations that are reads
	// rather than writes.
	ReadPercent int `json:"readPercent"`
}

// Config is the top-level document loaded from a scenario file.
type Config struct {
	Engine   Engine   `json:"engine"`
	Workload Workload `json:"workload"`
}

// Default returns a small, fast scenario suitable when no config file is
// given.
func Default() Config {
	return Config{
		Engine: Engine{
			ArenaSize:        64 << 20,
			BlockSize:        4096,
			PartitionCount:   1024,
			LRUWarnThreshold: 1000,
		},
		Workload: Workload{
			Keys:        100_000,
			KeySize:     16,
			ValueSize:   128,
			Operations:  1_000_000,
			Concurrency: 8,
			ReadPercent: 90,
		},
	}
}

// Load reads and parses a JSONC scenario file at path. Any field absent from
// the file keeps Default()'s value; a field given explicitly (even as 0)
// takes the file's value.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}

	cfg := Default()
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: unmarshal %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate reports whether c describes a runnable engine and workload.
func (c Config) Validate() error {
	if c.Engine.BlockSize <= 0 || c.Engine.BlockSize&(c.Engine.BlockSize-1) != 0 {
		return errors.Newf("config: engine.blockSize %d must be a power of two", c.Engine.BlockSize)
	}
	if c.Engine.PartitionCount <= 0 {
		return errors.Newf("config: engine.partitionCount %d must be positive", c.Engine.PartitionCount)
	}
	if c.Engine.ArenaSize <= 0 {
		return errors.Newf("config: engine.arenaSize %d must be positive", c.Engine.ArenaSize)
	}
	if c.Workload.Keys <= 0 || c.Workload.Operations <= 0 || c.Workload.Concurrency <= 0 {
		return errors.New("config: workload.keys, operations, and concurrency must all be positive")
	}
	if c.Workload.ReadPercent < 0 || c.Workload.ReadPercent > 100 {
		return errors.Newf("config: workload.readPercent %d must be in [0,100]", c.Workload.ReadPercent)
	}
	return nil
}
