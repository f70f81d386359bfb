// bf-eval runs a Bloom filter variant against a ground-truth workload and
// reports per-query classification.
//
// The tool reads an input file (one item per line) into the chosen filter,
// then replays a query file of `<ground_truth_count> <item>` lines against
// it, printing one row per query with cumulative true/false positive and
// negative tallies. Piping a corpus through `sort | uniq -c` produces a
// query file directly.
//
// Usage Examples
// ==============
//
// Counting filter, 8k cells of 4 bits, 3 hash functions:
//
//	bf-eval -t counting -m 8192 -w 4 -k 3 -i corpus.txt -q queries.txt
//
// Basic filter sized from a false-positive budget, double hashing:
//
//	bf-eval -t basic -f 0.01 -c 100000 -d -i corpus.txt -q queries.txt
//
// Spectral filter with recurring minima and a dedicated secondary filter:
//
//	bf-eval -t spectral-rm -m 8192 -w 4 -k 3 -M 1024 -W 2 -K 3 \
//	        -i corpus.txt -q queries.txt
//
// Parameters may also come from a YAML file via --config; flags given on the
// command line take precedence over file values.
//
// Output
// ======
//
// A header row `TN TP FP FN G C E` followed by one row per query: the four
// cumulative tallies, the ground truth, the filter's estimate, and the item.
// A query counts as a true positive when the estimate equals the ground
// truth exactly, and as a false positive when it overshoots.
//
// Exit Codes
// ==========
//
// 0: the workload ran to completion.
// 1: construction, parse, or I/O failure (diagnostic on stderr).
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	opts := defaultOptions()
	var cfgPath string
	var logLevel string

	root := &cobra.Command{
		Use:           "bf-eval",
		Short:         "evaluate a Bloom filter variant against a ground-truth workload",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(logLevel)
			if cfgPath != "" {
				if err := opts.mergeFile(cfgPath, cmd.Flags()); err != nil {
					return err
				}
			}
			log.Debug().
				Str("type", opts.Type).
				Uint("cells", opts.Cells).
				Uint("width", opts.Width).
				Uint("k", opts.HashFunctions).
				Bool("double_hashing", opts.DoubleHashing).
				Bool("partition", opts.Partition).
				Msg("building filter")
			return run(cmd.OutOrStdout(), opts, log)
		},
	}

	fs := root.Flags()
	fs.StringVarP(&opts.Input, "input", "i", "", "input file")
	fs.StringVarP(&opts.Query, "query", "q", "", "query file")
	fs.StringVarP(&opts.Type, "type", "t",
		"", "basic|counting|spectral-mi|spectral-rm|bitwise|a2|stable")
	fs.BoolVarP(&opts.Numeric, "numeric", "n", false, "treat items as numbers")
	fs.Float64VarP(&opts.FPRate, "fp-rate", "f", 0, "desired false-positive rate")
	fs.Uint64VarP(&opts.Capacity, "capacity", "c", 0, "max number of expected elements")
	fs.UintVarP(&opts.Cells, "cells", "m", 0, "number of cells")
	fs.UintVarP(&opts.Width, "width", "w", 1, "bits per cell")
	fs.BoolVarP(&opts.Partition, "partition", "p", false, "enable partitioning")
	fs.UintVarP(&opts.Evict, "evict", "e", 0, "number of cells to evict (stable)")
	fs.UintVarP(&opts.HashFunctions, "hash-functions", "k", 0, "number of hash functions")
	fs.BoolVarP(&opts.DoubleHashing, "double-hashing", "d", false, "use double hashing")
	fs.Uint64VarP(&opts.Seed, "seed", "s", 0, "seed for the hash functions")
	fs.StringVar(&opts.Hash, "hash", "xxhash", "hash family: xxhash|murmur3|siphash")

	fs.UintVarP(&opts.Cells2, "cells-2nd", "M", 0, "number of cells (2nd filter)")
	fs.UintVarP(&opts.Width2, "width-2nd", "W", 1, "bits per cell (2nd filter)")
	fs.UintVarP(&opts.HashFunctions2, "hash-functions-2nd", "K", 0, "number of hash functions (2nd filter)")
	fs.BoolVarP(&opts.DoubleHashing2, "double-hashing-2nd", "D", false, "use double hashing (2nd filter)")
	fs.Uint64VarP(&opts.Seed2, "seed-2nd", "S", 0, "seed for the 2nd filter")

	fs.StringVar(&cfgPath, "config", "", "YAML file with the same parameters")
	fs.StringVar(&logLevel, "log-level", "warn", "log level: debug|info|warn|error")

	if err := root.Execute(); err != nil {
		logger := newLogger(logLevel)
		logger.Error().Err(err).Msg("bf-eval failed")
		os.Exit(1)
	}
}

// newLogger builds a console logger on stderr; stdout is reserved for the
// per-query rows.
func newLogger(level string) zerolog.Logger {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		l = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(l).With().Timestamp().Logger()
}
