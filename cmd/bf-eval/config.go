package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Options collects every construction and workload parameter. The YAML keys
// match the long flag names, so a config file is just the command line in
// file form.
type Options struct {
	Input   string `yaml:"input"`
	Query   string `yaml:"query"`
	Type    string `yaml:"type"`
	Numeric bool   `yaml:"numeric"`

	FPRate        float64 `yaml:"fp-rate"`
	Capacity      uint64  `yaml:"capacity"`
	Cells         uint    `yaml:"cells"`
	Width         uint    `yaml:"width"`
	Partition     bool    `yaml:"partition"`
	Evict         uint    `yaml:"evict"`
	HashFunctions uint    `yaml:"hash-functions"`
	DoubleHashing bool    `yaml:"double-hashing"`
	Seed          uint64  `yaml:"seed"`
	Hash          string  `yaml:"hash"`

	Cells2         uint   `yaml:"cells-2nd"`
	Width2         uint   `yaml:"width-2nd"`
	HashFunctions2 uint   `yaml:"hash-functions-2nd"`
	DoubleHashing2 bool   `yaml:"double-hashing-2nd"`
	Seed2          uint64 `yaml:"seed-2nd"`
}

func defaultOptions() *Options {
	return &Options{Width: 1, Width2: 1, Hash: "xxhash"}
}

// mergeFile overlays values from a YAML file onto the options, keeping any
// value the user set explicitly on the command line. Flags always win over
// the file; the file wins over defaults.
func (o *Options) mergeFile(path string, flags *pflag.FlagSet) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read config: %w", err)
	}
	file := *defaultOptions()
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("cannot parse config: %w", err)
	}

	keep := func(name string) bool { return flags.Changed(name) }

	if !keep("input") {
		o.Input = file.Input
	}
	if !keep("query") {
		o.Query = file.Query
	}
	if !keep("type") {
		o.Type = file.Type
	}
	if !keep("numeric") {
		o.Numeric = file.Numeric
	}
	if !keep("fp-rate") {
		o.FPRate = file.FPRate
	}
	if !keep("capacity") {
		o.Capacity = file.Capacity
	}
	if !keep("cells") {
		o.Cells = file.Cells
	}
	if !keep("width") {
		o.Width = file.Width
	}
	if !keep("partition") {
		o.Partition = file.Partition
	}
	if !keep("evict") {
		o.Evict = file.Evict
	}
	if !keep("hash-functions") {
		o.HashFunctions = file.HashFunctions
	}
	if !keep("double-hashing") {
		o.DoubleHashing = file.DoubleHashing
	}
	if !keep("seed") {
		o.Seed = file.Seed
	}
	if !keep("hash") {
		o.Hash = file.Hash
	}
	if !keep("cells-2nd") {
		o.Cells2 = file.Cells2
	}
	if !keep("width-2nd") {
		o.Width2 = file.Width2
	}
	if !keep("hash-functions-2nd") {
		o.HashFunctions2 = file.HashFunctions2
	}
	if !keep("double-hashing-2nd") {
		o.DoubleHashing2 = file.DoubleHashing2
	}
	if !keep("seed-2nd") {
		o.Seed2 = file.Seed2
	}
	return nil
}
