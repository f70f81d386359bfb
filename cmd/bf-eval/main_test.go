package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bf.lopezb.com/internal/bf/filter"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildFilter_Types(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want any
	}{
		{
			name: "basic explicit",
			opts: Options{Type: "basic", Cells: 64, HashFunctions: 3},
			want: (*filter.Basic)(nil),
		},
		{
			name: "basic parametric",
			opts: Options{Type: "basic", FPRate: 0.01, Capacity: 100},
			want: (*filter.Basic)(nil),
		},
		{
			name: "counting",
			opts: Options{Type: "counting", Cells: 64, Width: 2, HashFunctions: 3},
			want: (*filter.Counting)(nil),
		},
		{
			name: "spectral-mi",
			opts: Options{Type: "spectral-mi", Cells: 64, Width: 2, HashFunctions: 3},
			want: (*filter.SpectralMI)(nil),
		},
		{
			name: "spectral-rm",
			opts: Options{
				Type: "spectral-rm", Cells: 64, Width: 2, HashFunctions: 3,
				Cells2: 16, Width2: 2, HashFunctions2: 2,
			},
			want: (*filter.SpectralRM)(nil),
		},
		{
			name: "bitwise",
			opts: Options{Type: "bitwise", Cells: 64, HashFunctions: 3},
			want: (*filter.Bitwise)(nil),
		},
		{
			name: "a2",
			opts: Options{Type: "a2", Cells: 64, Capacity: 10, HashFunctions: 3},
			want: (*filter.A2)(nil),
		},
		{
			name: "stable",
			opts: Options{Type: "stable", Cells: 64, Width: 2, HashFunctions: 3, Evict: 2},
			want: (*filter.Stable)(nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bf, err := buildFilter(&tt.opts)
			require.NoError(t, err)
			assert.IsType(t, tt.want, bf)
		})
	}
}

func TestBuildFilter_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{name: "missing type", opts: Options{}, want: "missing bloom filter type"},
		{name: "unknown type", opts: Options{Type: "cuckoo"}, want: "invalid bloom filter type"},
		{
			name: "basic without cells",
			opts: Options{Type: "basic", HashFunctions: 3},
			want: "need non-zero cells",
		},
		{
			name: "counting without width",
			opts: Options{Type: "counting", Cells: 64, HashFunctions: 3},
			want: "need non-zero cell width",
		},
		{
			name: "spectral-rm without second filter",
			opts: Options{Type: "spectral-rm", Cells: 64, Width: 2, HashFunctions: 3},
			want: "need non-zero cells for both filters",
		},
		{
			name: "a2 without capacity",
			opts: Options{Type: "a2", Cells: 64, HashFunctions: 3},
			want: "need non-zero capacity",
		},
		{
			name: "bad hash family",
			opts: Options{Type: "basic", Cells: 64, HashFunctions: 3, Hash: "md5"},
			want: "unknown hash family",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildFilter(&tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_Counting(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "foo\nbar\nbaz\n\nfoo\n")
	query := writeFile(t, dir, "query.txt", "2 foo\n1 bar\n0 nope\n3 baz\n")

	opts := &Options{
		Input: input, Query: query,
		Type: "counting", Cells: 4096, Width: 4, HashFunctions: 3,
	}

	var out bytes.Buffer
	require.NoError(t, run(&out, opts, zerolog.Nop()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "TN TP FP FN G C E", lines[0])
	assert.Equal(t, "0 1 0 0 2 2 foo", lines[1])
	assert.Equal(t, "0 2 0 0 1 1 bar", lines[2])
	assert.Equal(t, "1 2 0 0 0 0 nope", lines[3])
	// baz was inserted once but the query claims three: a false negative.
	assert.Equal(t, "1 2 0 1 3 1 baz", lines[4])
}

func TestRun_Numeric(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "4711\n4.2\n")
	query := writeFile(t, dir, "query.txt", "1 4711\n1 4.2\n0 9000\n")

	opts := &Options{
		Input: input, Query: query, Numeric: true,
		Type: "basic", Cells: 4096, HashFunctions: 3,
	}

	var out bytes.Buffer
	require.NoError(t, run(&out, opts, zerolog.Nop()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "0 1 0 0 1 1 4711", lines[1])
	assert.Equal(t, "0 2 0 0 1 1 4.2", lines[2])
	assert.Equal(t, "1 2 0 0 0 0 9000", lines[3])
}

func TestRun_InputErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "foo\n")
	bad := writeFile(t, dir, "bad.txt", "foo bar\n")
	malformed := writeFile(t, dir, "malformed.txt", "not-a-count foo\n")

	base := Options{Type: "basic", Cells: 64, HashFunctions: 3}

	t.Run("whitespace in item", func(t *testing.T) {
		opts := base
		opts.Input, opts.Query = bad, good
		err := run(&bytes.Buffer{}, &opts, zerolog.Nop())
		assert.ErrorContains(t, err, "whitespace in input")
	})

	t.Run("missing input file", func(t *testing.T) {
		opts := base
		opts.Input, opts.Query = filepath.Join(dir, "nope.txt"), good
		err := run(&bytes.Buffer{}, &opts, zerolog.Nop())
		assert.ErrorContains(t, err, "cannot read input")
	})

	t.Run("malformed query line", func(t *testing.T) {
		opts := base
		opts.Input, opts.Query = good, malformed
		err := run(&bytes.Buffer{}, &opts, zerolog.Nop())
		assert.ErrorContains(t, err, "cannot parse ground truth")
	})

	t.Run("missing files", func(t *testing.T) {
		opts := base
		err := run(&bytes.Buffer{}, &opts, zerolog.Nop())
		assert.ErrorContains(t, err, "missing input file")
	})
}

func TestOptions_MergeFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "eval.yaml", strings.Join([]string{
		"type: counting",
		"cells: 128",
		"width: 4",
		"hash-functions: 3",
		"seed: 9",
	}, "\n"))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts := defaultOptions()
	flags.UintVar(&opts.Cells, "cells", 0, "")
	flags.UintVar(&opts.Width, "width", 1, "")
	flags.StringVar(&opts.Type, "type", "", "")
	flags.UintVar(&opts.HashFunctions, "hash-functions", 0, "")
	flags.Uint64Var(&opts.Seed, "seed", 0, "")
	require.NoError(t, flags.Parse([]string{"--cells", "512"}))

	require.NoError(t, opts.mergeFile(cfg, flags))

	// The explicit flag wins; everything else comes from the file.
	assert.EqualValues(t, 512, opts.Cells)
	assert.Equal(t, "counting", opts.Type)
	assert.EqualValues(t, 4, opts.Width)
	assert.EqualValues(t, 3, opts.HashFunctions)
	assert.EqualValues(t, 9, opts.Seed)
}

func TestOptions_MergeFile_Errors(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts := defaultOptions()

	err := opts.mergeFile("does-not-exist.yaml", flags)
	assert.ErrorContains(t, err, "cannot read config")

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "cells: [not a number\n")
	err = opts.mergeFile(bad, flags)
	assert.ErrorContains(t, err, "cannot parse config")
}
