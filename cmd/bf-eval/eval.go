package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"bf.lopezb.com/internal/bf/filter"
	"bf.lopezb.com/internal/bf/hash"
)

// buildFilter dispatches on --type and validates the geometry the same way
// for every variant: a zero where a parameter is required is an error, not a
// default.
func buildFilter(o *Options) (filter.Filter, error) {
	family := hash.Family(o.Hash)
	if _, err := hash.NewFunction(family, 0); err != nil {
		return nil, fmt.Errorf("%w: %q", err, o.Hash)
	}

	newHasher := func(k uint, seed uint64, double bool) (hash.Hasher, error) {
		return hash.NewHasher(int(k), seed, double, family)
	}

	switch o.Type {
	case "basic":
		if o.FPRate == 0 || o.Capacity == 0 {
			if o.Cells == 0 {
				return nil, errors.New("need non-zero cells")
			}
			if o.HashFunctions == 0 {
				return nil, errors.New("need non-zero hash functions")
			}
			h, err := newHasher(o.HashFunctions, o.Seed, o.DoubleHashing)
			if err != nil {
				return nil, err
			}
			return filter.NewBasic(h, o.Cells, o.Partition)
		}
		return filter.NewBasicWithEstimates(o.FPRate, uint(o.Capacity), o.Seed,
			o.DoubleHashing, o.Partition)

	case "counting", "spectral-mi", "stable":
		if o.Cells == 0 {
			return nil, errors.New("need non-zero cells")
		}
		if o.Width == 0 {
			return nil, errors.New("need non-zero cell width")
		}
		if o.HashFunctions == 0 {
			return nil, errors.New("need non-zero hash functions")
		}
		h, err := newHasher(o.HashFunctions, o.Seed, o.DoubleHashing)
		if err != nil {
			return nil, err
		}
		switch o.Type {
		case "counting":
			return filter.NewCounting(h, o.Cells, o.Width, o.Partition)
		case "spectral-mi":
			return filter.NewSpectralMI(h, o.Cells, o.Width, o.Partition)
		default:
			return filter.NewStable(h, o.Cells, o.Width, o.Evict, o.Seed, o.Partition)
		}

	case "spectral-rm":
		if o.Cells == 0 || o.Cells2 == 0 {
			return nil, errors.New("need non-zero cells for both filters")
		}
		if o.Width == 0 || o.Width2 == 0 {
			return nil, errors.New("need non-zero cell width for both filters")
		}
		if o.HashFunctions == 0 || o.HashFunctions2 == 0 {
			return nil, errors.New("need non-zero hash functions for both filters")
		}
		h1, err := newHasher(o.HashFunctions, o.Seed, o.DoubleHashing)
		if err != nil {
			return nil, err
		}
		h2, err := newHasher(o.HashFunctions2, o.Seed2, o.DoubleHashing2)
		if err != nil {
			return nil, err
		}
		return filter.NewSpectralRM(h1, o.Cells, o.Width,
			h2, o.Cells2, o.Width2, o.Partition)

	case "bitwise":
		if o.Cells == 0 {
			return nil, errors.New("need non-zero cells")
		}
		if o.HashFunctions == 0 {
			return nil, errors.New("need non-zero hash functions")
		}
		return filter.NewBitwise(int(o.HashFunctions), o.Cells, o.Seed, family)

	case "a2":
		if o.Cells == 0 {
			return nil, errors.New("need non-zero cells")
		}
		if o.Capacity == 0 {
			return nil, errors.New("need non-zero capacity")
		}
		if o.HashFunctions == 0 {
			return nil, errors.New("need non-zero hash functions")
		}
		return filter.NewA2(int(o.HashFunctions), o.Cells, o.Capacity,
			o.Seed, o.Seed2, family)

	case "":
		return nil, errors.New("missing bloom filter type")
	default:
		return nil, fmt.Errorf("invalid bloom filter type %q", o.Type)
	}
}

// wrapItem serializes one input token. In numeric mode the token is parsed
// as a float64 and hashed through its byte image, so "4711" and "4711.0"
// are the same item; otherwise the token's bytes are the item.
func wrapItem(token string, numeric bool) ([]byte, error) {
	if !numeric {
		return []byte(token), nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as number: %w", token, err)
	}
	return hash.Wrap(v)
}

// run builds the filter, streams the input file into it, and classifies
// every query row against its ground truth.
func run(out io.Writer, o *Options, log zerolog.Logger) error {
	if o.Input == "" {
		return errors.New("missing input file")
	}
	if o.Query == "" {
		return errors.New("missing query file")
	}

	bf, err := buildFilter(o)
	if err != nil {
		return err
	}

	in, err := os.Open(o.Input)
	if err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	defer func() { _ = in.Close() }()

	items := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if strings.ContainsAny(line, " \t") {
			return fmt.Errorf("whitespace in input item %q", line)
		}
		data, err := wrapItem(line, o.Numeric)
		if err != nil {
			return err
		}
		bf.Add(data)
		items++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	log.Info().Int("items", items).Str("file", o.Input).Msg("input loaded")

	query, err := os.Open(o.Query)
	if err != nil {
		return fmt.Errorf("cannot read query: %w", err)
	}
	defer func() { _ = query.Close() }()

	w := bufio.NewWriter(out)
	defer func() { _ = w.Flush() }()
	fmt.Fprintln(w, "TN TP FP FN G C E")

	var tn, tp, fp, fn uint64
	scanner = bufio.NewScanner(query)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("malformed query line %q", line)
		}
		truth, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse ground truth in %q: %w", line, err)
		}
		data, err := wrapItem(fields[1], o.Numeric)
		if err != nil {
			return err
		}

		count := bf.Lookup(data)
		switch {
		case count == 0 && truth == 0:
			tn++
		case count == truth:
			tp++
		case count > truth:
			fp++
		default:
			fn++
		}
		fmt.Fprintf(w, "%d %d %d %d %d %d %s\n", tn, tp, fp, fn, truth, count, fields[1])
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading query: %w", err)
	}
	return nil
}
