// Package kmertsv reads and writes kmer counts as TSV. Each line is
// "<kmer>\t<count>". There is no header row.
//
// Kmers are written as raw bytes with no quoting. A kmer may therefore
// contain '"' or '\t' bytes, and the count is always the field after the
// last tab on the line. A kmer may not contain a newline.
package kmertsv

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/kmercount/kmer"
)

// Write writes one line per kmer in c. If sorted is false, the lines are
// written in no particular order. Otherwise, they are sorted by kmer.
func Write(w io.Writer, c kmer.Counts, sorted bool) error {
	tw := tsv.NewWriter(w)
	writeRow := func(k string, n uint32) error {
		if strings.IndexByte(k, '\n') >= 0 {
			return errors.E(errors.Invalid, fmt.Sprintf("kmer %q contains a newline", k))
		}
		tw.WriteString(k)
		tw.WriteUint32(n)
		return tw.EndLine()
	}
	if sorted {
		for _, k := range c.Keys() {
			if err := writeRow(k, c[k]); err != nil {
				return err
			}
		}
	} else {
		for k, n := range c {
			if err := writeRow(k, n); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

// WriteFile writes c to the given path using Write. Existing contents of the
// file, if any, are destroyed.
func WriteFile(ctx context.Context, path string, c kmer.Counts, sorted bool) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	if err = Write(out.Writer(ctx), c, sorted); err != nil {
		return errors.E(err, "write", path)
	}
	return nil
}

// WriteHistogram writes the abundance spectrum produced by
// kmer.Counts.Histogram, one "<count>\t<#kmers>" line per count value, in
// ascending order of count.
func WriteHistogram(w io.Writer, hist map[uint32]int) error {
	counts := make([]uint32, 0, len(hist))
	for n := range hist {
		counts = append(counts, n)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })
	tw := tsv.NewWriter(w)
	for _, n := range counts {
		tw.WriteUint32(n)
		tw.WriteInt64(int64(hist[n]))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteHistogramFile writes the histogram to the given path using
// WriteHistogram.
func WriteHistogramFile(ctx context.Context, path string, hist map[uint32]int) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	if err = WriteHistogram(out.Writer(ctx), hist); err != nil {
		return errors.E(err, "write", path)
	}
	return nil
}

const maxLineSize = 64 << 20

// Read parses the output of Write. Counts of a kmer that appears on more than
// one line are added up.
func Read(r io.Reader) (kmer.Counts, error) {
	var (
		sc   = bufio.NewScanner(r)
		c    = kmer.Counts{}
		line int
	)
	sc.Buffer(nil, maxLineSize)
	for sc.Scan() {
		line++
		b := sc.Bytes()
		tab := bytes.LastIndexByte(b, '\t')
		if tab < 0 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("line %d: missing count column", line))
		}
		n, err := strconv.ParseUint(string(b[tab+1:]), 10, 32)
		if err != nil {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("line %d: bad count %q", line, b[tab+1:]), err)
		}
		c[string(b[:tab])] += uint32(n)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadFile reads the kmer counts in the given path using Read.
func ReadFile(ctx context.Context, path string) (c kmer.Counts, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	if c, err = Read(in.Reader(ctx)); err != nil {
		return nil, errors.E(err, "read", path)
	}
	return c, nil
}
