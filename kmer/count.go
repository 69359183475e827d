package kmer

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// countUnit counts one sequence. It is a variable so that tests can inject
// faults.
var countUnit = func(seq string, k int) (Counts, Stats) {
	c := Counts{}
	n := countInto(c, seq, k)
	s := Stats{Sequences: 1, Bases: int64(len(seq)), Windows: int64(n)}
	if len(seq) < k {
		s.Short = 1
	}
	return c, s
}

// accumulator is the run-wide result that all the workers fold into.
type accumulator struct {
	mu     sync.Mutex
	counts Counts
	stats  Stats
}

// fold merges one sequence's counts into the accumulator. The whole local map
// is merged in a single critical section.
func (a *accumulator) fold(c Counts, s Stats) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts.Merge(c)
	a.stats = a.stats.Merge(s)
}

// Count computes the kmer counts over all the sequences. Up to
// opts.Parallelism sequences are counted concurrently; each one is counted
// into a private map which is then merged into the result under a lock. The
// result does not depend on the parallelism nor on the scheduling order.
//
// Count returns only after every sequence has been merged. If counting a
// sequence panics, or ctx is canceled, Count returns an error and no counts.
// Cancellation is checked between sequences.
func Count(ctx context.Context, seqs []string, opts Opts) (Counts, Stats, error) {
	if err := opts.Validate(); err != nil {
		return nil, Stats{}, err
	}
	var (
		acc  = accumulator{counts: Counts{}}
		prog = newProgress(len(seqs))
	)
	err := traverse.Limit(opts.Parallelism).Each(len(seqs), func(i int) (err error) {
		if err = ctx.Err(); err != nil {
			return err
		}
		defer func() {
			if r := recover(); r != nil {
				log.Error.Printf("kmer: sequence %d: panic: %v\n%s", i, r, debug.Stack())
				err = errors.E(errors.Fatal, fmt.Sprintf("kmer: sequence %d (length %d): %v", i, len(seqs[i]), r))
			}
		}()
		c, s := countUnit(seqs[i], opts.K)
		acc.fold(c, s)
		prog.done()
		return nil
	})
	if err != nil {
		return nil, Stats{}, err
	}
	acc.stats.Distinct = len(acc.counts)
	return acc.counts, acc.stats, nil
}
