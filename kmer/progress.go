package kmer

import (
	"sync/atomic"

	"github.com/grailbio/base/log"
)

// progress logs a line every time another tenth of the sequences has been
// counted. Thread safe.
type progress struct {
	total    int64
	interval int64
	n        int64 // # of sequences completed so far; accessed atomically.
}

func newProgress(total int) *progress {
	interval := (int64(total) + 9) / 10
	if interval < 1 {
		interval = 1
	}
	return &progress{total: int64(total), interval: interval}
}

// milestone reports whether completing the nth sequence should be logged.
func (p *progress) milestone(n int64) bool {
	return n%p.interval == 0
}

// done marks one more sequence as completed.
func (p *progress) done() {
	n := atomic.AddInt64(&p.n, 1)
	if p.milestone(n) {
		log.Printf("kmer: processed %d/%d sequences", n, p.total)
	}
}
