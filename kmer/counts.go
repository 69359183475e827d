// Package kmer counts the occurrences of every length-k substring ("kmer") of
// a set of sequences.
//
// Kmers are opaque byte strings: they are case-sensitive, symbols other than
// ACGT are counted as is, and only the forward strand is considered.
package kmer

import (
	"sort"

	farm "github.com/dgryski/go-farm"
	gunsafe "github.com/grailbio/base/unsafe"
)

// Counts maps a kmer to the number of times it occurs. A count wraps around
// past math.MaxUint32 occurrences of the same kmer; nothing detects it.
type Counts map[string]uint32

// CountSequence returns the kmer counts of a single sequence: for every offset
// j in [0, len(seq)-k], kmer seq[j:j+k] is counted once. If k exceeds the
// length of the sequence, the result is empty. The result is freshly
// allocated and owned by the caller.
func CountSequence(seq string, k int) Counts {
	c := Counts{}
	countInto(c, seq, k)
	return c
}

// countInto adds the kmers of seq to c and returns the number of kmer windows
// in seq.
func countInto(c Counts, seq string, k int) int {
	if k <= 0 || k > len(seq) {
		return 0
	}
	n := len(seq) - k + 1
	for j := 0; j < n; j++ {
		c[seq[j:j+k]]++
	}
	return n
}

// Merge adds every count in o to c. Thread compatible.
func (c Counts) Merge(o Counts) {
	for kmer, n := range o {
		c[kmer] += n
	}
}

// Total returns the sum of all the counts.
func (c Counts) Total() uint64 {
	var total uint64
	for _, n := range c {
		total += uint64(n)
	}
	return total
}

// Equal checks if c and o contain the same kmers with the same counts.
func (c Counts) Equal(o Counts) bool {
	if len(c) != len(o) {
		return false
	}
	for kmer, n := range c {
		if m, ok := o[kmer]; !ok || m != n {
			return false
		}
	}
	return true
}

// Keys returns the kmers in c, sorted lexicographically.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for kmer := range c {
		keys = append(keys, kmer)
	}
	sort.Strings(keys)
	return keys
}

// Histogram returns the abundance spectrum of c: for each count value, the
// number of distinct kmers having that count.
func (c Counts) Histogram() map[uint32]int {
	h := map[uint32]int{}
	for _, n := range c {
		h[n]++
	}
	return h
}

// Fingerprint returns a 64-bit digest of c. It depends only on the set of
// (kmer, count) pairs, not on the map iteration order, so two runs over the
// same input produce the same fingerprint.
func (c Counts) Fingerprint() uint64 {
	var fp uint64
	for kmer, n := range c {
		fp += farm.Hash64WithSeed(gunsafe.StringToBytes(kmer), uint64(n))
	}
	return fp
}
