// Package fasta contains code for parsing FASTA files.  Briefly, FASTA files
// consist of a number of named sequences that may be interrupted by newlines.
// For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
//
// Lines that appear before the first '>' line are not part of any record and
// are ignored. A record with no sequence lines is skipped.
package fasta

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const (
	maxLineSize = 1024 * 1024 * 300 // 300 MB
)

// Record is one named FASTA sequence.
type Record struct {
	// Name is the first word of the header line, without the '>'.
	Name string
	// Seq is the concatenation of all the sequence lines of the record, with
	// line terminators removed. It is never empty.
	Seq string
}

// Scanner reads FASTA records one at a time. Scanners are not threadsafe.
type Scanner struct {
	b   *bufio.Scanner
	err error

	inRecord bool   // true once the first '>' line has been seen.
	name     string // name of the record being assembled.
	seq      []byte // sequence of the record being assembled.
	done     bool
}

// NewScanner creates a Scanner that reads FASTA data from r.
func NewScanner(r io.Reader) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(nil, maxLineSize)
	return &Scanner{b: b}
}

// Scan reads the next nonempty record into rec. It returns false at the end
// of the input or on error. Once Scan returns false, it never returns true
// again; the caller should then check Err.
func (s *Scanner) Scan(rec *Record) bool {
	if s.done {
		return false
	}
	for s.b.Scan() {
		line := s.b.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			name := seqName(line[1:])
			if s.inRecord && len(s.seq) > 0 { // We need to emit the previous sequence first.
				s.flush(rec)
				s.name = name
				return true
			}
			s.inRecord = true
			s.name = name
			s.seq = s.seq[:0]
			continue
		}
		if s.inRecord {
			s.seq = append(s.seq, line...)
		}
	}
	s.done = true
	if err := s.b.Err(); err != nil {
		s.err = errors.Wrap(err, "couldn't read FASTA data")
		return false
	}
	if s.inRecord && len(s.seq) > 0 {
		s.flush(rec)
		return true
	}
	return false
}

func (s *Scanner) flush(rec *Record) {
	rec.Name = s.name
	rec.Seq = string(s.seq)
	s.seq = s.seq[:0]
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	return s.err
}

func seqName(header []byte) string {
	if i := bytes.IndexByte(header, ' '); i >= 0 {
		header = header[:i]
	}
	return string(header)
}

// ReadSequences reads all the FASTA records in r and returns their sequences
// in the order of appearance.
func ReadSequences(r io.Reader) ([]string, error) {
	var (
		sc   = NewScanner(r)
		rec  Record
		seqs []string
	)
	for sc.Scan(&rec) {
		seqs = append(seqs, rec.Seq)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return seqs, nil
}
