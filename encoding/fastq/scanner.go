package fastq

import (
	"bufio"
	"errors"
	"io"
)

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTQ file is encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
)

const maxLineSize = 64 << 20

// A Read is a FASTQ read, comprising an ID, sequence, line 3
// ("unknown"), and a quality string.
type Read struct {
	ID, Seq, Unk, Qual string
}

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading FASTQ read
// data. The Scan method returns the next read, returning a boolean
// indicating whether the read succeeded. Scanners are not
// threadsafe.
//
// A record is an ID line starting with "@", one or more sequence lines, a
// separator line starting with "+", and quality lines. Sequence lines are
// concatenated. Quality lines are consumed until they are at least as long as
// the sequence, so a quality line that happens to start with "@" is never
// mistaken for the next record. A record with an empty sequence has its
// quality lines, if any, consumed up to the next line starting with "@".
// Blank lines between records are skipped.
// Scanner performs no further validation (e.g., seq/qual being of equal
// length, containing only data in range, etc.)
type Scanner struct {
	b      *bufio.Scanner
	err    error
	fields Field

	seq, qual []byte
	// held is set when the current line of b is the ID line of the next
	// record and has not been consumed yet.
	held bool
}

// Field enumerates FASTQ fields. It is used to specify fields to read in
// NewScanner.
type Field uint

const (
	// ID causes the Read.ID field to be filled
	ID Field = 1 << iota
	// Seq causes the Read.Seq field to be filled
	Seq
	// Unk causes the Read.Unk field to be filled
	Unk
	// Qual causes the Read.Qual field to be filled
	Qual
	// All equals ID|Seq|Unk|Qual.
	All = ID | Seq | Unk | Qual
)

// NewScanner constructs a new Scanner that reads raw FASTQ data from the
// provided reader. Fields is a bitset of the fields to read. A typical value
// would be All or ID|Seq|Qual.
func NewScanner(r io.Reader, fields Field) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(nil, maxLineSize)
	return &Scanner{b: b, fields: fields}
}

// Scan the next read into the provided read. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it
// never returns true again. Upon completion, the user should check
// the Err method to determine whether scanning stopped because of an
// error or because the end of the stream was reached.
func (f *Scanner) Scan(read *Read) bool {
	if f.err != nil {
		return false
	}
	var id []byte
	if f.held {
		f.held = false
		id = f.b.Bytes()
	}
	for len(id) == 0 {
		if !f.b.Scan() {
			if f.err = f.b.Err(); f.err == nil {
				f.err = errEOF
			}
			return false
		}
		id = f.b.Bytes()
	}
	if id[0] != '@' {
		f.err = ErrInvalid
		return false
	}
	if f.fields&ID != 0 {
		read.ID = string(id)
	}

	f.seq = f.seq[:0]
	for {
		if !f.scan() {
			return false
		}
		line := f.b.Bytes()
		if len(line) > 0 && line[0] == '+' {
			break
		}
		f.seq = append(f.seq, line...)
	}
	if f.fields&Unk != 0 {
		read.Unk = f.b.Text()
	}
	if f.fields&Seq != 0 {
		read.Seq = string(f.seq)
	}

	f.qual = f.qual[:0]
	if len(f.seq) == 0 {
		f.skipQual(read)
		return true
	}
	for len(f.qual) < len(f.seq) {
		if !f.scan() {
			return false
		}
		f.qual = append(f.qual, f.b.Bytes()...)
	}
	if f.fields&Qual != 0 {
		read.Qual = string(f.qual)
	}
	return true
}

// skipQual consumes the quality lines of a record with an empty sequence.
// They run up to the next line starting with '@', which is left for the
// next call to Scan.
func (f *Scanner) skipQual(read *Read) {
	for f.b.Scan() {
		line := f.b.Bytes()
		if len(line) > 0 && line[0] == '@' {
			f.held = true
			break
		}
		f.qual = append(f.qual, line...)
	}
	if !f.held {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errEOF
		}
	}
	if f.fields&Qual != 0 {
		read.Qual = string(f.qual)
	}
}

func (f *Scanner) scan() bool {
	ok := f.b.Scan()
	if !ok {
		if f.err = f.b.Err(); f.err == nil {
			f.err = ErrShort
		}
	}
	return ok
}

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == errEOF {
		return nil
	}
	return f.err
}

// ReadSequences reads all the FASTQ records in r and returns their sequences
// in the order of appearance. Records with an empty sequence are skipped.
func ReadSequences(r io.Reader) ([]string, error) {
	var (
		sc   = NewScanner(r, Seq)
		read Read
		seqs []string
	)
	for sc.Scan(&read) {
		if read.Seq != "" {
			seqs = append(seqs, read.Seq)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return seqs, nil
}
