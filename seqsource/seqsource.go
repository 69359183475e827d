// Package seqsource loads the sequences of a FASTA or FASTQ file into memory.
// The file format is either given explicitly or guessed from the pathname and
// the first bytes of the file.
package seqsource

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/kmercount/encoding/fasta"
	"github.com/grailbio/kmercount/encoding/fastq"
)

// Format is the format of a sequence file.
type Format int

const (
	// Unknown is the zero value. Passing it to Read means "guess the format".
	Unknown Format = iota
	// FASTA is a file of '>'-prefixed records.
	FASTA
	// FASTQ is a file of '@'-prefixed read records.
	FASTQ
)

// sniffSize is the number of leading bytes inspected by GuessFormat.
const sniffSize = 4096

var extFormats = map[string]Format{
	".fa":    FASTA,
	".fasta": FASTA,
	".fna":   FASTA,
	".ffn":   FASTA,
	".faa":   FASTA,
	".frn":   FASTA,
	".fq":    FASTQ,
	".fastq": FASTQ,
}

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name to a Format. "auto" and "" yield
// Unknown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return Unknown, nil
	case "fasta", "fa":
		return FASTA, nil
	case "fastq", "fq":
		return FASTQ, nil
	default:
		return Unknown, errors.E(errors.Invalid, "unknown sequence format", name)
	}
}

// GuessFormat returns the file format from the pathname and/or the leading
// bytes of the file. It looks at the file extension first, then at the first
// nonblank byte of head ('>' or '@'), and finally at the last character of
// the path ('a' or 'q'). Returns Unknown if none of them matches.
func GuessFormat(path string, head []byte) Format {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	if head = bytes.TrimLeft(head, " \t\r\n"); len(head) > 0 {
		switch head[0] {
		case '>':
			return FASTA
		case '@':
			return FASTQ
		}
	}
	switch {
	case strings.HasSuffix(path, "a"):
		return FASTA
	case strings.HasSuffix(path, "q"):
		return FASTQ
	}
	return Unknown
}

// Read reads all the sequences in the given file. If format is Unknown, it is
// guessed using GuessFormat. Read returns the sequences in file order together
// with the format actually used. An empty file yields no sequences and no
// error.
func Read(ctx context.Context, path string, format Format) (seqs []string, _ Format, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, format, errors.E(err, "open", path)
	}
	defer file.CloseAndReport(ctx, in, &err)

	r := bufio.NewReaderSize(in.Reader(ctx), 1<<20)
	if format == Unknown {
		// Peek returns fewer bytes and an error for short files; the bytes are
		// still usable for sniffing.
		head, _ := r.Peek(sniffSize)
		format = GuessFormat(path, head)
	}
	switch format {
	case FASTA:
		seqs, err = fasta.ReadSequences(r)
	case FASTQ:
		seqs, err = fastq.ReadSequences(r)
	default:
		return nil, format, errors.E(errors.NotSupported,
			"cannot determine the sequence format (expect FASTA or FASTQ)", path)
	}
	if err != nil {
		return nil, format, errors.E(err, "read", path)
	}
	return seqs, format, nil
}
