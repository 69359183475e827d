package seqsource_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/kmercount/seqsource"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func writeFile(t *testing.T, dir, name, data string) string {
	path := filepath.Join(dir, name)
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0600))
	return path
}

func TestParseFormat(t *testing.T) {
	for _, test := range []struct {
		name string
		want seqsource.Format
	}{
		{"", seqsource.Unknown},
		{"auto", seqsource.Unknown},
		{"fasta", seqsource.FASTA},
		{"FA", seqsource.FASTA},
		{"fastq", seqsource.FASTQ},
		{"fq", seqsource.FASTQ},
	} {
		got, err := seqsource.ParseFormat(test.name)
		expect.NoError(t, err)
		expect.EQ(t, got, test.want, "name: %s", test.name)
	}
	_, err := seqsource.ParseFormat("bam")
	expect.True(t, errors.Is(errors.Invalid, err))
}

func TestGuessFormat(t *testing.T) {
	for _, test := range []struct {
		path string
		head string
		want seqsource.Format
	}{
		{"x.fa", "", seqsource.FASTA},
		{"x.FASTA", "", seqsource.FASTA},
		{"x.fna", "@r1\n", seqsource.FASTA}, // The extension wins.
		{"x.fq", "", seqsource.FASTQ},
		{"x.fastq", "", seqsource.FASTQ},
		{"reads.txt", "\n>r1\nACGT\n", seqsource.FASTA},
		{"reads.txt", "@r1\nACGT\n+\nIIII\n", seqsource.FASTQ},
		{"reads.seqa", "", seqsource.FASTA},
		{"reads.seqq", "", seqsource.FASTQ},
		{"reads.txt", "ACGT", seqsource.Unknown},
		{"reads.bam", "", seqsource.Unknown},
	} {
		expect.EQ(t, seqsource.GuessFormat(test.path, []byte(test.head)), test.want,
			"path: %s, head: %q", test.path, test.head)
	}
}

func TestRead(t *testing.T) {
	ctx := vcontext.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	fa := writeFile(t, dir, "in.fa", ">r1\nACGT\n>r2\nTTTT\n")
	seqs, format, err := seqsource.Read(ctx, fa, seqsource.Unknown)
	assert.NoError(t, err)
	expect.EQ(t, format, seqsource.FASTA)
	expect.EQ(t, seqs, []string{"ACGT", "TTTT"})

	fq := writeFile(t, dir, "in.fq", "@r1\nACGT\n+\nIIII\n")
	seqs, format, err = seqsource.Read(ctx, fq, seqsource.Unknown)
	assert.NoError(t, err)
	expect.EQ(t, format, seqsource.FASTQ)
	expect.EQ(t, seqs, []string{"ACGT"})

	// An explicit format overrides the pathname.
	sniffed := writeFile(t, dir, "reads.txt", "@r1\nAC\n+\nII\n")
	seqs, format, err = seqsource.Read(ctx, sniffed, seqsource.FASTQ)
	assert.NoError(t, err)
	expect.EQ(t, format, seqsource.FASTQ)
	expect.EQ(t, seqs, []string{"AC"})

	empty := writeFile(t, dir, "empty.fa", "")
	seqs, _, err = seqsource.Read(ctx, empty, seqsource.Unknown)
	assert.NoError(t, err)
	expect.EQ(t, len(seqs), 0)
}

func TestReadErrors(t *testing.T) {
	ctx := vcontext.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	_, _, err := seqsource.Read(ctx, filepath.Join(dir, "missing.fa"), seqsource.Unknown)
	expect.NotNil(t, err)

	unknown := writeFile(t, dir, "reads.txt", "ACGT\n")
	_, _, err = seqsource.Read(ctx, unknown, seqsource.Unknown)
	expect.True(t, errors.Is(errors.NotSupported, err))

	bad := writeFile(t, dir, "bad.fq", "@r1\nACGT\n")
	_, _, err = seqsource.Read(ctx, bad, seqsource.Unknown)
	expect.NotNil(t, err)
}
