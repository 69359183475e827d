package kmertsv_test

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/kmercount/encoding/kmertsv"
	"github.com/grailbio/kmercount/kmer"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/testutil/h"
)

var counts = kmer.Counts{"TT": 3, "AC": 1, "GT": 1, "CG": 1}

func TestWriteSorted(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, kmertsv.Write(&buf, counts, true))
	expect.EQ(t, buf.String(), "AC\t1\nCG\t1\nGT\t1\nTT\t3\n")
}

func TestWriteUnsorted(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, kmertsv.Write(&buf, counts, false))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	expect.That(t, lines, h.UnorderedElementsAre("AC\t1", "CG\t1", "GT\t1", "TT\t3"))
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, kmertsv.Write(&buf, kmer.Counts{}, false))
	expect.EQ(t, buf.Len(), 0)
}

func TestRead(t *testing.T) {
	c, err := kmertsv.Read(strings.NewReader("AC\t1\nTT\t3\nAC\t2\n"))
	assert.NoError(t, err)
	expect.EQ(t, c, kmer.Counts{"AC": 3, "TT": 3})

	_, err = kmertsv.Read(strings.NewReader("AC\t-1\n"))
	expect.NotNil(t, err)
	_, err = kmertsv.Read(strings.NewReader("AC\tx\n"))
	expect.NotNil(t, err)
	_, err = kmertsv.Read(strings.NewReader("AC\t4294967296\n"))
	expect.NotNil(t, err)
	_, err = kmertsv.Read(strings.NewReader("AC 1\n"))
	expect.NotNil(t, err)
}

func TestRoundTripRawBytes(t *testing.T) {
	tests := []kmer.Counts{
		{"\"A": 1, "A\"": 2},
		{"\"\"": 7, "A\"C": 1},
		{"A\tC": 3, "\tT": 1, "G\t": 2},
		{"A\rC": 1},
	}
	for _, c := range tests {
		var buf bytes.Buffer
		assert.NoError(t, kmertsv.Write(&buf, c, true))
		got, err := kmertsv.Read(&buf)
		assert.NoError(t, err)
		expect.EQ(t, got, c)
	}
}

func TestWriteNewline(t *testing.T) {
	var buf bytes.Buffer
	expect.NotNil(t, kmertsv.Write(&buf, kmer.Counts{"A\nC": 1}, false))
}

func TestFileRoundTrip(t *testing.T) {
	ctx := vcontext.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := filepath.Join(dir, "kmer_counts.tsv")
	// The second write must fully replace the first one.
	assert.NoError(t, kmertsv.WriteFile(ctx, path, kmer.Counts{"GGGG": 10, "CCCC": 2}, false))
	assert.NoError(t, kmertsv.WriteFile(ctx, path, counts, false))
	got, err := kmertsv.ReadFile(ctx, path)
	assert.NoError(t, err)
	expect.True(t, got.Equal(counts))
	expect.EQ(t, got.Fingerprint(), counts.Fingerprint())
}

func TestWriteHistogram(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, kmertsv.WriteHistogram(&buf, counts.Histogram()))
	expect.EQ(t, buf.String(), "1\t3\n3\t1\n")

	ctx := vcontext.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "hist.tsv")
	assert.NoError(t, kmertsv.WriteHistogramFile(ctx, path, map[uint32]int{2: 5}))
	data, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	expect.EQ(t, string(data), "2\t5\n")
}
