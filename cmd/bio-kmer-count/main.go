package main

/*
bio-kmer-count counts every length-k substring of the sequences in a FASTA or
FASTQ file and writes one "<kmer>\t<count>" line per distinct kmer.

Example:

    bio-kmer-count -out=counts.tsv reads.fq 21 16
*/

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/kmercount/encoding/kmertsv"
	"github.com/grailbio/kmercount/kmer"
	"github.com/grailbio/kmercount/seqsource"
)

var (
	outPath       = flag.String("out", "kmer_counts.tsv", "Output TSV path. Existing contents are overwritten")
	formatFlag    = flag.String("format", "auto", "Input format; 'fasta', 'fastq', or 'auto' (guess from the pathname and contents)")
	sorted        = flag.Bool("sorted", false, "Write the output rows sorted by kmer")
	histogramPath = flag.String("histogram", "", "If nonempty, also write the kmer abundance histogram (<count>\\t<#kmers>) to this path")
	verify        = flag.Bool("verify", false, "Read the output back and check that it matches the computed counts")
)

// runOpts is the set of flags that control run.
type runOpts struct {
	outPath       string
	format        seqsource.Format
	sorted        bool
	histogramPath string
	verify        bool
}

func bioKmerCountUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] seqpath k workers\n", os.Args[0])
	fmt.Fprintf(os.Stderr, `
  Required Positional Arguments:
    seqpath   FASTA or FASTQ file.
    k         Kmer length, a positive integer.
    workers   Number of sequences counted in parallel, a positive integer.

Other options:
`)
	flag.PrintDefaults()
}

// parseArgs parses the positional arguments.
func parseArgs(args []string) (string, kmer.Opts, error) {
	if len(args) != 3 {
		return "", kmer.Opts{}, errors.E(errors.Invalid,
			fmt.Sprintf("expect three positional arguments (seqpath k workers), but got %d: '%s'", len(args), strings.Join(args, " ")))
	}
	parsePositive := func(name, value string) (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return 0, errors.E(errors.Invalid, fmt.Sprintf("%s must be a positive integer, but got '%s'", name, value))
		}
		return n, nil
	}
	k, err := parsePositive("k", args[1])
	if err != nil {
		return "", kmer.Opts{}, err
	}
	workers, err := parsePositive("workers", args[2])
	if err != nil {
		return "", kmer.Opts{}, err
	}
	if args[0] == "" {
		return "", kmer.Opts{}, errors.E(errors.Invalid, "seqpath must not be empty")
	}
	return args[0], kmer.Opts{K: k, Parallelism: workers}, nil
}

// run reads the sequences in path, counts their kmers and writes the results.
func run(ctx context.Context, path string, opts kmer.Opts, ropts runOpts) error {
	seqs, format, err := seqsource.Read(ctx, path, ropts.format)
	if err != nil {
		return err
	}
	log.Printf("Read %d sequences (%v) from %s", len(seqs), format, path)

	counts, stats, err := kmer.Count(ctx, seqs, opts)
	if err != nil {
		return err
	}
	fingerprint := counts.Fingerprint()
	log.Printf("Stats: %+v", stats)
	log.Printf("Fingerprint: %016x", fingerprint)

	log.Printf("Writing %d kmer counts to %s", len(counts), ropts.outPath)
	if err := kmertsv.WriteFile(ctx, ropts.outPath, counts, ropts.sorted); err != nil {
		return err
	}
	if ropts.histogramPath != "" {
		if err := kmertsv.WriteHistogramFile(ctx, ropts.histogramPath, counts.Histogram()); err != nil {
			return err
		}
		log.Printf("Wrote histogram to %s", ropts.histogramPath)
	}
	if ropts.verify {
		got, err := kmertsv.ReadFile(ctx, ropts.outPath)
		if err != nil {
			return err
		}
		if got.Fingerprint() != fingerprint || !got.Equal(counts) {
			return errors.E(errors.Integrity, "verify", ropts.outPath,
				fmt.Sprintf("found %d kmers with fingerprint %016x, expect %d kmers with fingerprint %016x",
					len(got), got.Fingerprint(), len(counts), fingerprint))
		}
		log.Printf("Verified %s", ropts.outPath)
	}
	return nil
}

func main() {
	start := time.Now()
	flag.Usage = bioKmerCountUsage
	shutdown := grail.Init()
	defer shutdown()

	path, opts, err := parseArgs(flag.Args())
	if err != nil {
		flag.Usage()
		log.Fatalf("%v", err)
	}
	seqFormat, err := seqsource.ParseFormat(*formatFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("Arguments: seqpath=%s k=%d workers=%d format=%s out=%s", path, opts.K, opts.Parallelism, *formatFlag, *outPath)

	var (
		memStats memStats
		done     = make(chan struct{})
	)
	go memStats.poll(500*time.Millisecond, done)

	ctx := vcontext.Background()
	err = run(ctx, path, opts, runOpts{
		outPath:       *outPath,
		format:        seqFormat,
		sorted:        *sorted,
		histogramPath: *histogramPath,
		verify:        *verify,
	})
	close(done)
	if err != nil {
		log.Fatalf("%v", err)
	}
	memStats.sample()
	log.Printf("MemStats: %s", memStats.String())
	log.Printf("DONE after %v", time.Since(start))
}
