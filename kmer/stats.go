package kmer

// Stats represents high-level statistics of one Count run.
type Stats struct {
	// Sequences is the # of sequences processed.
	Sequences int
	// Bases is the total length of the sequences processed.
	Bases int64
	// Windows is the # of kmer occurrences counted. It equals Counts.Total().
	Windows int64
	// Short is the # of sequences shorter than the kmer length. They
	// contribute no kmers.
	Short int
	// Distinct is the # of distinct kmers in the final counts. It is set only
	// on the Stats returned by Count.
	Distinct int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Sequences += o.Sequences
	s.Bases += o.Bases
	s.Windows += o.Windows
	s.Short += o.Short
	s.Distinct += o.Distinct
	return s
}
