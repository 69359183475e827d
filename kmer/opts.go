package kmer

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Opts configures one counting run. It is read-only once Count starts.
type Opts struct {
	// K is the kmer length.
	K int
	// Parallelism is the max number of sequences counted concurrently.
	Parallelism int
}

// Validate checks that every field of o is in range.
func (o Opts) Validate() error {
	if o.K < 1 {
		return errors.E(errors.Invalid, fmt.Sprintf("kmer length must be positive, but got %d", o.K))
	}
	if o.Parallelism < 1 {
		return errors.E(errors.Invalid, fmt.Sprintf("parallelism must be positive, but got %d", o.Parallelism))
	}
	return nil
}
