package kmer

import (
	"fmt"

	"github.com/arloliu/kmerio/alphabet"
	"github.com/arloliu/kmerio/errs"
	"github.com/arloliu/kmerio/internal/options"
)

// Config holds engine settings. Use the With* options to change them.
type Config struct {
	k          int
	canonical  bool
	packed     bool
	window     int // 0 when unset
	complement *alphabet.ComplementTable
}

// Option is a functional option for configuring an Engine.
type Option = options.Option[*Config]

// WithCanonical selects canonical mode: every k-mer is reported as the smaller of
// itself and its reverse complement. Canonical mode implies packed mode.
// Default is false.
func WithCanonical(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.canonical = enabled
	})
}

// WithPacked selects packed mode without canonicalisation: k-mers carry their 2-bit
// packed value, and windows touching a non-ACGT byte are skipped.
// Default is false (raw byte views, every window emitted).
func WithPacked(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.packed = enabled
	})
}

// WithWindow sets the minimizer window width w, the number of consecutive k-mers
// per window. w must be positive.
func WithWindow(w int) Option {
	return options.New(func(c *Config) error {
		if w <= 0 {
			return fmt.Errorf("%w: w=%d", errs.ErrInvalidWindowSize, w)
		}
		c.window = w

		return nil
	})
}

// WithComplementTable replaces the complement table used by the byte-wise canonical
// and reverse-complement helpers. The packed path always uses A/T and C/G.
// Default is alphabet.DefaultComplement.
func WithComplementTable(t *alphabet.ComplementTable) Option {
	return options.New(func(c *Config) error {
		if t == nil {
			return fmt.Errorf("nil complement table")
		}
		c.complement = t

		return nil
	})
}
