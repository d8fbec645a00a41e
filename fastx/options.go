package fastx

import (
	"fmt"

	"github.com/arloliu/kmerio/internal/options"
)

// Config holds parser settings. Use the With* options to change them.
type Config struct {
	bufferSize  int
	maxLineSize int
	uppercase   bool
}

func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring a Parser.
type Option = options.Option[*Config]

// WithBufferSize sets the initial RecordBuffer capacity in bytes.
// The buffer still grows when a single line does not fit.
// Default is 64KiB drawn from a shared pool.
func WithBufferSize(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("invalid buffer size: %d", n)
		}
		c.bufferSize = n

		return nil
	})
}

// WithMaxLineSize bounds how far the RecordBuffer may grow. A line longer than n
// bytes, not counting its terminator, fails with errs.ErrLineTooLong. Default is 0
// (unbounded).
func WithMaxLineSize(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("invalid max line size: %d", n)
		}
		c.maxLineSize = n

		return nil
	})
}

// WithUppercase folds sequence bytes to upper case while they are accumulated.
// Headers and qualities are left untouched.
func WithUppercase() Option {
	return options.NoError(func(c *Config) {
		c.uppercase = true
	})
}
