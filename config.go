package hab

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// DefaultCapacity is the initial capacity used when WithCapacity is not given.
	DefaultCapacity = 4
	// DefaultLoadFactor is the load factor used when WithLoadFactor is not given.
	DefaultLoadFactor = 0.75
)

var (
	// ErrInvalidArgument is returned by the constructors when a capacity,
	// load factor or hasher is out of range.
	ErrInvalidArgument = errors.New("hab: invalid argument")
	// ErrExhausted is returned by Iterator.Next once every pair was visited.
	ErrExhausted = errors.New("hab: iterator exhausted")
)

// Config defines configurable Table options.
type Config struct {
	capacity   int
	loadFactor float64
	logger     *zap.Logger
}

// WithCapacity configures the initial capacity of a new Table. The value is
// rounded up to the next power of two (at least 1) and becomes the floor the
// table never drops below.
func WithCapacity(capacity int) func(*Config) {
	return func(c *Config) {
		c.capacity = capacity
	}
}

// WithLoadFactor configures the fraction of capacity that, once reached,
// makes the next insertion grow the backing array. Must be in (0, 1].
func WithLoadFactor(loadFactor float64) func(*Config) {
	return func(c *Config) {
		c.loadFactor = loadFactor
	}
}

// WithLogger attaches a logger that receives growth and clear events at
// debug level. A nil logger is ignored.
func WithLogger(logger *zap.Logger) func(*Config) {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(options []func(*Config)) Config {
	cfg := Config{
		capacity:   DefaultCapacity,
		loadFactor: DefaultLoadFactor,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// validate reports every violated bound at once.
func (c *Config) validate() error {
	var err error
	if c.capacity < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: capacity = %d < 0", ErrInvalidArgument, c.capacity))
	}
	// NaN fails both comparisons, so test for the valid range.
	if !(c.loadFactor > 0 && c.loadFactor <= 1) {
		err = multierr.Append(err, fmt.Errorf("%w: loadFactor = %v not in (0, 1]", ErrInvalidArgument, c.loadFactor))
	}
	return err
}
