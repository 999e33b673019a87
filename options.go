package sdkmap

import (
	"fmt"

	"github.com/sdkmap/sdkmap/internal/sources/xcodes"
	"github.com/sdkmap/sdkmap/pkg/constants"
	"github.com/sdkmap/sdkmap/pkg/sources"
)

// Option is a function that configures a Client.
type Option func(*config) error

type config struct {
	sources       []sources.Source
	enumerator    Enumerator
	previousPath  string
	conflictsOnly bool
	workers       int
}

func defaultConfig() *config {
	return &config{
		sources:    DefaultSources(),
		enumerator: xcodes.New(),
		workers:    constants.SourceWorkers,
	}
}

// WithSources replaces the source set. Order matters: earlier sources carry
// more authority in conflict resolution.
func WithSources(srcs ...sources.Source) Option {
	return func(c *config) error {
		if len(srcs) == 0 {
			return fmt.Errorf("at least one source is required")
		}
		c.sources = srcs
		return nil
	}
}

// WithEnumerator replaces the version enumerator.
func WithEnumerator(e Enumerator) Option {
	return func(c *config) error {
		c.enumerator = e
		return nil
	}
}

// WithoutEnumeration disables the xcodes CLI enumeration. The universe is
// then limited to versions at least one source knows about.
func WithoutEnumeration() Option {
	return func(c *config) error {
		c.enumerator = nil
		return nil
	}
}

// WithPreviousPath configures the previous flat output file to diff
// against. Without it every run reports changed.
func WithPreviousPath(path string) Option {
	return func(c *config) error {
		c.previousPath = path
		return nil
	}
}

// WithConflictsOnly restricts output records to conflicting and unresolved
// versions.
func WithConflictsOnly(enabled bool) Option {
	return func(c *config) error {
		c.conflictsOnly = enabled
		return nil
	}
}

// WithWorkers caps how many sources fetch at once.
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("workers must be positive, got %d", n)
		}
		c.workers = n
		return nil
	}
}
