// Package options provides shared checks for functional option sets.
package options

import (
	"fmt"

	"github.com/erraggy/oasbind/oaserrors"
)

// Source names one way of supplying input and whether it was set.
type Source struct {
	Option string
	Set    bool
}

// RequireOneSource returns a ConfigError unless exactly one source is set.
// pkg prefixes the message, e.g. "parser".
func RequireOneSource(pkg string, sources ...Source) error {
	var set []string
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Option)
		if s.Set {
			set = append(set, s.Option)
		}
	}
	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  "input",
			Message: fmt.Sprintf("%s: must specify an input source (use one of %v)", pkg, names),
		}
	default:
		return &oaserrors.ConfigError{
			Option:  "input",
			Value:   set,
			Message: fmt.Sprintf("%s: must specify exactly one input source", pkg),
		}
	}
}
