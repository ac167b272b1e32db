// Package replay runs scripted workloads against a hab.Table. Scripts are
// TOML documents with a [table] section and a list of [[op]] entries.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nnym/hab"
)

// Kind names a table operation a script can run.
type Kind string

const (
	KindPut          Kind = "put"
	KindPutIfPresent Kind = "put_if_present"
	KindRemove       Kind = "remove"
	KindRemovePair   Kind = "remove_pair"
	KindGet          Kind = "get"
	KindContains     Kind = "contains"
	KindClear        Kind = "clear"
)

var ErrInvalidScript = errors.New("invalid script")

// TableConfig mirrors the table options a script may set. Unset fields fall
// back to hab.DefaultCapacity and hab.DefaultLoadFactor.
type TableConfig struct {
	Capacity   *int     `toml:"capacity"`
	LoadFactor *float64 `toml:"load_factor"`
}

// Op is a single scripted operation. Value is ignored by kinds that take
// only a key.
type Op struct {
	Kind  Kind    `toml:"kind"`
	Key   string  `toml:"key"`
	Value *string `toml:"value"`
}

// Script is a decoded replay script.
type Script struct {
	Table TableConfig `toml:"table"`
	Ops   []Op        `toml:"op"`
}

// Options converts the [table] section into table options.
func (s *Script) Options() []func(*hab.Config) {
	var options []func(*hab.Config)
	if s.Table.Capacity != nil {
		options = append(options, hab.WithCapacity(*s.Table.Capacity))
	}
	if s.Table.LoadFactor != nil {
		options = append(options, hab.WithLoadFactor(*s.Table.LoadFactor))
	}
	return options
}

// Decode reads a script from r, rejecting unknown keys and malformed ops.
func Decode(r io.Reader) (*Script, error) {
	var s Script
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidScript, strings.Join(keys, ", "))
	}
	for i, op := range s.Ops {
		if err := op.validate(); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
	}
	return &s, nil
}

// Load decodes the script stored at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (op Op) validate() error {
	switch op.Kind {
	case KindPut, KindPutIfPresent, KindRemovePair, KindContains:
		if op.Value == nil {
			return fmt.Errorf("%w: %s needs a value", ErrInvalidScript, op.Kind)
		}
	case KindRemove, KindGet, KindClear:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidScript, op.Kind)
	}
	return nil
}
