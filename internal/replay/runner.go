package replay

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/nnym/hab"
)

// Runner executes scripts against a string table, writing one result line
// per op.
type Runner struct {
	out    io.Writer
	logger *zap.Logger
}

// NewRunner creates a Runner writing results to out. A nil logger disables
// logging.
func NewRunner(out io.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{out: out, logger: logger}
}

// Run builds a table from the script's [table] section and applies every
// op in order. The table is returned for inspection even when writing a
// result fails.
func (r *Runner) Run(s *Script) (*hab.Table[string, string], error) {
	options := append(s.Options(), hab.WithLogger(r.logger.Named("table")))
	t, err := hab.NewWithHasher[string, string](hab.StringHasher{}, hab.StringHasher{}, options...)
	if err != nil {
		return nil, err
	}
	for i, op := range s.Ops {
		result := apply(t, op)
		r.logger.Debug("op applied",
			zap.Int("index", i),
			zap.String("kind", string(op.Kind)),
			zap.String("key", op.Key),
			zap.String("result", result),
			zap.Int("size", t.Size()),
		)
		if _, err := fmt.Fprintf(r.out, "%s %s: %s\n", op.Kind, op.Key, result); err != nil {
			return t, fmt.Errorf("op %d: %w", i, err)
		}
	}
	return t, nil
}

func apply(t *hab.Table[string, string], op Op) string {
	var value string
	if op.Value != nil {
		value = *op.Value
	}
	switch op.Kind {
	case KindPut:
		return pairResult(t.Put(op.Key, value))
	case KindPutIfPresent:
		return pairResult(t.PutIfPresent(op.Key, value))
	case KindRemove:
		return pairResult(t.Remove(op.Key))
	case KindRemovePair:
		return pairResult(t.RemovePair(op.Key, value))
	case KindGet:
		if v, ok := t.Get(op.Key); ok {
			return v
		}
		return "absent"
	case KindContains:
		return fmt.Sprint(t.Contains(op.Key, value))
	case KindClear:
		t.Clear()
		return "cleared"
	}
	// Decode rejects unknown kinds.
	return "unsupported"
}

func pairResult(p hab.Pair[string, string], loaded bool) string {
	if !loaded {
		return "absent"
	}
	return p.String()
}
