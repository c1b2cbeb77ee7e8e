package merge

import (
	"fmt"
	"path"
	"strings"
)

// Strategy names how a fragment file is combined with an existing file.
type Strategy string

const (
	// Overwrite replaces the existing file.
	Overwrite Strategy = "overwrite"
	// JSONMerge deep merges JSON objects and unions arrays.
	JSONMerge Strategy = "json-merge"
	// LineUnion keeps every distinct non-empty line in first-seen order.
	LineUnion Strategy = "line-union"
	// Append adds a marked block once.
	Append Strategy = "append"
)

// ValidStrategies returns all strategy names.
func ValidStrategies() []Strategy {
	return []Strategy{Overwrite, JSONMerge, LineUnion, Append}
}

// ParseStrategy converts a catalog value into a Strategy. The empty string
// yields the empty Strategy, meaning "select by path".
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return "", nil
	}
	for _, v := range ValidStrategies() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// StrategySelector picks a strategy from a file path.
type StrategySelector struct{}

// NewStrategySelector creates a StrategySelector.
func NewStrategySelector() *StrategySelector {
	return &StrategySelector{}
}

// SelectStrategy returns the strategy for the file kind at p.
func (s *StrategySelector) SelectStrategy(p string) Strategy {
	base := path.Base(p)
	switch {
	case strings.EqualFold(path.Ext(base), ".json"):
		return JSONMerge
	case base == "_gitignore" || strings.HasSuffix(base, "ignore"):
		return LineUnion
	case base == ".env" || strings.HasPrefix(base, ".env."):
		return Append
	default:
		return Overwrite
	}
}
