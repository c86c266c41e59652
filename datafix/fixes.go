package datafix

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ParseFixes reads a fix document: a JSON object mapping misspelled or
// variant names to their canonical form. Keys and values are trimmed;
// blank keys, blank values, and identity mappings are rejected.
func ParseFixes(r io.Reader) (map[string]string, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFixFile, err)
	}
	if len(raw) == 0 {
		return nil, ErrNoFixes
	}

	fixes := make(map[string]string, len(raw))
	for from, to := range raw {
		from = strings.TrimSpace(from)
		to = strings.TrimSpace(to)
		if from == "" || to == "" {
			return nil, fmt.Errorf("%w: blank name in mapping", ErrMalformedFixFile)
		}
		if from == to {
			return nil, fmt.Errorf("%w: %q maps to itself", ErrMalformedFixFile, from)
		}
		fixes[from] = to
	}
	return fixes, nil
}
