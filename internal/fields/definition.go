package fields

import (
	"fmt"
	"regexp"
)

// NormalizeFunc canonicalizes a raw candidate value into its presentation
// form. Normalizers are total: they never fail and return "" for input they
// cannot interpret.
type NormalizeFunc func(string) string

// ExtractorFunc is a specialized, field-specific extraction heuristic. It
// inspects the full document text and the table-derived KV hints and returns
// the raw candidate value, or "" when it finds nothing. Extractors are pure
// functions: no shared state, no I/O.
type ExtractorFunc func(text string, kv map[string]string) string

// Definition declares how a single loan-document field is located and
// canonicalized. Definitions are static configuration: declared once,
// validated by NewRegistry, never mutated afterwards.
type Definition struct {
	// Key is the stable machine identifier, unique across the registry.
	Key string

	// Label is the human display name, also tried as a KV alias.
	Label string

	// Aliases name how the field may appear as a table row label. Matched
	// case- and punctuation-insensitively by the KV matcher.
	Aliases []string

	// Patterns are regular expressions tried in order against the full
	// text. They are compiled with case-insensitive, multiline,
	// dot-matches-newline semantics. The resolved value is the last
	// non-empty capture group, or the whole match when no group captured.
	Patterns []string

	// Normalize canonicalizes whatever raw value the cascade produced.
	Normalize NormalizeFunc

	// Extractors are names of specialized extractors tried in order,
	// first non-empty result wins. Every name must resolve in the
	// extractor dispatch table.
	Extractors []string

	// PreferExtractor runs the extractors before pattern search and KV
	// lookup instead of after.
	PreferExtractor bool
}

// Document is the read-only per-document input to resolution, produced by
// the upstream PDF layer.
type Document struct {
	// Text is the full extracted page text, pages joined by newline.
	Text string

	// KVHints maps a raw table-row label to its value. Duplicate labels
	// upstream are last-write-wins.
	KVHints map[string]string
}

// Record maps field key to canonical string value. An empty string means
// the field was not found; every registered key is always present.
type Record map[string]string

// Registry is the immutable set of field definitions plus the extractor
// dispatch table, with all patterns pre-compiled. Built once at startup.
type Registry struct {
	defs       []Definition
	compiled   [][]*regexp.Regexp
	extractors map[string]ExtractorFunc
}

// NewRegistry builds the default loan-document field registry and validates
// it. A malformed definition (duplicate key, unknown extractor name, bad
// pattern, missing normalizer) is a configuration defect and fails here
// rather than at per-document resolution time.
func NewRegistry() (*Registry, error) {
	return newRegistry(defaultDefinitions(), extractorDispatch())
}

func newRegistry(defs []Definition, extractors map[string]ExtractorFunc) (*Registry, error) {
	r := &Registry{
		defs:       defs,
		compiled:   make([][]*regexp.Regexp, len(defs)),
		extractors: extractors,
	}

	seen := make(map[string]bool, len(defs))
	for i, def := range defs {
		if def.Key == "" {
			return nil, fmt.Errorf("field definition %d has an empty key", i)
		}
		if seen[def.Key] {
			return nil, fmt.Errorf("duplicate field key %q", def.Key)
		}
		seen[def.Key] = true

		if def.Normalize == nil {
			return nil, fmt.Errorf("field %q has no normalizer", def.Key)
		}

		for _, name := range def.Extractors {
			if _, ok := extractors[name]; !ok {
				return nil, fmt.Errorf("field %q references unregistered extractor %q", def.Key, name)
			}
		}

		for _, pattern := range def.Patterns {
			re, err := regexp.Compile("(?ims)" + pattern)
			if err != nil {
				return nil, fmt.Errorf("field %q pattern %q: %w", def.Key, pattern, err)
			}
			r.compiled[i] = append(r.compiled[i], re)
		}
	}

	return r, nil
}

// Definitions returns the registered definitions in registry order.
func (r *Registry) Definitions() []Definition {
	return r.defs
}

// Keys returns all registered field keys in registry order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.defs))
	for i, def := range r.defs {
		keys[i] = def.Key
	}
	return keys
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.defs)
}

func (r *Registry) patternsFor(i int) []*regexp.Regexp {
	return r.compiled[i]
}

func (r *Registry) extractor(name string) ExtractorFunc {
	return r.extractors[name]
}
