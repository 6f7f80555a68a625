package fields

import (
	"log/slog"
	"regexp"
	"strings"
)

// Resolver runs the per-field resolution cascade over a document. It holds
// only read-only state, so a single Resolver is safe for concurrent use
// across documents.
type Resolver struct {
	registry *Registry
	minRatio float64
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMinRatio overrides the minimum similarity score a fuzzy KV match must
// reach before it is accepted.
func WithMinRatio(ratio float64) Option {
	return func(r *Resolver) {
		r.minRatio = ratio
	}
}

// WithLogger attaches a structured logger for per-field debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver over the given registry.
func NewResolver(registry *Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		minRatio: DefaultMinRatio,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the record for one document. Every registered field key
// is present in the result; unresolved fields hold "". Field cascades are
// independent of one another, so resolution order does not affect the
// outcome.
func (r *Resolver) Resolve(doc Document) Record {
	out := make(Record, r.registry.Len())
	for i, def := range r.registry.Definitions() {
		out[def.Key] = r.resolveField(i, def, doc)
	}
	return out
}

// resolveField runs the cascade for a single field:
//
//  1. extractors, when the definition prefers them
//  2. patterns over the full text, first match wins
//  3. fuzzy KV lookup over aliases plus the display label
//  4. extractors as fallback, when not already run
//
// then normalizes the raw value and collapses sentinels to "".
func (r *Resolver) resolveField(idx int, def Definition, doc Document) string {
	raw := ""
	stage := ""

	if def.PreferExtractor {
		raw = r.runExtractors(def, doc)
		stage = "extractor"
	}

	if raw == "" {
		raw = searchPatterns(r.registry.patternsFor(idx), doc.Text)
		stage = "pattern"
	}

	if raw == "" && len(doc.KVHints) > 0 {
		aliases := make([]string, 0, len(def.Aliases)+1)
		aliases = append(aliases, def.Aliases...)
		aliases = append(aliases, def.Label)
		if v, key, score := matchKV(aliases, doc.KVHints); score >= r.minRatio && v != "" {
			raw = v
			stage = "kv"
			r.logger.Debug("kv hint matched", "field", def.Key, "label", key, "score", score)
		}
	}

	if raw == "" && !def.PreferExtractor {
		raw = r.runExtractors(def, doc)
		stage = "extractor"
	}

	value := def.Normalize(raw)
	if value == "" || isSentinel(value) {
		return ""
	}
	r.logger.Debug("field resolved", "field", def.Key, "stage", stage)
	return value
}

func (r *Resolver) runExtractors(def Definition, doc Document) string {
	for _, name := range def.Extractors {
		if v := r.registry.extractor(name)(doc.Text, doc.KVHints); v != "" {
			return v
		}
	}
	return ""
}

// searchPatterns returns the value of the first pattern that matches: the
// last non-empty capture group when the pattern defines groups, else the
// whole match.
func searchPatterns(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[0]
		for i := len(m) - 1; i >= 1; i-- {
			if m[i] != "" {
				value = m[i]
				break
			}
		}
		return strings.TrimSpace(value)
	}
	return ""
}
