package fields

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// DefaultMinRatio is the similarity score a fuzzy KV match must reach
// before the resolution engine accepts it.
const DefaultMinRatio = 0.82

var nonAlnumRE = regexp.MustCompile(`[^a-z0-9]`)

var levParams = levenshtein.NewParams()

// normalizeLabel lowers a label and strips every non-alphanumeric rune so
// that "Limit/Amount", "Limit / Amount:" and "LIMIT AMOUNT" all compare
// equal.
func normalizeLabel(s string) string {
	return nonAlnumRE.ReplaceAllString(strings.ToLower(s), "")
}

func sortedKeys(kv map[string]string) []string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// matchKV finds the KV entry whose label best matches any of the aliases.
// Exactness is tiered: exact normalized equality beats a prefix match,
// which beats a substring match, and all three beat edit-distance
// similarity. A short exact alias therefore always wins over a longer
// high-ratio fuzzy candidate. Entries within a tier are visited in sorted
// key order to keep results deterministic.
func matchKV(aliases []string, kv map[string]string) (value, matchedKey string, score float64) {
	if len(kv) == 0 {
		return "", "", 0
	}

	aliasNorms := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if n := normalizeLabel(a); n != "" {
			aliasNorms = append(aliasNorms, n)
		}
	}
	if len(aliasNorms) == 0 {
		return "", "", 0
	}

	keys := sortedKeys(kv)

	for _, k := range keys {
		kn := normalizeLabel(k)
		for _, an := range aliasNorms {
			if kn == an {
				return kv[k], k, 1.0
			}
		}
	}
	for _, k := range keys {
		kn := normalizeLabel(k)
		for _, an := range aliasNorms {
			if strings.HasPrefix(kn, an) || strings.Contains(kn, an) {
				return kv[k], k, 1.0
			}
		}
	}

	best := 0.0
	for _, k := range keys {
		kn := normalizeLabel(k)
		for _, an := range aliasNorms {
			if r := levenshtein.Similarity(kn, an, levParams); r > best {
				best, value, matchedKey = r, kv[k], k
			}
		}
	}
	return value, matchedKey, best
}
