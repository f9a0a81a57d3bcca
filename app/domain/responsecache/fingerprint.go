package responsecache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"menlo.ai/creator-insights-gateway/app/infrastructure/cache"
)

// Params are the feature-specific inputs that, together with the feature name and the
// profile version, determine a cached result.
type Params map[string]any

// Set is a collection whose order carries no meaning, such as platforms or goals.
type Set []string

// List is a collection whose order matters.
type List []string

type canonicalParam struct {
	Key   string `json:"k"`
	Value any    `json:"v"`
}

type canonicalKey struct {
	Feature        string           `json:"feature"`
	Params         []canonicalParam `json:"params"`
	ProfileVersion int64            `json:"profile_version"`
}

// Fingerprint derives the cache key for feature, params and profileVersion. Semantically
// identical inputs yield identical keys: parameter keys are sorted, strings are trimmed and
// sets are sorted.
func Fingerprint(feature string, params Params, profileVersion int64) string {
	key := canonicalKey{
		Feature:        strings.TrimSpace(feature),
		Params:         make([]canonicalParam, 0, len(params)),
		ProfileVersion: profileVersion,
	}
	for k, v := range params {
		key.Params = append(key.Params, canonicalParam{Key: strings.TrimSpace(k), Value: canonicalValue(v)})
	}
	sort.Slice(key.Params, func(i, j int) bool { return key.Params[i].Key < key.Params[j].Key })

	encoded, err := json.Marshal(key)
	if err != nil {
		// Params only ever carry plain values; fall back to the printed form.
		encoded = []byte(fmt.Sprintf("%#v", key))
	}
	sum := sha256.Sum256(encoded)
	return fmt.Sprintf(cache.ResponseKeyPattern, key.Feature, hex.EncodeToString(sum[:]))
}

func canonicalValue(v any) any {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case Set:
		return sortedSet(value)
	case []string:
		return sortedSet(value)
	case List:
		out := make([]string, len(value))
		for i, item := range value {
			out[i] = strings.TrimSpace(item)
		}
		return out
	default:
		return value
	}
}

func sortedSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, item := range values {
		out = append(out, strings.TrimSpace(item))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// FeatureOf extracts the feature name from a fingerprint.
func FeatureOf(fingerprint string) string {
	parts := strings.SplitN(fingerprint, ":", 3)
	if len(parts) != 3 {
		return "unknown"
	}
	return parts[1]
}
