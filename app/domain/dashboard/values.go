package dashboard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// stringList decodes a JSON array whose items may be strings or numbers, as models tend to
// answer "optimal_hours" either way.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		var n float64
		if err := json.Unmarshal(item, &n); err == nil {
			out = append(out, strconv.FormatFloat(n, 'f', -1, 64))
			continue
		}
		return fmt.Errorf("unsupported list item %s", string(item))
	}
	*l = out
	return nil
}

func (l stringList) orEmpty() []string {
	if l == nil {
		return []string{}
	}
	return l
}

// normalizeHashtags strips leading '#', drops blanks and repeats while keeping order.
func normalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(tag), "#"))
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}
