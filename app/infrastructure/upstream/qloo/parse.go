package qloo

import (
	"encoding/json"
	"sort"
	"strings"

	"menlo.ai/creator-insights-gateway/app/domain/insights"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
)

type countryScore struct {
	RelevanceScore *float64 `json:"relevance_score"`
	Name           string   `json:"name"`
}

type countryRow struct {
	CountryCode    string   `json:"country_code"`
	CountryName    string   `json:"country_name"`
	RelevanceScore *float64 `json:"relevance_score"`
}

type entityRow struct {
	EntityID   string            `json:"entity_id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Subtype    string            `json:"subtype"`
	Tags       []json.RawMessage `json:"tags"`
	Popularity *float64          `json:"popularity"`
}

func decodeEnvelope(op string, raw []byte) (map[string]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, upstream.Malformed(upstream.ServiceQloo, op, "invalid JSON body: %v", err)
	}
	return envelope, nil
}

// parseGeography accepts either {"countries": {CODE: {...}}} or {"results": [{country_code, ...}]}.
func parseGeography(op string, raw []byte) ([]insights.GeoInsight, error) {
	envelope, err := decodeEnvelope(op, raw)
	if err != nil {
		return nil, err
	}

	geo := make([]insights.GeoInsight, 0)
	switch {
	case envelope["countries"] != nil:
		var byCode map[string]countryScore
		if err := json.Unmarshal(envelope["countries"], &byCode); err != nil {
			return nil, upstream.Malformed(upstream.ServiceQloo, op, "countries: %v", err)
		}
		for code, score := range byCode {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			geo = append(geo, insights.GeoInsight{
				Country: code,
				Name:    orDefault(score.Name, code),
				Weight:  orZero(score.RelevanceScore),
			})
		}
	case envelope["results"] != nil:
		var rows []countryRow
		if err := json.Unmarshal(envelope["results"], &rows); err != nil {
			return nil, upstream.Malformed(upstream.ServiceQloo, op, "results: %v", err)
		}
		for _, row := range rows {
			code := strings.TrimSpace(row.CountryCode)
			if code == "" {
				continue
			}
			geo = append(geo, insights.GeoInsight{
				Country: code,
				Name:    orDefault(row.CountryName, code),
				Weight:  orZero(row.RelevanceScore),
			})
		}
	default:
		return nil, upstream.Malformed(upstream.ServiceQloo, op, "response has neither countries nor results")
	}

	sort.Slice(geo, func(i, j int) bool { return geo[i].Country < geo[j].Country })
	return geo, nil
}

func parseRegionalTrends(op string, country string, raw []byte) (insights.RegionalTrends, error) {
	envelope, err := decodeEnvelope(op, raw)
	if err != nil {
		return insights.RegionalTrends{}, err
	}
	rawTopics, ok := envelope["trending_topics"]
	if !ok {
		return insights.RegionalTrends{}, upstream.Malformed(upstream.ServiceQloo, op, "missing trending_topics")
	}
	var items []json.RawMessage
	if string(rawTopics) != "null" {
		if err := json.Unmarshal(rawTopics, &items); err != nil {
			return insights.RegionalTrends{}, upstream.Malformed(upstream.ServiceQloo, op, "trending_topics: %v", err)
		}
	}

	var name string
	if rawName, ok := envelope["country_name"]; ok {
		_ = json.Unmarshal(rawName, &name)
	}
	if rawCode, ok := envelope["country_code"]; ok {
		var code string
		if json.Unmarshal(rawCode, &code) == nil && code != "" {
			country = code
		}
	}

	return insights.RegionalTrends{
		Country: country,
		Name:    orDefault(name, country),
		Topics:  labels(items),
	}, nil
}

func parseEntities(op string, raw []byte) ([]insights.Entity, error) {
	envelope, err := decodeEnvelope(op, raw)
	if err != nil {
		return nil, err
	}
	rawResults, ok := envelope["results"]
	if !ok {
		return nil, upstream.Malformed(upstream.ServiceQloo, op, "missing results")
	}

	var rows []entityRow
	var nested struct {
		Entities *[]entityRow `json:"entities"`
	}
	if err := json.Unmarshal(rawResults, &nested); err == nil {
		if nested.Entities == nil {
			return nil, upstream.Malformed(upstream.ServiceQloo, op, "missing results.entities")
		}
		rows = *nested.Entities
	} else if err := json.Unmarshal(rawResults, &rows); err != nil {
		return nil, upstream.Malformed(upstream.ServiceQloo, op, "results: %v", err)
	}

	entities := make([]insights.Entity, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.EntityID) == "" || strings.TrimSpace(row.Name) == "" {
			return nil, upstream.Malformed(upstream.ServiceQloo, op, "entity %d lacks entity_id or name", i)
		}
		entities = append(entities, insights.Entity{
			ID:         row.EntityID,
			Name:       row.Name,
			Type:       orDefault(row.Subtype, row.Type),
			Tags:       labels(row.Tags),
			Popularity: orZero(row.Popularity),
		})
	}
	return entities, nil
}

// labels flattens items that are either strings or objects carrying a name/topic/title.
func labels(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			Name  string `json:"name"`
			Topic string `json:"topic"`
			Title string `json:"title"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		if label := strings.TrimSpace(orDefault(obj.Name, orDefault(obj.Topic, obj.Title))); label != "" {
			out = append(out, label)
		}
	}
	return out
}

func orDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func orZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
