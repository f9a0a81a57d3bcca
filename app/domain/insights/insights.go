package insights

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type Operation string

const (
	OperationGeography       Operation = "geography_insights"
	OperationRegionalTrends  Operation = "regional_trends"
	OperationRecommendations Operation = "entity_recommendations"
)

// GeoInsight is the relevance of a niche/audience pair in one country.
type GeoInsight struct {
	Country string  `json:"country"`
	Name    string  `json:"name"`
	Weight  float64 `json:"weight"`
}

type RegionalTrends struct {
	Country string   `json:"country"`
	Name    string   `json:"name"`
	Topics  []string `json:"topics"`
}

type Entity struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Tags       []string `json:"tags"`
	Popularity float64  `json:"popularity"`
}

type GeographyQuery struct {
	Category string
	Audience string
}

type TrendsQuery struct {
	Country  string
	Category string
	Audience string
}

type RecommendationQuery struct {
	EntityType   string
	InterestTags []string
	Take         int
}

// Provider is the cultural-insights upstream.
type Provider interface {
	Geography(ctx context.Context, query GeographyQuery) ([]GeoInsight, error)
	RegionalTrends(ctx context.Context, query TrendsQuery) (RegionalTrends, error)
	Recommendations(ctx context.Context, query RecommendationQuery) ([]Entity, error)
}

var entityTypes = map[string]string{
	"movie":       "urn:entity:movie",
	"artist":      "urn:entity:artist",
	"book":        "urn:entity:book",
	"brand":       "urn:entity:brand",
	"destination": "urn:entity:destination",
	"person":      "urn:entity:person",
	"place":       "urn:entity:place",
	"podcast":     "urn:entity:podcast",
	"tv_show":     "urn:entity:tv_show",
	"video_game":  "urn:entity:video_game",
}

// EntityTypeURN resolves a short entity type ("brand") or a full URN to the URN form.
func EntityTypeURN(entityType string) (string, error) {
	entityType = strings.ToLower(strings.TrimSpace(entityType))
	if urn, ok := entityTypes[entityType]; ok {
		return urn, nil
	}
	for _, urn := range entityTypes {
		if urn == entityType {
			return urn, nil
		}
	}
	return "", fmt.Errorf("unsupported entity type %q", entityType)
}

// TopMarkets returns at most n insights ordered by descending weight.
func TopMarkets(geo []GeoInsight, n int) []GeoInsight {
	sorted := make([]GeoInsight, len(geo))
	copy(sorted, geo)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight == sorted[j].Weight {
			return sorted[i].Country < sorted[j].Country
		}
		return sorted[i].Weight > sorted[j].Weight
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
