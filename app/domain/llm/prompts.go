package llm

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

type Market struct {
	Country string
	Name    string
	Weight  float64
}

type GrowthStrategyInput struct {
	Niche      string
	Audience   string
	Goals      []string
	Platforms  []string
	TopMarkets []Market
}

type ContentCalendarInput struct {
	Timeframe string
	Niche     string
	Audience  string
	Trends    []string
}

type CompetitorSummary struct {
	Name          string
	Platform      string
	Followers     string
	ContentStyle  string
	SuccessFactor string
}

type CompetitorLandscapeInput struct {
	Niche       string
	Audience    string
	Region      string
	Competitors []CompetitorSummary
}

type ViralPotentialInput struct {
	Content  string
	Niche    string
	Audience string
	Trends   []string
}

type PostingTimesInput struct {
	Audience    string
	ContentType string
	Markets     []Market
}

type HashtagStrategyInput struct {
	Topic    string
	Audience string
	Region   string
}

// At most this many trending topics are placed into a single prompt.
const maxPromptTrends = 10

var funcs = template.FuncMap{
	"join": strings.Join,
	"head": func(items []string) []string {
		if len(items) > maxPromptTrends {
			return items[:maxPromptTrends]
		}
		return items
	},
	"pct": func(weight float64) string {
		return fmt.Sprintf("%.0f%%", weight*100)
	},
}

var (
	growthStrategyTmpl = template.Must(template.New(string(TemplateGrowthStrategy)).Funcs(funcs).Parse(`As an expert social media growth strategist, analyze this creator profile and provide detailed recommendations for audience growth.

Niche: {{.Niche}}
Target audience: {{.Audience}}
{{- if .Goals}}
Goals: {{join .Goals ", "}}{{end}}
{{- if .Platforms}}
Platforms: {{join .Platforms ", "}}{{end}}
{{- if .TopMarkets}}
Strongest markets by audience affinity:
{{- range .TopMarkets}}
- {{.Country}} ({{.Name}}): {{pct .Weight}}{{end}}{{end}}

Provide a comprehensive analysis including:
1. Current strengths and opportunities
2. Target audience expansion strategies
3. Content optimization recommendations
4. Geographic expansion opportunities
5. Collaboration and partnership suggestions
6. Specific tactics for the next 90 days

Format your response with clear headings and actionable bullet points.`))

	contentCalendarTmpl = template.Must(template.New(string(TemplateContentCalendar)).Funcs(funcs).Parse(`Create a {{.Timeframe}} content calendar for a {{.Niche}} creator whose audience is {{.Audience}}.
{{- if .Trends}}

Incorporate these trending topics: {{join (head .Trends) ", "}}{{end}}

For each content piece, include:
- Content type (post, story, reel, etc.)
- Topic/theme
- Key message
- Best posting time
- Relevant hashtags
- Engagement strategy

Format as a clear, actionable calendar that the creator can implement immediately.`))

	competitorLandscapeTmpl = template.Must(template.New(string(TemplateCompetitorLandscape)).Funcs(funcs).Parse(`Conduct a competitive landscape analysis for the {{.Niche}} niche in the {{.Region}} market, for a creator targeting {{.Audience}}.
{{- if .Competitors}}

Known competitors:
{{- range .Competitors}}
- {{.Name}}{{if .Platform}} on {{.Platform}}{{end}}{{if .Followers}} ({{.Followers}} followers){{end}}{{if .ContentStyle}}: {{.ContentStyle}}{{end}}{{if .SuccessFactor}}. Key success factor: {{.SuccessFactor}}{{end}}{{end}}{{end}}

Include:
1. Key player categories and archetypes
2. Content gaps and opportunities
3. Emerging trends in this space
4. Differentiation strategies
5. Audience behavior patterns
6. Monetization approaches being used
7. Recommended positioning strategies

Focus on actionable insights a creator can use to stand out in this market.`))

	viralPotentialTmpl = template.Must(template.New(string(TemplateViralPotential)).Funcs(funcs).Parse(`Analyze this content idea for viral potential:
Content idea: "{{.Content}}"

Niche: {{.Niche}}
Target audience: {{.Audience}}
Current trends: {{join (head .Trends) ", "}}

Provide analysis in JSON format with these fields:
{
    "viral_score": (number 1-100),
    "reasons": [list of reasons for the score],
    "improvements": [list of suggested improvements],
    "timing": "best time to post this content",
    "hashtag_strategy": [recommended hashtags],
    "engagement_prediction": "predicted engagement level"
}

Return ONLY the JSON object, no other text.`))

	postingTimesTmpl = template.Must(template.New(string(TemplatePostingTimes)).Funcs(funcs).Parse(`Analyze optimal posting times for this audience and content type.

Audience: {{.Audience}}
Content type: {{.ContentType}}
{{- if .Markets}}
Geographic distribution:
{{- range .Markets}}
- {{.Country}} ({{.Name}}): {{pct .Weight}}{{end}}{{end}}

Consider factors like:
- Time zones and geographic distribution
- Age group behavior patterns
- Content type engagement patterns
- Day of week preferences

Return analysis in JSON format:
{
    "best_days": [list of best days],
    "optimal_hours": [list of optimal hours in 24h format],
    "timezone_considerations": "timezone strategy",
    "content_frequency": "recommended posting frequency",
    "seasonal_adjustments": "seasonal considerations"
}

Return ONLY the JSON object.`))

	hashtagStrategyTmpl = template.Must(template.New(string(TemplateHashtagStrategy)).Funcs(funcs).Parse(`Generate an optimized hashtag strategy for:
Topic: {{.Topic}}
Audience: {{.Audience}}
Region: {{.Region}}

Include a mix of:
- High-volume popular hashtags
- Medium-volume niche hashtags
- Low-competition branded hashtags
- Location-based hashtags (if relevant)

Respond with a JSON object of the form {"hashtags": ["contentcreator", "trending", "lifestyle"]}, hashtags without the leading #, nothing else.`))
)

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func GrowthStrategyPrompt(in GrowthStrategyInput) (Prompt, error) {
	user, err := render(growthStrategyTmpl, in)
	return Prompt{
		Template:    TemplateGrowthStrategy,
		System:      "You are an expert social media growth strategist with deep knowledge of audience development.",
		User:        user,
		MaxTokens:   1500,
		Temperature: 0.7,
	}, err
}

func ContentCalendarPrompt(in ContentCalendarInput) (Prompt, error) {
	user, err := render(contentCalendarTmpl, in)
	return Prompt{
		Template:    TemplateContentCalendar,
		System:      "You are an expert content strategist specializing in social media calendar planning.",
		User:        user,
		MaxTokens:   2000,
		Temperature: 0.8,
	}, err
}

func CompetitorLandscapePrompt(in CompetitorLandscapeInput) (Prompt, error) {
	user, err := render(competitorLandscapeTmpl, in)
	return Prompt{
		Template:    TemplateCompetitorLandscape,
		System:      "You are an expert market research analyst specializing in influencer marketing and competitive analysis.",
		User:        user,
		MaxTokens:   1500,
		Temperature: 0.7,
	}, err
}

func ViralPotentialPrompt(in ViralPotentialInput) (Prompt, error) {
	user, err := render(viralPotentialTmpl, in)
	return Prompt{
		Template:    TemplateViralPotential,
		System:      "You are an expert viral content analyst with deep understanding of social media algorithms.",
		User:        user,
		MaxTokens:   800,
		Temperature: 0.6,
		JSON:        true,
	}, err
}

func PostingTimesPrompt(in PostingTimesInput) (Prompt, error) {
	user, err := render(postingTimesTmpl, in)
	return Prompt{
		Template:    TemplatePostingTimes,
		System:      "You are an expert social media timing strategist with deep knowledge of audience behavior patterns.",
		User:        user,
		MaxTokens:   600,
		Temperature: 0.6,
		JSON:        true,
	}, err
}

func HashtagStrategyPrompt(in HashtagStrategyInput) (Prompt, error) {
	user, err := render(hashtagStrategyTmpl, in)
	return Prompt{
		Template:    TemplateHashtagStrategy,
		System:      "You are an expert hashtag strategist with deep knowledge of social media algorithms.",
		User:        user,
		MaxTokens:   400,
		Temperature: 0.7,
		JSON:        true,
	}, err
}
