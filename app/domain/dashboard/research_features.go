package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"menlo.ai/creator-insights-gateway/app/domain/common"
	"menlo.ai/creator-insights-gateway/app/domain/profile"
	"menlo.ai/creator-insights-gateway/app/domain/research"
	"menlo.ai/creator-insights-gateway/app/domain/responsecache"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
)

const (
	maxGlobalTrends = 5
	maxCompetitors  = 5
	maxSounds       = 10
	maxBrands       = 5
	defaultPlatform = "tiktok"
)

// engagementCountries are the markets scored for the world map.
var engagementCountries = []string{"USA", "Canada", "UK", "Germany", "France", "Japan", "Australia", "Brazil", "India", "South Africa"}

var insightRegions = []string{"USA", "Europe", "India", "Southeast Asia", "Middle East", "Latin America"}

var platforms = map[string]string{"tiktok": "TikTok", "instagram": "Instagram", "youtube": "YouTube"}

func platformName(platform string) (string, string, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		platform = defaultPlatform
	}
	name, ok := platforms[platform]
	if !ok {
		return "", "", invalidInput("platform must be tiktok, instagram or youtube")
	}
	return platform, name, nil
}

// GlobalInsights researches where and how the niche performs worldwide: per-country
// engagement scores, viral trends, regional summaries and leading creators. The four
// research questions are asked concurrently and any failure fails the whole view.
func (s *Service) GlobalInsights(ctx context.Context, session *Session) (*GlobalInsights, *common.Error) {
	return run(ctx, session, FeatureGlobalInsights, nicheAndAudience, nil, func(ctx context.Context, p profile.UserProfile) (GlobalInsights, error) {
		var (
			engagement  research.EngagementList
			trends      research.TrendList
			regions     research.RegionalTrendList
			competitors research.CompetitorList
			answers     [4]research.Answer
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			engagement, answers[0], err = research.AskStructured[research.EngagementList](gctx, s.research, research.Query{Question: engagementQuestion(p)})
			return err
		})
		g.Go(func() (err error) {
			trends, answers[1], err = research.AskStructured[research.TrendList](gctx, s.research, research.Query{Question: globalTrendsQuestion(p)})
			return err
		})
		g.Go(func() (err error) {
			regions, answers[2], err = research.AskStructured[research.RegionalTrendList](gctx, s.research, research.Query{Question: regionalTrendsQuestion(p)})
			return err
		})
		g.Go(func() (err error) {
			competitors, answers[3], err = research.AskStructured[research.CompetitorList](gctx, s.research, research.Query{Question: competitorQuestion(p, "global")})
			return err
		})
		if err := g.Wait(); err != nil {
			return GlobalInsights{}, err
		}

		countries := normalizeEngagement(engagement.Countries)
		if len(countries) == 0 {
			return GlobalInsights{}, upstream.Malformed(upstream.ServicePerplexity, research.OperationQuery, "no country engagement scores in answer")
		}
		topTrends := normalizeTrends(trends.Trends)
		return GlobalInsights{
			Niche:          p.Niche,
			Audience:       p.Audience,
			Summary:        insightSummary(p, topTrends),
			Countries:      countries,
			GlobalTrends:   topTrends,
			RegionalTrends: normalizeRegions(regions.Regions),
			Competitors:    namedCompetitors(competitors.Competitors),
			Citations:      mergeCitations(answers[:]...),
		}, nil
	})
}

func engagementQuestion(p profile.UserProfile) string {
	return fmt.Sprintf(`Rate the engagement potential for %s content targeting %s in each of these countries on a scale of 0.0 to 1.0: %s.
Consider cultural relevance, internet penetration and audience interest.

For each country, provide:
- country_code: ISO 3166-1 alpha-3 code (e.g., "USA", "GBR")
- country_name: country name
- engagement_score: number between 0.0 and 1.0
- market_size: rough size of the audience (e.g., "Large", "12M")
- key_insights: one sentence on why the score is what it is`, p.Niche, p.Audience, strings.Join(engagementCountries, ", "))
}

func globalTrendsQuestion(p profile.UserProfile) string {
	return fmt.Sprintf(`Find the top %d most viral and trending content topics for %s creators targeting %s right now.

For each trend, provide exact details:
- trend: concise trend name/topic
- description: brief description of the trend (1-2 sentences)
- regions: array of regions where it's popular (e.g., ["USA", "Europe", "Asia"])
- engagement_score: estimated engagement potential 1-100 (integer)

Focus on current, specific trends that are actively viral.`, maxGlobalTrends, p.Niche, p.Audience)
}

func regionalTrendsQuestion(p profile.UserProfile) string {
	return fmt.Sprintf(`What are the specific viral trends and content formats for %s content in these regions: %s?

For each region, provide:
- region: the region name exactly as listed
- summary: what works there, in at most 2 sentences`, p.Niche, strings.Join(insightRegions, ", "))
}

func normalizeEngagement(countries []research.CountryEngagement) []research.CountryEngagement {
	out := make([]research.CountryEngagement, 0, len(countries))
	seen := make(map[string]bool, len(countries))
	for _, c := range countries {
		c.CountryCode = strings.ToUpper(strings.TrimSpace(c.CountryCode))
		if c.CountryCode == "" || seen[c.CountryCode] {
			continue
		}
		seen[c.CountryCode] = true
		c.CountryName = strings.TrimSpace(c.CountryName)
		if c.CountryName == "" {
			c.CountryName = c.CountryCode
		}
		c.EngagementScore = min(max(c.EngagementScore, 0), 1)
		out = append(out, c)
	}
	slices.SortStableFunc(out, func(a, b research.CountryEngagement) int {
		return cmp.Compare(b.EngagementScore, a.EngagementScore)
	})
	return out
}

func normalizeTrends(trends []research.GlobalTrend) []research.GlobalTrend {
	out := make([]research.GlobalTrend, 0, maxGlobalTrends)
	for _, t := range trends {
		t.Trend = strings.TrimSpace(t.Trend)
		if t.Trend == "" {
			continue
		}
		t.EngagementScore = min(max(t.EngagementScore, 0), 100)
		if t.Regions == nil {
			t.Regions = []string{}
		}
		out = append(out, t)
		if len(out) == maxGlobalTrends {
			break
		}
	}
	return out
}

func normalizeRegions(regions []research.RegionalTrend) []research.RegionalTrend {
	out := make([]research.RegionalTrend, 0, len(regions))
	for _, r := range regions {
		r.Region = strings.TrimSpace(r.Region)
		r.Summary = cleanText(r.Summary)
		if r.Region == "" || r.Summary == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func namedCompetitors(competitors []research.Competitor) []research.Competitor {
	out := make([]research.Competitor, 0, maxCompetitors)
	for _, c := range competitors {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, c)
		if len(out) == maxCompetitors {
			break
		}
	}
	return out
}

func insightSummary(p profile.UserProfile, trends []research.GlobalTrend) string {
	if len(trends) == 0 {
		return fmt.Sprintf("Current %s trends show dynamic engagement patterns across global markets.", p.Niche)
	}
	top := trends[0]
	summary := fmt.Sprintf("Leading trend: %s.", top.Trend)
	if description := strings.TrimSpace(top.Description); description != "" {
		summary += " " + description
	}
	if len(top.Regions) > 0 {
		regions := top.Regions
		if len(regions) > 3 {
			regions = regions[:3]
		}
		summary += fmt.Sprintf(" Popular in %s", strings.Join(regions, ", "))
		if top.EngagementScore > 0 {
			summary += fmt.Sprintf(" with %d/100 engagement potential", top.EngagementScore)
		}
		summary += "."
	}
	return summary
}

func mergeCitations(answers ...research.Answer) []string {
	out := make([]string, 0)
	seen := make(map[string]bool)
	for _, a := range answers {
		for _, c := range a.Citations {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// TrendingSounds researches the audio currently trending on platform in region. The
// profile's niche narrows the search when it is known.
func (s *Service) TrendingSounds(ctx context.Context, session *Session, platform string, region string) (*TrendingSounds, *common.Error) {
	platform, name, err := platformName(platform)
	if err != nil {
		return nil, toError(FeatureTrendingSounds, err)
	}
	region = strings.TrimSpace(region)
	if region == "" {
		region = "global"
	}
	params := responsecache.Params{"platform": platform, "region": strings.ToLower(region)}
	return run(ctx, session, FeatureTrendingSounds, nil, params, func(ctx context.Context, p profile.UserProfile) (TrendingSounds, error) {
		list, answer, err := research.AskStructured[research.SoundList](ctx, s.research, research.Query{
			Question: trendingSoundsQuestion(p, name, region),
		})
		if err != nil {
			return TrendingSounds{}, err
		}
		sounds := make([]research.Sound, 0, maxSounds)
		for _, sound := range list.Sounds {
			sound.Title = cleanText(sound.Title)
			if sound.Title == "" {
				continue
			}
			sound.Artist = cleanText(sound.Artist)
			sound.TrendScore = min(max(sound.TrendScore, 0), 100)
			sound.Hashtags = normalizeHashtags(sound.Hashtags)
			if sound.BestContentTypes == nil {
				sound.BestContentTypes = []string{}
			}
			sounds = append(sounds, sound)
			if len(sounds) == maxSounds {
				break
			}
		}
		if len(sounds) == 0 {
			return TrendingSounds{}, upstream.Malformed(upstream.ServicePerplexity, research.OperationQuery, "no sounds in answer")
		}
		return TrendingSounds{Platform: platform, Region: region, Sounds: sounds, Citations: mergeCitations(answer)}, nil
	})
}

func trendingSoundsQuestion(p profile.UserProfile, platform string, region string) string {
	filter := ""
	if p.Niche != "" {
		filter = fmt.Sprintf(" for %s content", p.Niche)
	}
	where := "globally"
	if !strings.EqualFold(region, "global") {
		where = "in " + region
	}
	return fmt.Sprintf(`Find the top %d trending audio tracks and sounds on %s%s %s right now.

For each sound, provide exact details:
- title: exact track/sound name
- artist: creator or artist name
- duration: approximate duration in seconds (integer)
- genre: music genre/style
- mood: one of (Chill, Energetic, Upbeat, Emotional, Funny, Relaxing, Intense)
- viral_potential: one of (Extremely High, High, Medium, Low)
- usage_count: estimated number of uses (integer)
- trend_score: trending score 1-100 (integer)
- hashtags: array of popular hashtags
- best_content_types: array of content categories this works for
- peak_usage_time: best posting hours (e.g., "18:00-22:00")

Focus on currently viral sounds with realistic data.`, maxSounds, platform, filter, where)
}

// BrandCollaborations researches brands running influencer programs that fit the
// profile's niche and audience on platform.
func (s *Service) BrandCollaborations(ctx context.Context, session *Session, platform string) (*BrandCollaborations, *common.Error) {
	platform, name, err := platformName(platform)
	if err != nil {
		return nil, toError(FeatureBrandCollaboration, err)
	}
	params := responsecache.Params{"platform": platform}
	return run(ctx, session, FeatureBrandCollaboration, nicheAndAudience, params, func(ctx context.Context, p profile.UserProfile) (BrandCollaborations, error) {
		list, answer, err := research.AskStructured[research.BrandList](ctx, s.research, research.Query{
			Question: brandQuestion(p, name),
		})
		if err != nil {
			return BrandCollaborations{}, err
		}
		brands := make([]research.Brand, 0, maxBrands)
		for _, b := range list.Brands {
			b.Name = cleanText(b.Name)
			if b.Name == "" {
				continue
			}
			b.FitReason = cleanText(b.FitReason)
			b.ValueRange = cleanText(b.ValueRange)
			b.Approach = cleanText(b.Approach)
			types := make([]string, 0, len(b.CollaborationTypes))
			for _, t := range b.CollaborationTypes {
				if t = cleanText(t); t != "" {
					types = append(types, t)
				}
			}
			b.CollaborationTypes = types
			brands = append(brands, b)
			if len(brands) == maxBrands {
				break
			}
		}
		if len(brands) == 0 {
			return BrandCollaborations{}, upstream.Malformed(upstream.ServicePerplexity, research.OperationQuery, "no brands in answer")
		}
		return BrandCollaborations{Platform: platform, Brands: brands, Citations: mergeCitations(answer)}, nil
	})
}

func brandQuestion(p profile.UserProfile, platform string) string {
	return fmt.Sprintf(`Find %d brands currently active in influencer marketing that would partner with %s content creators targeting %s on %s.

For each brand, provide exact details:
- name: exact brand name
- fit_reason: why they're good for this niche (1-2 sentences)
- collaboration_types: array of collaboration types (e.g., ["Sponsored Posts", "Product Reviews", "Affiliate Marketing"])
- value_range: estimated partnership value (e.g., "$100-$1,000" or "Product gifting + commission")
- approach: how to contact them (e.g., "Direct email contact", "Apply through influencer portal")

Focus on brands working with micro and mid-tier influencers.`, maxBrands, p.Niche, p.Audience, platform)
}

var (
	htmlTag     = regexp.MustCompile(`<[^>]*>`)
	markdownRun = regexp.MustCompile("[*_`#]{2,}")
	spaces      = regexp.MustCompile(`\s+`)
)

// cleanText strips HTML tags and markdown emphasis that research answers sometimes carry.
func cleanText(text string) string {
	text = htmlTag.ReplaceAllString(text, " ")
	text = markdownRun.ReplaceAllString(text, "")
	return strings.TrimSpace(spaces.ReplaceAllString(text, " "))
}
