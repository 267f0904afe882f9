// In file: internal/router/config.go
package router

// Rules is the immutable configuration for the router's alias resolution and
// rule-based fallback. It is constructed once at startup (defaults below,
// optionally overlaid from config.yaml) and never mutated afterwards.
type Rules struct {
	// Aliases maps alternative/misremembered tool names to canonical
	// registry names, so a model calling "recent_papers" still lands on
	// search_arxiv instead of producing an unknown-function error.
	Aliases map[string]string `yaml:"aliases"`

	// WeatherKeywords trigger the weather rule when found in the user's
	// utterance (case-insensitive substring match).
	WeatherKeywords []string `yaml:"weather_keywords"`

	// SearchKeywords trigger the literature-search rule.
	SearchKeywords []string `yaml:"search_keywords"`
}

// DefaultRules returns the built-in rule tables. English and Chinese
// triggers, matching the phrasing the normalizer understands.
func DefaultRules() Rules {
	return Rules{
		Aliases: map[string]string{
			"recent_papers": "search_arxiv",
			"search_papers": "search_arxiv",
			"find_papers":   "search_arxiv",
			"arxiv_search":  "search_arxiv",
		},
		WeatherKeywords: []string{
			"weather", "forecast", "temperature",
			"下雨", "天气", "气温", "预报",
		},
		SearchKeywords: []string{
			"arxiv", "paper", "papers", "literature",
			"recent research", "latest research",
			"论文", "检索", "文献", "最近研究",
		},
	}
}

// Merge overlays any non-empty fields from other onto r and returns the
// result. Used to apply config.yaml overrides on top of the defaults.
func (r Rules) Merge(other Rules) Rules {
	merged := r
	if len(other.Aliases) > 0 {
		merged.Aliases = other.Aliases
	}
	if len(other.WeatherKeywords) > 0 {
		merged.WeatherKeywords = other.WeatherKeywords
	}
	if len(other.SearchKeywords) > 0 {
		merged.SearchKeywords = other.SearchKeywords
	}
	return merged
}
