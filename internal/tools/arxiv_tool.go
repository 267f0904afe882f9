// In file: internal/tools/arxiv_tool.go
package tools

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// --- arXiv Search Tool Implementation ---

const (
	defaultArxivURL = "http://export.arxiv.org/api/query"

	arxivTimeout    = 10 * time.Second
	arxivMaxResults = 5
	summaryMaxRunes = 200
)

// ArxivTool queries the arXiv literature index and renders the top results
// with title, authors, publication date and a truncated summary.
type ArxivTool struct {
	apiURL     string
	httpClient *http.Client
}

// Statically verify that ArxivTool implements the Tool interface.
var _ Tool = (*ArxivTool)(nil)

func NewArxivTool() *ArxivTool {
	return &ArxivTool{
		apiURL: defaultArxivURL,
		httpClient: &http.Client{
			Timeout: arxivTimeout,
		},
	}
}

func (at *ArxivTool) Spec() Spec {
	return Spec{
		Name:        NameArxiv,
		Description: "Search arXiv for a topic and return a short snippet.",
		Arguments:   map[string]string{"query": "string"},
		Required:    []string{"query"},
	}
}

// atomFeed models the subset of the arXiv Atom response we care about.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

// Invoke searches arXiv sorted by relevance. An empty query and an empty
// result set are both reported failures with an explanatory message.
func (at *ArxivTool) Invoke(ctx context.Context, query string) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return Failure("Please provide a search query for arXiv papers.")
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(arxivMaxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, at.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return Failure(fmt.Sprintf("arXiv search error: %v", err))
	}
	req.Header.Set("User-Agent", "Voice-Gateway-Agent/1.0")

	resp, err := at.httpClient.Do(req)
	if err != nil {
		return Failure(fmt.Sprintf("arXiv search error: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Failure(fmt.Sprintf("arXiv search error: API returned non-200 status: %d", resp.StatusCode))
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return Failure(fmt.Sprintf("arXiv search error: %v", err))
	}
	if len(feed.Entries) == 0 {
		return Failure(fmt.Sprintf("No papers found for query: '%s'", query))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d papers for '%s':\n\n", len(feed.Entries), query)
	for i, entry := range feed.Entries {
		names := make([]string, 0, len(entry.Authors))
		for _, a := range entry.Authors {
			names = append(names, strings.TrimSpace(a.Name))
		}
		published := entry.Published
		if len(published) > 10 {
			published = published[:10] // keep the date part only
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, collapseSpace(entry.Title))
		fmt.Fprintf(&b, "   Authors: %s\n", strings.Join(names, ", "))
		fmt.Fprintf(&b, "   Published: %s\n", published)
		fmt.Fprintf(&b, "   Summary: %s\n\n", truncateSummary(entry.Summary))
	}
	return Success(strings.TrimSpace(b.String()))
}

// collapseSpace flattens the newline-wrapped text arXiv returns into one line.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateSummary(s string) string {
	s = collapseSpace(s)
	runes := []rune(s)
	if len(runes) <= summaryMaxRunes {
		return s
	}
	return string(runes[:summaryMaxRunes]) + "..."
}
