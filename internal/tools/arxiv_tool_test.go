// In file: internal/tools/arxiv_tool_test.go
package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arxivFeedTwoEntries = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Attention Is All
 You Need</title>
    <summary>We propose a new simple network architecture, the Transformer, based solely on attention mechanisms.</summary>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
  </entry>
  <entry>
    <title>Second Paper</title>
    <summary>` + "PLACEHOLDER" + `</summary>
    <published>2020-01-01T00:00:00Z</published>
    <author><name>Jane Doe</name></author>
  </entry>
</feed>`

func newArxivFixture(t *testing.T, handler http.HandlerFunc) *ArxivTool {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	at := NewArxivTool()
	at.apiURL = srv.URL
	return at
}

func TestArxivToolRendersResults(t *testing.T) {
	longSummary := strings.Repeat("very long summary text ", 20) // > 200 runes
	feed := strings.Replace(arxivFeedTwoEntries, "PLACEHOLDER", longSummary, 1)

	var query string
	at := newArxivFixture(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("search_query")
		fmt.Fprint(w, feed)
	})

	res := at.Invoke(context.Background(), "transformers")
	require.True(t, res.OK, res.Content)
	assert.Equal(t, "all:transformers", query)
	assert.Contains(t, res.Content, "Found 2 papers for 'transformers'")
	// Newline-wrapped titles flatten to one line.
	assert.Contains(t, res.Content, "1. Attention Is All You Need")
	assert.Contains(t, res.Content, "Authors: Ashish Vaswani, Noam Shazeer")
	assert.Contains(t, res.Content, "Published: 2017-06-12")
	// Long summaries truncate with an ellipsis.
	assert.Contains(t, res.Content, "...")
}

func TestArxivToolEmptyQueryIsAFailure(t *testing.T) {
	at := NewArxivTool() // no server needed; the request is never made
	res := at.Invoke(context.Background(), "   ")
	assert.False(t, res.OK)
	assert.Contains(t, res.Content, "Please provide a search query")
}

func TestArxivToolNoResultsIsAFailure(t *testing.T) {
	at := newArxivFixture(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`)
	})

	res := at.Invoke(context.Background(), "nonexistent topic xyzzy")
	assert.False(t, res.OK)
	assert.Contains(t, res.Content, "No papers found for query: 'nonexistent topic xyzzy'")
}

func TestArxivToolUpstreamErrorIsAFailure(t *testing.T) {
	at := newArxivFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	res := at.Invoke(context.Background(), "anything")
	assert.False(t, res.OK)
	assert.Contains(t, res.Content, "arXiv search error")
}

func TestArxivToolResultCapInRequest(t *testing.T) {
	var maxResults string
	at := newArxivFixture(t, func(w http.ResponseWriter, r *http.Request) {
		maxResults = r.URL.Query().Get("max_results")
		fmt.Fprint(w, `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`)
	})

	at.Invoke(context.Background(), "anything")
	assert.Equal(t, "5", maxResults)
}
