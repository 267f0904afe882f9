// In file: internal/router/extract_test.go
package router

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCallWholeString(t *testing.T) {
	call, ok := ExtractCall(`{"function":"calculate","arguments":{"expression":"2+2"}}`)
	require.True(t, ok)
	assert.Equal(t, "calculate", call.Name)
	assert.Equal(t, "2+2", call.Arguments["expression"])
}

func TestExtractCallWholeStringWithWhitespace(t *testing.T) {
	call, ok := ExtractCall("  \n {\"function\":\"get_weather\",\"arguments\":{\"location\":\"Paris\"}} \n ")
	require.True(t, ok)
	assert.Equal(t, "get_weather", call.Name)
	assert.Equal(t, "Paris", call.Arguments["location"])
}

func TestExtractCallFencedBlock(t *testing.T) {
	text := "Sure, here you go:\n```json\n{\"function\":\"search_arxiv\",\"arguments\":{\"query\":\"quantum computing\"}}\n```\nHope that helps!"
	call, ok := ExtractCall(text)
	require.True(t, ok)
	assert.Equal(t, "search_arxiv", call.Name)
	assert.Equal(t, "quantum computing", call.Arguments["query"])
}

func TestExtractCallUntaggedFence(t *testing.T) {
	text := "```\n{\"function\":\"calculate\",\"arguments\":{\"expression\":\"1+1\"}}\n```"
	call, ok := ExtractCall(text)
	require.True(t, ok)
	assert.Equal(t, "calculate", call.Name)
}

func TestExtractCallSkipsBadFenceFindsGoodOne(t *testing.T) {
	text := "```json\n{\"not\":\"a call\"}\n```\nand then\n```json\n{\"function\":\"calculate\",\"arguments\":{\"expression\":\"3*3\"}}\n```"
	call, ok := ExtractCall(text)
	require.True(t, ok)
	assert.Equal(t, "3*3", call.Arguments["expression"])
}

func TestExtractCallBraceMatchingInProse(t *testing.T) {
	text := `Here's the call: {"function":"calculate","arguments":{"expression":"2+2"}} thanks`
	call, ok := ExtractCall(text)
	require.True(t, ok)
	assert.Equal(t, "calculate", call.Name)
	assert.Equal(t, map[string]string{"expression": "2+2"}, call.Arguments)
}

func TestExtractCallWhitespaceTolerantOpener(t *testing.T) {
	text := "I will call { \"function\": \"get_weather\", \"arguments\": { \"location\": \"Oslo\" } } now"
	call, ok := ExtractCall(text)
	require.True(t, ok)
	assert.Equal(t, "get_weather", call.Name)
	assert.Equal(t, "Oslo", call.Arguments["location"])
}

func TestExtractCallUnbalancedBraces(t *testing.T) {
	_, ok := ExtractCall(`something {"function":"calculate","arguments":{"expression":"2+2"`)
	assert.False(t, ok)
}

func TestExtractCallMissingFunctionField(t *testing.T) {
	_, ok := ExtractCall(`{"name":"calculate","arguments":{"expression":"2+2"}}`)
	assert.False(t, ok)
}

func TestExtractCallNonObjectJSON(t *testing.T) {
	for _, text := range []string{`[1,2,3]`, `"function"`, `42`, `null`, `true`} {
		_, ok := ExtractCall(text)
		assert.False(t, ok, "input: %s", text)
	}
}

func TestExtractCallPlainLanguage(t *testing.T) {
	for _, text := range []string{
		"",
		"The weather in Toronto is lovely today.",
		"I function well in the mornings { but not at night",
		"{}",
	} {
		_, ok := ExtractCall(text)
		assert.False(t, ok, "input: %s", text)
	}
}

func TestExtractCallMissingArguments(t *testing.T) {
	call, ok := ExtractCall(`{"function":"get_weather"}`)
	require.True(t, ok)
	assert.Equal(t, "get_weather", call.Name)
	assert.Empty(t, call.Arguments)
}

func TestExtractCallStringifiesNonStringArguments(t *testing.T) {
	call, ok := ExtractCall(`{"function":"calculate","arguments":{"expression":42,"flag":true,"ratio":1.5,"nothing":null}}`)
	require.True(t, ok)
	assert.Equal(t, "42", call.Arguments["expression"])
	assert.Equal(t, "true", call.Arguments["flag"])
	assert.Equal(t, "1.5", call.Arguments["ratio"])
	assert.Equal(t, "", call.Arguments["nothing"])
}

// Random byte strings must never produce a panic, only "no call found" or a
// well-formed Call.
func TestExtractCallNeverPanicsOnRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		buf := make([]byte, rng.Intn(256))
		for j := range buf {
			buf[j] = byte(rng.Intn(256))
		}
		assert.NotPanics(t, func() {
			ExtractCall(string(buf))
		})
	}
}
