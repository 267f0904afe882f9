// In file: internal/router/router_test.go
package router

import (
	"context"
	"math/rand"
	"testing"

	"voice-gateway/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTool records invocations and returns a canned result.
type stubTool struct {
	spec    tools.Spec
	result  tools.Result
	lastArg string
	calls   int
}

func (s *stubTool) Spec() tools.Spec { return s.spec }

func (s *stubTool) Invoke(_ context.Context, arg string) tools.Result {
	s.calls++
	s.lastArg = arg
	return s.result
}

// panicTool violates the tool contract on purpose, to exercise the router's
// last-resort recover.
type panicTool struct{ spec tools.Spec }

func (p *panicTool) Spec() tools.Spec { return p.spec }

func (p *panicTool) Invoke(context.Context, string) tools.Result {
	panic("tool misbehaved")
}

type fixture struct {
	router  *Router
	weather *stubTool
	arxiv   *stubTool
}

func newFixture() *fixture {
	weather := &stubTool{
		spec:   tools.Spec{Name: tools.NameWeather, Arguments: map[string]string{"location": "string"}},
		result: tools.Success("Sunny, 21°C"),
	}
	arxiv := &stubTool{
		spec:   tools.Spec{Name: tools.NameArxiv, Arguments: map[string]string{"query": "string"}},
		result: tools.Success("Found 2 papers"),
	}
	registry := tools.NewRegistry()
	registry.Register(tools.NewCalculatorTool())
	registry.Register(weather)
	registry.Register(arxiv)
	return &fixture{
		router:  New(registry, DefaultRules()),
		weather: weather,
		arxiv:   arxiv,
	}
}

func TestRouteDispatchesParsedCall(t *testing.T) {
	f := newFixture()
	reply, matched := f.router.Route(context.Background(), `{"function":"calculate","arguments":{"expression":"2+2"}}`, "whatever the user said")
	require.True(t, matched)
	assert.Equal(t, "4", reply)
}

func TestRouteDispatchesCallWrappedInProse(t *testing.T) {
	f := newFixture()
	out := `Let me check that for you: {"function":"get_weather","arguments":{"location":"Paris"}} one moment`
	reply, matched := f.router.Route(context.Background(), out, "what's the weather in Paris")
	require.True(t, matched)
	assert.Equal(t, "Sunny, 21°C", reply)
	assert.Equal(t, "Paris", f.weather.lastArg)
}

func TestRouteAliasResolution(t *testing.T) {
	f := newFixture()
	reply, matched := f.router.Route(context.Background(), `{"function":"recent_papers","arguments":{"query":"diffusion models"}}`, "")
	require.True(t, matched)
	assert.Equal(t, "Found 2 papers", reply)
	assert.Equal(t, "diffusion models", f.arxiv.lastArg)

	// The canonical name dispatches to the same tool with identical arguments.
	_, matched = f.router.Route(context.Background(), `{"function":"search_arxiv","arguments":{"query":"diffusion models"}}`, "")
	require.True(t, matched)
	assert.Equal(t, "diffusion models", f.arxiv.lastArg)
	assert.Equal(t, 2, f.arxiv.calls)
}

func TestRouteUnknownFunction(t *testing.T) {
	f := newFixture()
	reply, matched := f.router.Route(context.Background(), `{"function":"X","arguments":{}}`, "")
	require.True(t, matched)
	assert.Equal(t, "Error: Unknown function 'X'", reply)
}

func TestRouteToolFailureFormatting(t *testing.T) {
	f := newFixture()
	f.weather.result = tools.Failure("timeout")
	reply, matched := f.router.Route(context.Background(), `{"function":"get_weather","arguments":{"location":"Berlin"}}`, "")
	require.True(t, matched)
	assert.Equal(t, "Error from get_weather: timeout", reply)
}

func TestRouteMissingArgumentDefaultsToEmpty(t *testing.T) {
	f := newFixture()
	_, matched := f.router.Route(context.Background(), `{"function":"get_weather"}`, "")
	require.True(t, matched)
	assert.Equal(t, "", f.weather.lastArg)
	assert.Equal(t, 1, f.weather.calls)
}

func TestRoutePanickingToolIsContained(t *testing.T) {
	registry := tools.NewRegistry()
	registry.Register(&panicTool{spec: tools.Spec{Name: tools.NameCalculate}})
	r := New(registry, DefaultRules())

	reply, matched := r.Route(context.Background(), `{"function":"calculate","arguments":{"expression":"1"}}`, "")
	require.True(t, matched)
	assert.Contains(t, reply, "Error: Could not process function call. Details:")
	assert.Contains(t, reply, "tool misbehaved")
}

func TestRouteCallWinsOverRules(t *testing.T) {
	// When the model output carries a call, the rule fallback never runs,
	// even if the utterance would have matched a different tool.
	f := newFixture()
	reply, matched := f.router.Route(context.Background(), `{"function":"calculate","arguments":{"expression":"1+1"}}`, "what's the weather in Oslo")
	require.True(t, matched)
	assert.Equal(t, "2", reply)
	assert.Equal(t, 0, f.weather.calls)
}

func TestRuleFallbackMath(t *testing.T) {
	f := newFixture()
	reply, matched := f.router.Route(context.Background(), "Sure, let me think about that.", "what is five plus three")
	require.True(t, matched)
	assert.Equal(t, "8", reply)
}

func TestRuleFallbackMathPrecedesWeather(t *testing.T) {
	// Arithmetic phrasing is the stronger signal; a stray weather word must
	// not shadow it.
	f := newFixture()
	reply, matched := f.router.Route(context.Background(), "Hmm.", "what is five plus three weather")
	require.True(t, matched)
	assert.Equal(t, "8", reply)
	assert.Equal(t, 0, f.weather.calls)
}

func TestRuleFallbackWeatherWithPlace(t *testing.T) {
	f := newFixture()
	reply, matched := f.router.Route(context.Background(), "I cannot help with that.", "How is the weather in New York today?")
	require.True(t, matched)
	assert.Equal(t, "Sunny, 21°C", reply)
	assert.Equal(t, "new york", f.weather.lastArg)
}

func TestRuleFallbackWeatherWithoutPlace(t *testing.T) {
	// No "weather in <place>" pattern: the tool gets an empty location and
	// applies its own default.
	f := newFixture()
	_, matched := f.router.Route(context.Background(), "...", "is the temperature dropping?")
	require.True(t, matched)
	assert.Equal(t, "", f.weather.lastArg)
	assert.Equal(t, 1, f.weather.calls)
}

func TestRuleFallbackArxiv(t *testing.T) {
	f := newFixture()
	utterance := "find me recent research on protein folding"
	reply, matched := f.router.Route(context.Background(), "no idea", utterance)
	require.True(t, matched)
	assert.Equal(t, "Found 2 papers", reply)
	assert.Equal(t, utterance, f.arxiv.lastArg)
}

func TestRouteNoMatch(t *testing.T) {
	f := newFixture()
	reply, matched := f.router.Route(context.Background(), "The capital of France is Paris.", "what is the capital of France")
	assert.False(t, matched)
	assert.Equal(t, "", reply)
	assert.Equal(t, 0, f.weather.calls)
	assert.Equal(t, 0, f.arxiv.calls)
}

// The router must never panic, whatever byte soup the model or the
// transcriber produces.
func TestRouteNeverPanicsOnRandomInput(t *testing.T) {
	f := newFixture()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		modelOut := randomBytes(rng, 200)
		utterance := randomBytes(rng, 120)
		assert.NotPanics(t, func() {
			f.router.Route(context.Background(), modelOut, utterance)
		})
	}
}

func randomBytes(rng *rand.Rand, maxLen int) string {
	buf := make([]byte, rng.Intn(maxLen))
	for i := range buf {
		buf[i] = byte(rng.Intn(256))
	}
	return string(buf)
}
