// In file: internal/router/router.go

// Package router decides what to do with a language model's free-text output:
// treat it as a natural-language reply, or recognize an embedded tool call,
// normalize it and dispatch it to one of the registered tools. When the model
// output carries no tool call, keyword/regex heuristics over the original
// user utterance get a second chance to trigger a tool.
package router

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"voice-gateway/internal/tools"
)

var (
	// weatherPlaceRe pulls a location out of "weather in/at/for <place>".
	weatherPlaceRe = regexp.MustCompile(`weather\s+(?:in|at|for)\s+([a-zA-Z\s,]+)`)
	// timeOfDayRe strips trailing time words from an extracted place.
	timeOfDayRe = regexp.MustCompile(`\b(today|tomorrow|now|tonight|morning|afternoon|evening|night)\b`)
)

// Router produces the final reply text from a model output and the original
// user utterance. It is stateless with respect to request data: the registry
// and rules are read-only after construction, so a single Router is safe for
// concurrent use across requests.
type Router struct {
	registry *tools.Registry
	rules    Rules
}

func New(registry *tools.Registry, rules Rules) *Router {
	return &Router{registry: registry, rules: rules}
}

// Route returns the reply for this exchange and whether anything matched.
//
// The model output is checked for a structured tool call first; if one is
// found it is dispatched and the rule fallback never runs. Otherwise the
// heuristics run over the original utterance. matched=false means neither
// path produced anything and the caller should fall back to the raw model
// text as the reply.
func (r *Router) Route(ctx context.Context, modelOutput, utterance string) (reply string, matched bool) {
	if call, ok := ExtractCall(modelOutput); ok {
		return r.dispatch(ctx, call), true
	}
	return r.routeByRules(ctx, utterance)
}

// dispatch resolves the call's name through the alias table and invokes the
// matching tool. It always returns a reply string and never propagates a
// fault: the deferred recover is a last-resort safety net on top of the tool
// contract that implementations do not panic.
func (r *Router) dispatch(ctx context.Context, call *Call) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			reply = fmt.Sprintf("Error: Could not process function call. Details: %v", rec)
		}
	}()

	name := call.Name
	if canonical, ok := r.rules.Aliases[name]; ok {
		name = canonical
	}

	// Closed dispatch: only the known tool names select an argument key.
	// Missing arguments default to the empty string; each tool defines its
	// own behavior for that (the weather tool falls back to a default
	// location, the others report a failure).
	var arg string
	switch name {
	case tools.NameCalculate:
		arg = call.Arguments["expression"]
	case tools.NameWeather:
		arg = call.Arguments["location"]
	case tools.NameArxiv:
		arg = call.Arguments["query"]
	default:
		return fmt.Sprintf("Error: Unknown function '%s'", name)
	}

	log.Printf("🛠️ Dispatching tool call: %s(%q)", name, arg)
	return r.invoke(ctx, name, arg)
}

// routeByRules applies the keyword/regex heuristics to the raw user
// utterance. Math detection runs first: arithmetic phrasing is a stronger,
// lower-ambiguity signal than a single keyword, and must not be shadowed by
// an utterance that happens to also contain a weather word.
func (r *Router) routeByRules(ctx context.Context, utterance string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	if expr := NormalizeMathExpr(utterance); expr != "" && HasMathOperator(expr) {
		log.Printf("🧮 Rule match: math expression %q", expr)
		return r.invoke(ctx, tools.NameCalculate, expr), true
	}

	if containsAny(lower, r.rules.WeatherKeywords) {
		place := extractWeatherPlace(lower)
		log.Printf("🌦️ Rule match: weather, place=%q", place)
		return r.invoke(ctx, tools.NameWeather, place), true
	}

	if containsAny(lower, r.rules.SearchKeywords) {
		log.Printf("📚 Rule match: literature search")
		return r.invoke(ctx, tools.NameArxiv, strings.TrimSpace(utterance)), true
	}

	return "", false
}

// invoke runs a registered tool and formats its outcome into reply text.
func (r *Router) invoke(ctx context.Context, name, arg string) string {
	tool, ok := r.registry.Get(name)
	if !ok {
		return fmt.Sprintf("Error: Unknown function '%s'", name)
	}
	result := tool.Invoke(ctx, arg)
	if result.OK {
		return result.Content
	}
	return fmt.Sprintf("Error from %s: %s", name, result.Content)
}

// extractWeatherPlace recovers a location from "weather in/at/for <place>"
// and strips trailing time-of-day words. An empty result is acceptable; the
// weather tool substitutes its configured default location.
func extractWeatherPlace(lowerUtterance string) string {
	m := weatherPlaceRe.FindStringSubmatch(lowerUtterance)
	if m == nil {
		return ""
	}
	place := timeOfDayRe.ReplaceAllString(strings.TrimSpace(m[1]), "")
	return strings.Join(strings.Fields(place), " ")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
