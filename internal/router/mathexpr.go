// In file: internal/router/mathexpr.go
package router

import (
	"regexp"
	"strings"
)

// This file implements the spoken-math normalizer: an ordered pipeline of
// total string->string rewrites that turns phrasing like "ten to the power of
// two" into the symbolic expression "10**2". The rule tables are data, so new
// phrasings (or another language) are a one-line addition.

// rewriteRule pairs a compiled pattern with its replacement.
type rewriteRule struct {
	re   *regexp.Regexp
	repl string
}

// wordRule builds a rule that matches the phrase on word boundaries so
// substrings inside other words are not corrupted. CJK characters are not
// word characters as far as regexp \b is concerned, so those phrases match as
// plain substrings instead.
func wordRule(phrase, repl string) rewriteRule {
	pattern := regexp.QuoteMeta(phrase)
	if isASCIIWord(rune(phrase[0])) {
		pattern = `\b` + pattern + `\b`
	}
	return rewriteRule{re: regexp.MustCompile(pattern), repl: repl}
}

func isASCIIWord(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

func compileRules(pairs [][2]string) []rewriteRule {
	rules := make([]rewriteRule, 0, len(pairs))
	for _, p := range pairs {
		rules = append(rules, wordRule(p[0], p[1]))
	}
	return rules
}

// Multi-word phrase substitutions, most specific first.
var phraseRules = compileRules([][2]string{
	{"open parenthesis", "("},
	{"close parenthesis", ")"},
	{"open bracket", "("},
	{"close bracket", ")"},
	{"raised to the power of", "**"},
	{"to the power of", "**"},
	{"multiplied by", "*"},
	{"times", "*"},
	{"divided by", "/"},
	{"divide by", "/"},
	{"all over", "/"},
	{"over", "/"},

	// Common Chinese phrasings.
	{"加上", "+"}, {"加", "+"},
	{"减去", "-"}, {"减", "-"},
	{"乘以", "*"}, {"乘", "*"},
	{"除以", "/"}, {"除", "/"},
})

// Single-word operator substitutions.
var singleWordRules = compileRules([][2]string{
	{"plus", "+"},
	{"minus", "-"},
	{"modulo", "%"},
	{"mod", "%"},
	{"squared", "**2"},
	{"cubed", "**3"},
})

// Spoken digits and round numbers, so "five plus three" evaluates instead of
// dissolving into whitespace.
var numberWordRules = compileRules([][2]string{
	{"zero", "0"}, {"one", "1"}, {"two", "2"}, {"three", "3"},
	{"four", "4"}, {"five", "5"}, {"six", "6"}, {"seven", "7"},
	{"eight", "8"}, {"nine", "9"}, {"ten", "10"}, {"eleven", "11"},
	{"twelve", "12"}, {"thirteen", "13"}, {"fourteen", "14"},
	{"fifteen", "15"}, {"sixteen", "16"}, {"seventeen", "17"},
	{"eighteen", "18"}, {"nineteen", "19"}, {"twenty", "20"},
	{"thirty", "30"}, {"forty", "40"}, {"fifty", "50"},
	{"sixty", "60"}, {"seventy", "70"}, {"eighty", "80"},
	{"ninety", "90"}, {"hundred", "100"}, {"thousand", "1000"},
})

// Filler phrases stripped to a single space. "what's" must run before "whats".
var noiseRules = compileRules([][2]string{
	{"what is", " "},
	{"what's", " "},
	{"whats", " "},
	{"result", " "},
	{"equals", " "},
	{"calculate", " "},
	{"compute", " "},
	{"请问", " "}, {"等于多少", " "}, {"结果是多少", " "},
	{"计算一下", " "}, {"帮我算", " "},
})

var (
	nonMathCharRe = regexp.MustCompile(`[^0-9.+\-*/%()\s]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	plusRunRe     = regexp.MustCompile(`\+{2,}`)
	minusRunRe    = regexp.MustCompile(`-{2,}`)
	slashRunRe    = regexp.MustCompile(`/{2,}`)

	// mathOperatorRe decides whether a normalized string is a usable
	// expression at all.
	mathOperatorRe = regexp.MustCompile(`\*\*|[+\-*/%^]`)
)

// NormalizeMathExpr converts a spoken/natural-language arithmetic phrase into
// a canonical symbolic expression string.
//
// The function is total: any input produces some output, possibly empty or
// operator-free. Judging whether the output is a usable expression is the
// caller's job (see HasMathOperator).
func NormalizeMathExpr(q string) string {
	s := strings.ToLower(q)

	for _, rule := range phraseRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	for _, rule := range singleWordRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	for _, rule := range numberWordRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	for _, rule := range noiseRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}

	// Keep only digits, decimals, operators and parentheses.
	s = nonMathCharRe.ReplaceAllString(s, " ")
	// The target syntax is whitespace-insensitive, so drop it entirely.
	s = whitespaceRe.ReplaceAllString(s, "")

	// Noise substitution can leave doubled operators behind; collapse them.
	// '*' runs stay untouched because "**" is the power operator.
	s = plusRunRe.ReplaceAllString(s, "+")
	s = minusRunRe.ReplaceAllString(s, "-")
	s = slashRunRe.ReplaceAllString(s, "/")
	s = strings.ReplaceAll(s, "**+", "**")
	return s
}

// HasMathOperator reports whether expr contains at least one arithmetic
// operator and is therefore worth sending to the calculator.
func HasMathOperator(expr string) bool {
	return mathOperatorRe.MatchString(expr)
}
