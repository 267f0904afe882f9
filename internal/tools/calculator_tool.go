// In file: internal/tools/calculator_tool.go
package tools

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"
)

// --- Calculator Tool Implementation ---

// govaluate cannot tokenize a unary minus glued to a preceding operator:
// "0/-1" trips on the two-character token "/-". A space after the operator
// makes the minus parse as a prefix again ("0/ -1" evaluates fine).
var unaryMinusRe = regexp.MustCompile(`([+\-*/%(])\s*-`)

// CalculatorTool evaluates a symbolic arithmetic expression such as "2+2",
// "10**2" or "(1+2)/4". The expression syntax is whatever govaluate accepts:
// the usual +, -, *, /, % operators, ** for exponentiation, and parentheses.
type CalculatorTool struct{}

// Statically verify that CalculatorTool implements the Tool interface.
var _ Tool = (*CalculatorTool)(nil)

func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

// Spec describes the tool to the language model. The model is told to pass a
// single "expression" string in standard math syntax; spoken phrasing is
// normalized before it ever reaches this tool.
func (ct *CalculatorTool) Spec() Spec {
	return Spec{
		Name:        NameCalculate,
		Description: "Evaluate a mathematical expression using standard math syntax.",
		Arguments:   map[string]string{"expression": "string"},
		Required:    []string{"expression"},
	}
}

// Invoke evaluates the expression and formats the result:
//   - integers render with no decimal point ("4/2" -> "2")
//   - everything else rounds half-up to exactly two decimals ("1/3" -> "0.33")
//   - a negative zero normalizes to "0.00"
//
// The evaluator is wrapped in a recover so a pathological expression can never
// take down the request; the tool contract is that all failures come back as
// a Result.
func (ct *CalculatorTool) Invoke(_ context.Context, expression string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(fmt.Sprintf("Math calculation error: %v", r))
		}
	}()

	expression = strings.TrimSpace(expression)
	if expression == "" {
		return Failure("Please provide an arithmetic expression to evaluate.")
	}
	expression = unaryMinusRe.ReplaceAllString(expression, "$1 -")

	eval, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return Failure(fmt.Sprintf("Math calculation error: %v", err))
	}
	out, err := eval.Evaluate(nil)
	if err != nil {
		return Failure(fmt.Sprintf("Math calculation error: %v", err))
	}
	value, ok := out.(float64)
	if !ok {
		return Failure(fmt.Sprintf("Math calculation error: expression did not produce a number (got %T)", out))
	}
	// Division by zero comes back as Inf rather than an error.
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Failure("Math calculation error: result is not a finite number.")
	}

	return Success(formatNumber(value))
}

// formatNumber renders the numeric result the way a person would say it.
func formatNumber(value float64) string {
	// "Almost integer" check eliminates tiny float artifacts like 3.9999999999.
	if math.Abs(value-math.Round(value)) < 1e-9 {
		return strconv.FormatInt(int64(math.Round(value)), 10)
	}
	// decimal.Round is round-half-away-from-zero, the same tie-breaking the
	// half-up contract asks for.
	s := decimal.NewFromFloat(value).Round(2).StringFixed(2)
	if s == "-0.00" {
		s = "0.00"
	}
	return s
}
