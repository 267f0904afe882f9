// In file: internal/router/extract.go
package router

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Call is a parsed tool invocation request recovered from a language model's
// raw output. Name is the model-supplied function name before alias
// resolution; Arguments holds the string form of every argument the model
// passed (empty map when omitted).
type Call struct {
	Name      string
	Arguments map[string]string
}

var (
	// fencedBlockRe matches ```...``` and ```json ...``` code fences that
	// wrap a JSON object.
	fencedBlockRe = regexp.MustCompile("(?si)```(?:json)?\\s*(\\{.*?\\})\\s*```")

	// callOpenerRe locates the start of an embedded function-call object.
	// The whitespace tolerance after '{' deliberately loosens the literal
	// `{"function"` match so pretty-printed payloads are still found.
	callOpenerRe = regexp.MustCompile(`\{\s*"function"`)
)

// ExtractCall scans an arbitrary text blob for an embedded function-call
// payload of the form {"function": "...", "arguments": {...}}.
//
// Strategies run in strict priority order, returning on the first success:
//  1. parse the whole trimmed string;
//  2. parse each triple-backtick fenced block, in order of appearance;
//  3. find the first function-call opener and brace-match the minimal
//     enclosing balanced object; if that substring does not parse, give up
//     without scanning further.
//
// Malformed input is never an error: (nil, false) simply means "no tool call
// present", the expected outcome for plain-language replies.
func ExtractCall(text string) (*Call, bool) {
	s := strings.TrimSpace(text)

	if call, ok := parseCall(s); ok {
		return call, true
	}

	for _, m := range fencedBlockRe.FindAllStringSubmatch(s, -1) {
		if call, ok := parseCall(strings.TrimSpace(m[1])); ok {
			return call, true
		}
	}

	if loc := callOpenerRe.FindStringIndex(s); loc != nil {
		depth := 0
		for j := loc[0]; j < len(s); j++ {
			switch s[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					call, ok := parseCall(s[loc[0] : j+1])
					if ok {
						return call, true
					}
					// Balanced but unparseable: stop scanning.
					return nil, false
				}
			}
		}
		// Unbalanced braces: never reached depth 0.
	}

	return nil, false
}

// parseCall attempts to interpret s as a single JSON object carrying a
// "function" field. Objects without that field are rejected even when they
// are valid JSON.
func parseCall(s string) (*Call, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}
	nameRaw, ok := raw["function"]
	if !ok {
		return nil, false
	}
	var name string
	if err := json.Unmarshal(nameRaw, &name); err != nil {
		return nil, false
	}

	call := &Call{Name: name, Arguments: make(map[string]string)}
	if argsRaw, ok := raw["arguments"]; ok {
		var args map[string]any
		if err := json.Unmarshal(argsRaw, &args); err == nil {
			for key, value := range args {
				call.Arguments[key] = stringifyArgument(value)
			}
		}
	}
	return call, true
}

// stringifyArgument converts whatever JSON value the model produced into the
// string form the tools consume. Models routinely send numbers where a string
// was asked for, so this is deliberately forgiving.
func stringifyArgument(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == math.Trunc(value) && math.Abs(value) < 1e15 {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
