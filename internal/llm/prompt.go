// In file: internal/llm/prompt.go
package llm

import (
	"encoding/json"
	"fmt"

	"voice-gateway/internal/tools"
)

const functionCallingTemplate = `You are a voice assistant that can either reply in natural language OR call a tool.

Available tools:
%s

Rules:
- If the user's request is best answered by a tool above, respond with ONLY a JSON object:
  {"function":"<tool_name>","arguments":{...}}
- Do NOT add any text before/after the JSON. No backticks.
- If a tool is NOT needed, reply normally in plain text.`

// BuildFunctionCallingPrompt renders the system instruction that teaches the
// model the tool-call protocol. The tool specs are embedded verbatim as
// indented JSON keyed by tool name; this is a one-way interface, nothing
// re-validates the model's calls against this schema at dispatch time.
func BuildFunctionCallingPrompt(specs []tools.Spec) (string, error) {
	table := make(map[string]tools.Spec, len(specs))
	for _, spec := range specs {
		table[spec.Name] = spec
	}
	encoded, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tool specs: %w", err)
	}
	return fmt.Sprintf(functionCallingTemplate, encoded), nil
}
