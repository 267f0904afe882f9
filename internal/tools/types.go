// In file: internal/tools/types.go

// Package tools defines the capability set of the voice assistant: a fixed
// registry of named tools, each taking a single string argument and returning
// a result-or-failure. The Spec types provide a machine-readable description
// of every tool that is advertised to the language model so it knows what it
// is allowed to call.
package tools

// Canonical tool names. Dispatch in the router is a closed switch over these
// constants; any other name (after alias resolution) is an unknown function.
const (
	NameCalculate = "calculate"
	NameWeather   = "get_weather"
	NameArxiv     = "search_arxiv"
)

// Result is the outcome of executing a tool.
//
// Tools never return Go errors and never panic: every failure mode (network
// trouble, empty input, nothing found) is reported as OK=false with a
// human-readable Content. Content is never empty on either path.
type Result struct {
	// OK reports whether the tool produced a usable answer.
	OK bool
	// Content is the answer on success, or a description of what went
	// wrong on failure.
	Content string
}

// Failure builds a failed Result with a descriptive message.
func Failure(msg string) Result {
	return Result{OK: false, Content: msg}
}

// Success builds a successful Result.
func Success(content string) Result {
	return Result{OK: true, Content: content}
}

// Spec is the static registry entry for a tool. It is defined once at process
// start and used only to advertise the tool's capabilities to the language
// model; argument presence is checked defensively per-tool at dispatch time,
// not validated against this schema.
type Spec struct {
	// Name is the canonical tool name, e.g. "get_weather".
	Name string `json:"-"`
	// Description tells the model what the tool does and when to use it.
	Description string `json:"description"`
	// Arguments maps argument names to their type, e.g. {"location": "string"}.
	Arguments map[string]string `json:"arguments"`
	// Required lists the argument names the model must always provide.
	Required []string `json:"required"`
}
