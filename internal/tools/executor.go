// In file: internal/tools/executor.go
package tools

import "context"

// Tool is the standard interface for any capability the router can dispatch to.
//
// By having all tools implement this interface, the system can manage and
// execute them in a standardized, plug-and-play fashion without needing to
// know the specific details of each tool's implementation.
type Tool interface {
	// Spec returns the tool's static registry entry, which is provided to
	// the language model so it understands the tool's name and arguments.
	Spec() Spec

	// Invoke runs the actual logic of the tool with its single string
	// argument. Implementations must be total: any failure is reported
	// through the Result, never as a panic. Outbound network calls must
	// respect ctx and carry their own bounded timeout.
	Invoke(ctx context.Context, arg string) Result
}
