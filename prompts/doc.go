// Package prompts provides canned MCP prompts that walk a model through
// common Spline tasks using the tool catalog.
//
// Prompt arguments are strings on the wire. Structured arguments such as
// create-basic-scene's objects are JSON encoded; numbers and booleans are
// parsed. A missing required argument or a value outside its allowed set is
// returned as an error wrapping ErrInvalidArguments.
package prompts
