// Package codegen renders JavaScript, React and HTML snippets that drive a
// Spline scene through @splinetool/runtime.
//
// Every function is pure: it formats text from its arguments and performs no
// I/O. Unknown actions and formats are reported as ErrUnsupportedAction and
// ErrUnsupportedFormat.
package codegen
