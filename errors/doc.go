// Package errors provides the coded error type shared by xgen packages.
// Codes are machine-readable and stable; messages are for humans.
package errors
