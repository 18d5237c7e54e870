//go:build tools
// +build tools

// Package tools pins Go-based tools invoked via `go generate` (mockgen)
// as explicit module dependencies.
package docsync

import (
	_ "go.uber.org/mock/mockgen"
)
