//go:build tools

package tools

// Pins the code generation tooling so go mod tidy keeps it versioned.
import (
	_ "github.com/vektra/mockery/v2"
)
