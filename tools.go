//go:build tools

// Package cosmokit pins the tools invoked through go generate, such as mockgen,
// so that go.mod and go.sum track them.
package cosmokit

import (
	_ "go.uber.org/mock/mockgen"
)
