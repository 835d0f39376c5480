// filepath: cmd/mediacatalog/main.go
package main

import (
	"mediacatalog/internal/cli"
)

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
