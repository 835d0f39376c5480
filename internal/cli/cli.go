// filepath: internal/cli/cli.go
package cli

import (
	"fmt"
	"os"
)

// Execute runs the root command based on os.Args. Called by main.main().
func Execute() {
	rootCmd := NewRootCMD()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
