// filepath: internal/cli/root.go
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCMD builds the command tree. Configuration is loaded once in the
// persistent pre-run so every subcommand sees the same resolved settings.
func NewRootCMD() *cobra.Command {
	rootCMD := &cobra.Command{
		Use:   "mediacatalog",
		Short: "Media catalog",
		Long:  "A local media catalog for photo and video albums with derived covers and background previews.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(cmd)
		},
	}

	registerGlobalFlags(rootCMD)

	rootCMD.AddCommand(NewAlbumCommand())
	rootCMD.AddCommand(NewMediaCommand())
	rootCMD.AddCommand(NewResyncCommand())

	return rootCMD
}
