// filepath: internal/cli/resync.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResyncCommand rebuilds album presentation state from stored media.
func NewResyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resync [album-id]",
		Short: "Recompute covers, backgrounds and stats",
		Long:  "Rebuilds an album's cover, background rotation and stats from its stored media. Without an album id, every album is resynced.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			if len(args) == 1 {
				album, err := app.catalog.ResyncAlbum(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Resynced album %s (%d photos, %d videos)\n",
					album.ID, album.Stats.Photos, album.Stats.Videos)
				return nil
			}

			if err := app.catalog.ResyncAll(); err != nil {
				return err
			}
			fmt.Println("Resynced all albums")
			return nil
		},
	}
}
