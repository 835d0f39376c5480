// filepath: internal/cli/album.go
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"mediacatalog/internal/models"

	"github.com/spf13/cobra"
)

// NewAlbumCommand groups album management subcommands.
func NewAlbumCommand() *cobra.Command {
	albumCMD := &cobra.Command{
		Use:   "album",
		Short: "Manage albums",
	}

	albumCMD.AddCommand(newAlbumCreateCommand())
	albumCMD.AddCommand(newAlbumListCommand())
	albumCMD.AddCommand(newAlbumDeleteCommand())
	albumCMD.AddCommand(newAlbumSetCoverCommand())
	albumCMD.AddCommand(newAlbumUnlockCoverCommand())

	return albumCMD
}

func newAlbumCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <id> <title>",
		Short: "Create an empty album",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			album, err := app.catalog.CreateAlbum(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Created album %s (%q)\n", album.ID, album.Title)
			return nil
		},
	}
}

func newAlbumListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all albums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			albums, err := app.catalog.GetAlbums()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPHOTOS\tVIDEOS\tCOVER")
			for _, album := range albums {
				cover := album.Cover
				if album.IsManualCover {
					cover += " (manual)"
				}
				if album.Cover == cfg.Catalog.PlaceholderCover || models.IsPlaceholder(album.Cover) {
					cover = "(placeholder)"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
					album.ID, album.Title, album.Stats.Photos, album.Stats.Videos, cover)
			}
			return w.Flush()
		},
	}
}

func newAlbumDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an album and all of its media records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.catalog.DeleteAlbum(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted album %s\n", args[0])
			return nil
		},
	}
}

func newAlbumSetCoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-cover <id> <file-or-url>",
		Short: "Lock the album cover to a manual choice",
		Long:  "Derives a preview from the given local file or URL and pins it as the cover. A pinned cover is not displaced by new media until unlock-cover.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			album, err := app.catalog.SetAlbumCover(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Album %s cover pinned to %s\n", album.ID, album.Cover)
			return nil
		},
	}
}

func newAlbumUnlockCoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock-cover <id>",
		Short: "Release a manual cover and recompute it from the newest media",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			album, err := app.catalog.UnlockCover(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Album %s cover unlocked, now %s\n", album.ID, album.Cover)
			return nil
		},
	}
}
