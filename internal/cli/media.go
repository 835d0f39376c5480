// filepath: internal/cli/media.go
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"mediacatalog/internal/media"
	"mediacatalog/internal/models"

	"github.com/spf13/cobra"
)

// NewMediaCommand groups media management subcommands.
func NewMediaCommand() *cobra.Command {
	mediaCMD := &cobra.Command{
		Use:   "media",
		Short: "Manage media items",
	}

	mediaCMD.AddCommand(newMediaAddCommand())
	mediaCMD.AddCommand(newMediaListCommand())
	mediaCMD.AddCommand(newMediaDeleteCommand())

	return mediaCMD
}

func newMediaAddCommand() *cobra.Command {
	var mediaType string
	var name string

	cmd := &cobra.Command{
		Use:   "add <album-id> <file-or-url>",
		Short: "Add a media item to an album",
		Long:  "Local files are uploaded to the hosting endpoint first; URLs are cataloged as-is. The album cover and stats are updated in the same step.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			input, err := mediaInputFromArg(args[1], mediaType, name)
			if err != nil {
				return err
			}

			item, album, err := app.catalog.AddMedia(args[0], input)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s %s to album %s (now %d photos, %d videos)\n",
				item.Type, item.ID, album.ID, album.Stats.Photos, album.Stats.Videos)
			return nil
		},
	}

	cmd.Flags().StringVar(&mediaType, "type", "", "Media type for URL sources (image or video); guessed from the URL when omitted")
	cmd.Flags().StringVar(&name, "name", "", "Display name; defaults to the file or URL basename")
	return cmd
}

// mediaInputFromArg classifies the positional source argument.
func mediaInputFromArg(src, mediaType, name string) (models.MediaInput, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return models.RawFile{Path: src}, nil
	}

	t := models.MediaType(mediaType)
	if mediaType == "" {
		t = media.TypeFromURL(src)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("invalid media type %q (want image or video)", mediaType)
	}
	if name == "" {
		name = filepath.Base(strings.TrimRight(src, "/"))
	}
	return models.HostedMedia{Src: src, Type: t, Name: name}, nil
}

func newMediaListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <album-id>",
		Short: "List an album's media, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			items, err := app.catalog.GetAlbumMedia(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tNAME\tADDED\tSRC")
			for _, item := range items {
				added := time.UnixMilli(item.CreatedAt).Format("2006-01-02 15:04")
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Type, item.Name, added, item.Src)
			}
			return w.Flush()
		},
	}
}

func newMediaDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <album-id> <media-id>",
		Short: "Delete a media item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.close()

			album, err := app.catalog.DeleteMedia(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Deleted media %s from album %s (now %d photos, %d videos)\n",
				args[1], album.ID, album.Stats.Photos, album.Stats.Videos)
			return nil
		},
	}
}
