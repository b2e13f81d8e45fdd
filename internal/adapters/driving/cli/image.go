package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/imageapi"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

var imageDeleteYes bool

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage property images",
	Long:  `Show, upload or delete the image attached to a saved property.`,
}

var imageShowCmd = &cobra.Command{
	Use:   "show [property-id]",
	Short: "Show image details",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageShow,
}

var imageUploadCmd = &cobra.Command{
	Use:   "upload [property-id] [file]",
	Short: "Upload an image for a property",
	Long: `Uploads an image (at most 5MB) and waits for the service to create
its thumbnail. The file type is detected from its contents.`,
	Args: cobra.ExactArgs(2),
	RunE: runImageUpload,
}

var imageDeleteCmd = &cobra.Command{
	Use:   "delete [property-id]",
	Short: "Delete a property's image",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageDelete,
}

func init() {
	imageDeleteCmd.Flags().BoolVarP(&imageDeleteYes, "yes", "y", false, "skip the confirmation prompt")

	imageCmd.AddCommand(imageShowCmd, imageUploadCmd, imageDeleteCmd)
	rootCmd.AddCommand(imageCmd)
}

func runImageShow(cmd *cobra.Command, args []string) error {
	if err := requireImages(); err != nil {
		return err
	}

	info, err := imageService.Fetch(cmd.Context(), args[0])
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("property %s not found", args[0])
		}
		return fmt.Errorf("failed to get image: %w", err)
	}

	if !info.HasImage {
		cmd.Printf("No image for %s\n", args[0])
		return nil
	}
	cmd.Printf("Image for %s\n\n", args[0])
	cmd.Printf("  File ID:   %s\n", info.FileID)
	cmd.Printf("  Filename:  %s\n", orDash(info.Filename))
	cmd.Printf("  Image:     %s\n", imageRef(info.Image()))
	if info.HasThumbnail() {
		cmd.Printf("  Thumbnail: %s\n", imageRef(info.Thumbnail()))
	} else {
		cmd.Println("  Thumbnail: (not ready)")
	}
	return nil
}

func runImageUpload(cmd *cobra.Command, args []string) error {
	if err := requireImages(); err != nil {
		return err
	}
	id, path := args[0], args[1]

	image, err := imageapi.LoadFile(path)
	if err != nil {
		return friendly(err, domain.MsgUploadFailed)
	}
	cmd.Printf("Uploading %s (%s, %s)...\n", image.Filename, image.ContentType, humanize.IBytes(uint64(image.Size())))

	ack, err := imageService.Upload(cmd.Context(), id, image)
	if err != nil {
		return &userError{msg: domain.UploadMessage(err), err: err}
	}
	cmd.Println(domain.MsgUploaded)
	waitForThumbnail(cmd, id, ack)
	return nil
}

func runImageDelete(cmd *cobra.Command, args []string) error {
	if err := requireImages(); err != nil {
		return err
	}
	id := args[0]

	if !imageDeleteYes && !confirm(cmd, fmt.Sprintf("Delete the image of %s?", id)) {
		cmd.Println("Cancelled.")
		return nil
	}

	if err := imageService.Delete(cmd.Context(), id); err != nil {
		var detailed domain.DetailedError
		if errors.As(err, &detailed) && detailed.UserDetail() != "" {
			return &userError{msg: detailed.UserDetail(), err: err}
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}
	cmd.Printf("Deleted image of %s\n", id)
	return nil
}

// waitForThumbnail reports the thumbnail once the service has made it.
// A thumbnail that never appears is a warning, not a failure.
func waitForThumbnail(cmd *cobra.Command, id string, ack *domain.UploadResult) {
	if imageService == nil {
		return
	}
	info, err := imageService.AwaitThumbnail(cmd.Context(), id, ack)
	switch {
	case err == nil:
		cmd.Printf("  Thumbnail: %s\n", imageRef(info.Thumbnail()))
	case errors.Is(err, domain.ErrThumbnailPending):
		cmd.PrintErrln("Warning: thumbnail not ready yet; check later with \"estateflow image show " + id + "\"")
	default:
		cmd.PrintErrf("Warning: could not confirm thumbnail: %v\n", err)
	}
}

// imageRef prints a URL path as-is and shortens a data URI to its
// media type and decoded size.
func imageRef(ref string) string {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return orDash(ref)
	}
	mediaType, payload, _ := strings.Cut(rest, ",")
	mediaType = strings.TrimSuffix(mediaType, ";base64")
	size := base64.StdEncoding.DecodedLen(len(payload)) - strings.Count(payload, "=")
	return fmt.Sprintf("inline %s, %s", orDash(mediaType), humanize.IBytes(uint64(size)))
}
