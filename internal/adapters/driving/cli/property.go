package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/imageapi"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

var (
	extractJSON bool

	addSets  []string
	addImage string

	listCriteria domain.FilterCriteria
	listJSON     bool

	updateSets []string
	deleteYes  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [message]",
	Short: "Extract property details from a message",
	Long: `Sends a broker message to the property service and prints the extracted
fields without saving them. With no argument the message is read from stdin.`,
	RunE: runExtract,
}

var addCmd = &cobra.Command{
	Use:   "add [message]",
	Short: "Extract, review and save a property",
	Long: `Extracts property details from a message, applies any --set edits and
saves the result. An image given with --image is uploaded after the save.

Examples:
  estateflow add "2 BHK for rent in Andheri West, 45k" --set furnishing=Furnished
  estateflow add "Shop for sale near station" --image shop.jpg`,
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved properties",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var showCmd = &cobra.Command{
	Use:   "show [property-id]",
	Short: "Show a saved property",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var updateCmd = &cobra.Command{
	Use:   "update [property-id]",
	Short: "Edit fields of a saved property",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [property-id]",
	Short: "Delete a saved property",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite [property-id]",
	Short: "Toggle the favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavorite,
}

var tagsCmd = &cobra.Command{
	Use:   "tags [property-id] [tag...]",
	Short: "Replace the tags of a property",
	Long:  `Replaces the tag list. Give no tags to clear it.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTags,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output the draft as JSON")

	addCmd.Flags().StringArrayVar(&addSets, "set", nil, "override an extracted field (field=value, repeatable)")
	addCmd.Flags().StringVar(&addImage, "image", "", "image file to attach after saving")

	listCmd.Flags().StringVar(&listCriteria.PropertyType, "type", "", "property type (Residential, Commercial, Land)")
	listCmd.Flags().StringVar(&listCriteria.TransactionType, "transaction", "", "transaction type (Rent, Sale)")
	listCmd.Flags().StringVar(&listCriteria.BHK, "bhk", "", "configuration, e.g. 2BHK")
	listCmd.Flags().StringVar(&listCriteria.Location, "location", "", "location contains")
	listCmd.Flags().StringVar(&listCriteria.Search, "search", "", "search message text and contact number")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")

	updateCmd.Flags().StringArrayVar(&updateSets, "set", nil, "field=value to change (repeatable)")
	_ = updateCmd.MarkFlagRequired("set")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(extractCmd, addCmd, listCmd, showCmd, updateCmd, deleteCmd, favoriteCmd, tagsCmd)
}

// messageArg joins the arguments, or reads stdin when there are none.
func messageArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	msg, err := readAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read message: %w", err)
	}
	return msg, nil
}

// applySets applies field=value edits to a draft.
func applySets(draft *domain.Draft, sets []string) error {
	for _, set := range sets {
		field, value, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("%w: --set %q is not field=value", domain.ErrInvalidInput, set)
		}
		if err := draft.Set(strings.TrimSpace(field), value); err != nil {
			return err
		}
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := requireProperties(); err != nil {
		return err
	}
	message, err := messageArg(cmd, args)
	if err != nil {
		return err
	}

	draft, err := propertyService.Extract(cmd.Context(), message)
	if err != nil {
		return friendly(err, domain.MsgExtractFailed)
	}

	if extractJSON {
		return printJSON(cmd, draft)
	}
	printDraft(cmd, draft)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := requireProperties(); err != nil {
		return err
	}
	message, err := messageArg(cmd, args)
	if err != nil {
		return err
	}

	// Stage the image first so a bad file fails before anything is saved.
	var image *domain.StagedImage
	if addImage != "" {
		image, err = imageapi.LoadFile(addImage)
		if err != nil {
			return friendly(err, domain.MsgUploadFailed)
		}
	}

	ctx := cmd.Context()
	draft, err := propertyService.Extract(ctx, message)
	if err != nil {
		return friendly(err, domain.MsgExtractFailed)
	}
	if err := applySets(draft, addSets); err != nil {
		return err
	}
	printDraft(cmd, draft)
	cmd.Println()

	outcome, err := propertyService.Save(ctx, draft, image)
	if err != nil {
		return friendly(err, domain.MsgSaveFailed)
	}
	cmd.Println(domain.MsgSaved)
	cmd.Printf("  ID: %s\n", outcome.ID)

	switch {
	case outcome.ImageErr != nil:
		cmd.PrintErrf("Warning: image not uploaded: %s\n", domain.UploadMessage(outcome.ImageErr))
	case outcome.Image != nil:
		cmd.Println(domain.MsgUploaded)
		waitForThumbnail(cmd, outcome.ID, outcome.Image)
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := requireProperties(); err != nil {
		return err
	}

	props, err := propertyService.List(cmd.Context(), listCriteria)
	if err != nil {
		return fmt.Errorf("failed to list properties: %w", err)
	}

	if listJSON {
		return printJSON(cmd, props)
	}
	if len(props) == 0 {
		if listCriteria.Active() {
			cmd.Println("No Properties Found. Try adjusting your filters.")
		} else {
			cmd.Println("No Properties Found. Add your first property.")
		}
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "PROPERTY", "DEAL", "LOCATION", "PRICE", "ADDED")
	for i := range props {
		p := &props[i]
		star := ""
		if p.IsFavorite {
			star = "★"
		}
		t.Row(star, p.ID, orDash(p.Headline()), orDash(string(p.TransactionType)),
			orDash(p.Location), orDash(p.Price), added(p))
	}
	cmd.Println(t.Render())
	cmd.Printf("%s properties\n", humanize.Comma(int64(len(props))))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := requireProperties(); err != nil {
		return err
	}

	p, err := propertyService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get property: %w", err)
	}

	cmd.Printf("Property: %s\n\n", p.ID)
	printDraft(cmd, &p.Draft)
	cmd.Println()
	cmd.Printf("  Favorite:  %s\n", yesNo(p.IsFavorite))
	cmd.Printf("  Tags:      %s\n", orDash(strings.Join(p.Tags, ", ")))
	cmd.Printf("  Added:     %s\n", added(p))
	cmd.Printf("  Image:     %s\n", yesNo(p.HasImage()))
	if p.RawMessage != "" {
		cmd.Printf("\n  Original message:\n    %s\n", p.RawMessage)
	}
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if err := requireProperties(); err != nil {
		return err
	}
	ctx := cmd.Context()

	p, err := propertyService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get property: %w", err)
	}
	draft := p.Draft
	if err := applySets(&draft, updateSets); err != nil {
		return err
	}

	updated, err := propertyService.Update(ctx, p.ID, &draft)
	if err != nil {
		return friendly(err, "Failed to update property. Please try again.")
	}
	cmd.Printf("Updated property %s\n\n", updated.ID)
	printDraft(cmd, &updated.Draft)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := requireProperties(); err != nil {
		return err
	}
	id := args[0]

	if !deleteYes && !confirm(cmd, fmt.Sprintf("Delete property %s?", id)) {
		cmd.Println("Cancelled.")
		return nil
	}

	if err := propertyService.Delete(cmd.Context(), id); err != nil {
		logger.Warn("delete %s: %v", id, err)
		return fmt.Errorf("failed to delete property: %w", err)
	}
	cmd.Printf("Deleted property %s\n", id)
	return nil
}

func runFavorite(cmd *cobra.Command, args []string) error {
	if err := requireProperties(); err != nil {
		return err
	}

	fav, err := propertyService.ToggleFavorite(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to update favorite: %w", err)
	}
	if fav {
		cmd.Printf("★ %s marked as favorite\n", args[0])
	} else {
		cmd.Printf("☆ %s removed from favorites\n", args[0])
	}
	return nil
}

func runTags(cmd *cobra.Command, args []string) error {
	if err := requireProperties(); err != nil {
		return err
	}

	tags, err := propertyService.SetTags(cmd.Context(), args[0], args[1:])
	if err != nil {
		return fmt.Errorf("failed to update tags: %w", err)
	}
	if len(tags) == 0 {
		cmd.Printf("Tags cleared for %s\n", args[0])
		return nil
	}
	cmd.Printf("Tags for %s: %s\n", args[0], strings.Join(tags, ", "))
	return nil
}

// printDraft prints the editable fields and the confidence score.
func printDraft(cmd *cobra.Command, draft *domain.Draft) {
	if draft.ConfidenceScore != nil {
		score := draft.Confidence()
		cmd.Printf("  Confidence: %.0f%% (%s)\n", score, domain.LevelFor(score))
	}
	for _, field := range domain.EditableFields() {
		cmd.Printf("  %-14s %s\n", domain.FieldLabel(field)+":", orDash(draft.Get(field)))
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func added(p *domain.Property) string {
	t := p.Created()
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// isNotFound reports whether err means the property does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
