package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwcli/internal/connectors/google/slides"
)

var slidesCmd = &cobra.Command{
	Use:   "slides",
	Short: "Work with Google Slides",
}

var slidesGetCmd = &cobra.Command{
	Use:   "get <presentation-id>",
	Short: "List slides and their text",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlidesGet,
}

var slidesCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a presentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlidesCreate,
}

var slidesAddCmd = &cobra.Command{
	Use:   "add-slide <presentation-id>",
	Short: "Append a slide",
	Long:  "Append a slide using a predefined layout: " + strings.Join(slides.Layouts, ", "),
	Args:  cobra.ExactArgs(1),
	RunE:  runSlidesAdd,
}

var slidesDeleteCmd = &cobra.Command{
	Use:   "delete-slide <presentation-id> <slide-id>",
	Short: "Delete a slide",
	Args:  cobra.ExactArgs(2),
	RunE:  runSlidesDelete,
}

var slidesLayout string

func init() {
	slidesAddCmd.Flags().StringVar(&slidesLayout, "layout", slides.DefaultLayout, "predefined layout")

	addAccountFlag(slidesCmd)
	slidesCmd.AddCommand(slidesGetCmd)
	slidesCmd.AddCommand(slidesCreateCmd)
	slidesCmd.AddCommand(slidesAddCmd)
	slidesCmd.AddCommand(slidesDeleteCmd)
	rootCmd.AddCommand(slidesCmd)
}

func slidesContext(cmd *cobra.Command) (*Services, string, *printer, error) {
	s, err := getServices()
	if err != nil {
		return nil, "", nil, err
	}
	if s.Slides == nil {
		return nil, "", nil, errors.New("slides service not configured")
	}
	email, err := resolveAccount(s)
	if err != nil {
		return nil, "", nil, err
	}
	p, err := newPrinter(cmd, s)
	if err != nil {
		return nil, "", nil, err
	}
	return s, email, p, nil
}

func runSlidesGet(cmd *cobra.Command, args []string) error {
	s, email, p, err := slidesContext(cmd)
	if err != nil {
		return err
	}

	pres, err := s.Slides.Get(cmd.Context(), email, args[0])
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(pres.Slides))
	for _, slide := range pres.Slides {
		rows = append(rows, []string{strconv.Itoa(slide.Index + 1), slide.ID, strings.Join(slide.Texts, " | ")})
	}
	return p.table(pres, []string{"#", "SLIDE ID", "TEXT"}, rows)
}

func runSlidesCreate(cmd *cobra.Command, args []string) error {
	s, email, p, err := slidesContext(cmd)
	if err != nil {
		return err
	}

	pres, err := s.Slides.Create(cmd.Context(), email, args[0])
	if err != nil {
		return err
	}
	return p.status(pres, "Created presentation %s (%s)", pres.Title, pres.ID)
}

func runSlidesAdd(cmd *cobra.Command, args []string) error {
	s, email, p, err := slidesContext(cmd)
	if err != nil {
		return err
	}

	id, err := s.Slides.AddSlide(cmd.Context(), email, args[0], slidesLayout)
	if err != nil {
		return err
	}
	return p.status(map[string]string{"presentationId": args[0], "slideId": id}, "Added slide %s", id)
}

func runSlidesDelete(cmd *cobra.Command, args []string) error {
	s, email, p, err := slidesContext(cmd)
	if err != nil {
		return err
	}

	if err := s.Slides.DeleteSlide(cmd.Context(), email, args[0], args[1]); err != nil {
		return err
	}
	return p.status(map[string]string{"deleted": args[1]}, "Deleted slide %s", args[1])
}
