package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwcli/internal/connectors/google/docs"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Work with Google Docs",
}

var docsGetCmd = &cobra.Command{
	Use:   "get <document-id>",
	Short: "Print a document's text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsGet,
}

var docsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create an empty document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsCreate,
}

var docsAppendCmd = &cobra.Command{
	Use:   "append <document-id> <text>",
	Short: "Append text to the end of a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocsAppend,
}

var docsReplaceCmd = &cobra.Command{
	Use:   "replace <document-id> <find> <replace>",
	Short: "Replace every occurrence of a string (case-sensitive)",
	Args:  cobra.ExactArgs(3),
	RunE:  runDocsReplace,
}

var docsMarkdown bool

func init() {
	docsGetCmd.Flags().BoolVar(&docsMarkdown, "markdown", false, "render headings and bullets as Markdown")

	addAccountFlag(docsCmd)
	docsCmd.AddCommand(docsGetCmd)
	docsCmd.AddCommand(docsCreateCmd)
	docsCmd.AddCommand(docsAppendCmd)
	docsCmd.AddCommand(docsReplaceCmd)
	rootCmd.AddCommand(docsCmd)
}

func docsContext(cmd *cobra.Command) (*Services, string, *printer, error) {
	s, err := getServices()
	if err != nil {
		return nil, "", nil, err
	}
	if s.Docs == nil {
		return nil, "", nil, errors.New("docs service not configured")
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

func runDocsGet(cmd *cobra.Command, args []string) error {
	s, email, p, err := docsContext(cmd)
	if err != nil {
		return err
	}

	doc, err := s.Docs.Get(cmd.Context(), email, args[0])
	if err != nil {
		return err
	}

	if docsMarkdown {
		return p.text(doc, docs.ToMarkdown(*doc))
	}
	var b strings.Builder
	b.WriteString(p.styles.Title.Render(doc.Title))
	b.WriteString("\n\n")
	b.WriteString(doc.Text())
	return p.text(doc, b.String())
}

func runDocsCreate(cmd *cobra.Command, args []string) error {
	s, email, p, err := docsContext(cmd)
	if err != nil {
		return err
	}

	doc, err := s.Docs.Create(cmd.Context(), email, args[0])
	if err != nil {
		return err
	}
	return p.status(doc, "Created document %s (%s)", doc.Title, doc.ID)
}

func runDocsAppend(cmd *cobra.Command, args []string) error {
	s, email, p, err := docsContext(cmd)
	if err != nil {
		return err
	}

	if err := s.Docs.AppendText(cmd.Context(), email, args[0], args[1]); err != nil {
		return err
	}
	return p.status(map[string]any{"id": args[0], "appended": len(args[1])},
		"Appended %d characters to %s", len(args[1]), args[0])
}

func runDocsReplace(cmd *cobra.Command, args []string) error {
	s, email, p, err := docsContext(cmd)
	if err != nil {
		return err
	}

	n, err := s.Docs.ReplaceText(cmd.Context(), email, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	return p.status(map[string]any{"id": args[0], "replaced": n}, "Replaced %d occurrence(s)", n)
}
