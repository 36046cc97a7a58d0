// Package tui provides the interactive terminal prompts used by gwcli.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/custodia-labs/gwcli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/gwcli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driven"
)

// Ensure Prompter implements the interface.
var _ driven.RedirectReceiver = (*Prompter)(nil)

// Prompter asks the user to paste the redirect URL. On a terminal it runs
// a bubbletea prompt; otherwise it reads one line from its input.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	styles      *styles.Styles
	interactive bool
}

// NewPrompter creates a prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:          in,
		out:         out,
		styles:      styles.DefaultStyles(),
		interactive: isTerminal(in),
	}
}

// Receive prints the authorisation URL and waits for the pasted redirect.
func (p *Prompter) Receive(ctx context.Context, authURL string) (string, error) {
	fmt.Fprintln(p.out, p.styles.Title.Render("Authorise gwcli"))
	fmt.Fprintf(p.out, "\n1. Open this URL in a browser:\n\n   %s\n\n", authURL)
	fmt.Fprintln(p.out, "2. Approve access. The browser then fails to load a localhost page.")
	fmt.Fprintln(p.out, "   Copy the full address from its address bar and paste it below.")
	fmt.Fprintln(p.out)

	if p.interactive {
		return p.runInteractive(ctx)
	}
	return p.readLine(ctx)
}

func (p *Prompter) runInteractive(ctx context.Context) (string, error) {
	model := input.NewRedirectInput(p.styles)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		return "", fmt.Errorf("redirect prompt: %w", err)
	}

	result, ok := final.(*input.RedirectInput)
	if !ok || result.Cancelled() {
		return "", domain.ErrAuthorizationCancelled
	}
	return result.Value(), nil
}

// readLine reads one line. The read is abandoned, not interrupted, when ctx
// is done first.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	fmt.Fprint(p.out, p.styles.Title.Render("Redirect URL: "))

	type result struct {
		line string
		err  error
	}
	lines := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(p.in).ReadString('\n')
		lines <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-lines:
		line := strings.TrimSpace(res.line)
		if line != "" {
			return line, nil
		}
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("read redirect URL: %w", res.err)
		}
		return "", ErrNoInput
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
