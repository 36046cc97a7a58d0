package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

// accountFlag is shared by every surface command.
var accountFlag string

func addAccountFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&accountFlag, "account", "a", "",
		"account email (may be omitted when exactly one account is stored)")
}

// resolveAccount returns the --account value, or the only stored account.
func resolveAccount(s *Services) (string, error) {
	if email := strings.TrimSpace(accountFlag); email != "" {
		return email, nil
	}
	if s.Accounts == nil {
		return "", errors.New("account service not configured")
	}

	accounts := s.Accounts.List()
	switch len(accounts) {
	case 0:
		return "", fmt.Errorf("%w: no accounts stored, run 'gwcli account add'", domain.ErrAccountNotFound)
	case 1:
		return accounts[0].Email, nil
	default:
		return "", fmt.Errorf("%w: %d accounts stored, pass --account", domain.ErrInvalidInput, len(accounts))
	}
}

// maskSecret keeps a short prefix and suffix of a secret.
func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// readLine prompts on the command's output and reads one trimmed line.
func readLine(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	cmd.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a line without echo when stdin is a terminal.
func readSecret(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cmd.Print(prompt)
		secret, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}
	return readLine(cmd, reader, prompt)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
