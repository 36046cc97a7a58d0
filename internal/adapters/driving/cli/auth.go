package cli

import (
	"bufio"
	"errors"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the OAuth client registration",
	Long: `Store and inspect the OAuth 2.0 client gwcli authorises accounts with.

Create a "Desktop app" OAuth client in the Google Cloud console, enable the
Drive, Docs, Sheets and Slides APIs for its project, then run:

  gwcli auth setup --client-id ID --client-secret SECRET

Omitted values are prompted for; the secret is not echoed.`,
}

var authSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store the OAuth client ID and secret",
	Args:  cobra.NoArgs,
	RunE:  runAuthSetup,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored OAuth client",
	Args:  cobra.NoArgs,
	RunE:  runAuthShow,
}

var authURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print an authorisation URL without starting a flow",
	Args:  cobra.NoArgs,
	RunE:  runAuthURL,
}

// Flags for auth setup.
var (
	authClientID     string
	authClientSecret string
)

func init() {
	authSetupCmd.Flags().StringVar(&authClientID, "client-id", "", "OAuth client ID")
	authSetupCmd.Flags().StringVar(&authClientSecret, "client-secret", "", "OAuth client secret")

	authCmd.AddCommand(authSetupCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authURLCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetup(cmd *cobra.Command, _ []string) error {
	s, err := getServices()
	if err != nil {
		return err
	}
	if s.Accounts == nil {
		return errors.New("account service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	clientID, clientSecret := authClientID, authClientSecret
	if clientID == "" {
		if clientID, err = readLine(cmd, reader, "Client ID: "); err != nil {
			return err
		}
	}
	if clientSecret == "" {
		if clientSecret, err = readSecret(cmd, reader, "Client secret: "); err != nil {
			return err
		}
	}

	if err := s.Accounts.Configure(clientID, clientSecret); err != nil {
		return err
	}

	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.status(map[string]any{"configured": true, "clientId": maskSecret(clientID)},
		"Stored OAuth client %s. Next: gwcli account add", maskSecret(clientID))
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	s, err := getServices()
	if err != nil {
		return err
	}
	if s.Accounts == nil {
		return errors.New("account service not configured")
	}

	creds, err := s.Accounts.Credentials()
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.fields(map[string]any{
		"clientId":  maskSecret(creds.ClientID),
		"configDir": s.ConfigDir,
	}, [][2]string{
		{"Client ID", maskSecret(creds.ClientID)},
		{"Client secret", "****"},
		{"Config dir", s.ConfigDir},
	})
}

func runAuthURL(cmd *cobra.Command, _ []string) error {
	s, err := getServices()
	if err != nil {
		return err
	}
	if s.Accounts == nil {
		return errors.New("account service not configured")
	}

	authURL, err := s.Accounts.AuthURL()
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.text(map[string]string{"url": authURL}, authURL)
}
