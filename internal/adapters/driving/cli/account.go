package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwcli/internal/core/domain"
	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage authorised Google accounts",
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Authorise a Google account",
	Long: `Authorise a Google account in the browser and store its refresh token.

By default gwcli listens on localhost for the redirect (port from
oauth.redirect_port, default 3000). On a remote machine use --manual and paste
the URL the browser was redirected to.

The account email is looked up from Google unless --email is given.`,
	Args: cobra.NoArgs,
	RunE: runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List authorised accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountShowCmd = &cobra.Command{
	Use:   "show <email>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountShow,
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <email>",
	Short: "Forget an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountRemove,
}

// Flags for account add.
var (
	accountAddManual bool
	accountAddEmail  string
)

func init() {
	accountAddCmd.Flags().BoolVar(&accountAddManual, "manual", false, "paste the redirect URL instead of listening locally")
	accountAddCmd.Flags().StringVar(&accountAddEmail, "email", "", "account email (looked up when omitted)")

	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountRemoveCmd)
	rootCmd.AddCommand(accountCmd)
}

// accountView is the printable form of an account. Tokens are never shown.
type accountView struct {
	Email          string `json:"email"`
	ClientID       string `json:"clientId"`
	HasAccessToken bool   `json:"hasAccessToken"`
}

func newAccountView(a domain.Account) accountView {
	return accountView{
		Email:          a.Email,
		ClientID:       maskSecret(a.OAuth2.ClientID),
		HasAccessToken: a.HasAccessToken(),
	}
}

func accountService() (*Services, driving.AccountService, error) {
	s, err := getServices()
	if err != nil {
		return nil, nil, err
	}
	if s.Accounts == nil {
		return nil, nil, errors.New("account service not configured")
	}
	return s, s.Accounts, nil
}

func runAccountAdd(cmd *cobra.Command, _ []string) error {
	s, accounts, err := accountService()
	if err != nil {
		return err
	}

	account, err := accounts.Add(cmd.Context(), driving.AddAccountOptions{
		Email:  accountAddEmail,
		Manual: accountAddManual,
	})
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.status(newAccountView(*account), "Authorised %s", account.Email)
}

func runAccountList(cmd *cobra.Command, _ []string) error {
	s, accounts, err := accountService()
	if err != nil {
		return err
	}

	all := accounts.List()
	views := make([]accountView, 0, len(all))
	rows := make([][]string, 0, len(all))
	for _, a := range all {
		v := newAccountView(a)
		views = append(views, v)
		rows = append(rows, []string{v.Email, v.ClientID})
	}

	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.table(views, []string{"EMAIL", "CLIENT ID"}, rows)
}

func runAccountShow(cmd *cobra.Command, args []string) error {
	s, accounts, err := accountService()
	if err != nil {
		return err
	}

	account, err := accounts.Get(args[0])
	if err != nil {
		return err
	}

	v := newAccountView(*account)
	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.fields(v, [][2]string{
		{"Email", v.Email},
		{"Client ID", v.ClientID},
		{"Refresh token", "stored"},
		{"Access token", yesNo(v.HasAccessToken)},
	})
}

func runAccountRemove(cmd *cobra.Command, args []string) error {
	s, accounts, err := accountService()
	if err != nil {
		return err
	}

	if err := accounts.Remove(args[0]); err != nil {
		return err
	}

	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.status(map[string]string{"removed": args[0]}, "Removed %s", args[0])
}
