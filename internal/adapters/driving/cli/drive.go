package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwcli/internal/core/domain"
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Work with Google Drive files",
}

var driveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List files",
	Long: `List files that are not in the trash.

--query takes a Drive search expression, for example:
  gwcli drive list --query "name contains 'report'"
  gwcli drive list --folder 0AbCdEf --limit 50`,
	Args: cobra.NoArgs,
	RunE: runDriveList,
}

var driveGetCmd = &cobra.Command{
	Use:   "get <file-id>",
	Short: "Show file metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveGet,
}

var driveDownloadCmd = &cobra.Command{
	Use:   "download <file-id>",
	Short: "Download a file",
	Long: `Download a file into --dir (default: the downloads directory under the
config directory). Docs are exported as text, Sheets as CSV and Slides as PDF.`,
	Args: cobra.ExactArgs(1),
	RunE: runDriveDownload,
}

var driveUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a local file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveUpload,
}

var driveMkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveMkdir,
}

var driveDeleteCmd = &cobra.Command{
	Use:   "delete <file-id>",
	Short: "Permanently delete a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveDelete,
}

// Drive flags.
var (
	driveQuery     string
	driveFolder    string
	driveLimit     int64
	drivePageToken string
	driveDir       string
	driveParent    string
)

func init() {
	driveListCmd.Flags().StringVarP(&driveQuery, "query", "q", "", "Drive search expression")
	driveListCmd.Flags().StringVar(&driveFolder, "folder", "", "only list children of this folder ID")
	driveListCmd.Flags().Int64VarP(&driveLimit, "limit", "n", 0, "maximum results per page")
	driveListCmd.Flags().StringVar(&drivePageToken, "page-token", "", "continue a previous listing")
	driveDownloadCmd.Flags().StringVar(&driveDir, "dir", "", "destination directory")
	driveUploadCmd.Flags().StringVar(&driveParent, "parent", "", "parent folder ID")
	driveMkdirCmd.Flags().StringVar(&driveParent, "parent", "", "parent folder ID")

	addAccountFlag(driveCmd)
	driveCmd.AddCommand(driveListCmd)
	driveCmd.AddCommand(driveGetCmd)
	driveCmd.AddCommand(driveDownloadCmd)
	driveCmd.AddCommand(driveUploadCmd)
	driveCmd.AddCommand(driveMkdirCmd)
	driveCmd.AddCommand(driveDeleteCmd)
	rootCmd.AddCommand(driveCmd)
}

// driveContext resolves services, the account and the printer for a Drive command.
func driveContext(cmd *cobra.Command) (*Services, string, *printer, error) {
	s, err := getServices()
	if err != nil {
		return nil, "", nil, err
	}
	if s.Drive == nil {
		return nil, "", nil, errors.New("drive service not configured")
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

func runDriveList(cmd *cobra.Command, _ []string) error {
	s, email, p, err := driveContext(cmd)
	if err != nil {
		return err
	}

	list, err := s.Drive.List(cmd.Context(), email, domain.DriveListOptions{
		Query:     driveQuery,
		FolderID:  driveFolder,
		PageSize:  driveLimit,
		PageToken: drivePageToken,
	})
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(list.Files))
	for _, f := range list.Files {
		rows = append(rows, []string{f.ID, f.Name, fileKind(f), formatSize(f), formatTime(f)})
	}
	if err := p.table(list, []string{"ID", "NAME", "TYPE", "SIZE", "MODIFIED"}, rows); err != nil {
		return err
	}
	if list.NextPageToken != "" && p.format == domain.OutputText {
		cmd.Printf("\nMore results: --page-token %s\n", list.NextPageToken)
	}
	return nil
}

func runDriveGet(cmd *cobra.Command, args []string) error {
	s, email, p, err := driveContext(cmd)
	if err != nil {
		return err
	}

	f, err := s.Drive.Get(cmd.Context(), email, args[0])
	if err != nil {
		return err
	}
	return p.fields(f, [][2]string{
		{"ID", f.ID},
		{"Name", f.Name},
		{"Type", f.MimeType},
		{"Size", formatSize(*f)},
		{"Modified", formatTime(*f)},
		{"Link", f.WebViewLink},
	})
}

func runDriveDownload(cmd *cobra.Command, args []string) error {
	s, email, p, err := driveContext(cmd)
	if err != nil {
		return err
	}

	dir := driveDir
	if dir == "" {
		if s.DownloadsDir == nil {
			return errors.New("no download directory, pass --dir")
		}
		if dir, err = s.DownloadsDir(); err != nil {
			return err
		}
	}

	path, err := s.Drive.Download(cmd.Context(), email, args[0], dir)
	if err != nil {
		return err
	}
	return p.status(map[string]string{"id": args[0], "path": path}, "Downloaded to %s", path)
}

func runDriveUpload(cmd *cobra.Command, args []string) error {
	s, email, p, err := driveContext(cmd)
	if err != nil {
		return err
	}

	f, err := s.Drive.Upload(cmd.Context(), email, args[0], driveParent)
	if err != nil {
		return err
	}
	return p.status(f, "Uploaded %s (%s)", f.Name, f.ID)
}

func runDriveMkdir(cmd *cobra.Command, args []string) error {
	s, email, p, err := driveContext(cmd)
	if err != nil {
		return err
	}

	f, err := s.Drive.CreateFolder(cmd.Context(), email, args[0], driveParent)
	if err != nil {
		return err
	}
	return p.status(f, "Created folder %s (%s)", f.Name, f.ID)
}

func runDriveDelete(cmd *cobra.Command, args []string) error {
	s, email, p, err := driveContext(cmd)
	if err != nil {
		return err
	}

	if err := s.Drive.Delete(cmd.Context(), email, args[0]); err != nil {
		return err
	}
	return p.status(map[string]string{"deleted": args[0]}, "Deleted %s", args[0])
}

func fileKind(f domain.DriveFile) string {
	switch f.MimeType {
	case domain.MimeTypeFolder:
		return "folder"
	case domain.MimeTypeGoogleDoc:
		return "doc"
	case domain.MimeTypeGoogleSheet:
		return "sheet"
	case domain.MimeTypeGoogleSlides:
		return "slides"
	default:
		return "file"
	}
}

func formatSize(f domain.DriveFile) string {
	if f.IsFolder() || f.IsGoogleNative() {
		return "-"
	}
	return strconv.FormatInt(f.Size, 10)
}

func formatTime(f domain.DriveFile) string {
	if f.ModifiedTime.IsZero() {
		return "-"
	}
	return f.ModifiedTime.Format("2006-01-02 15:04")
}
