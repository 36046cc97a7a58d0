package file

import (
	"os"
	"path/filepath"
)

// File and directory names inside the configuration directory.
const (
	configFileName      = "config.toml"
	credentialsFileName = "credentials.json"
	accountsFileName    = "accounts.json"
	downloadsDirName    = "downloads"

	// EnvHome overrides the default configuration directory.
	EnvHome = "GWCLI_HOME"
)

// DefaultConfigDir returns $GWCLI_HOME, or ~/.gwcli when unset.
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gwcli"), nil
}

func resolveConfigDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return DefaultConfigDir()
}

// writeFileAtomic replaces path with data. The content is written to a
// temporary file in the same directory, synced, then renamed into place, so
// readers see either the old or the new file, never a partial one.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
