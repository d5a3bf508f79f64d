package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// BackupState copies the state file into backups/ under the store dir
// before a destructive replace. Returns the backup path, or "" when no
// state file exists yet.
func (s Store) BackupState(now time.Time) (string, error) {
	src := s.sqlitePath()
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	dest := filepath.Join(s.Dir, "backups",
		fmt.Sprintf("board-%s.sqlite", now.Format("20060102-150405")))
	if err := copyFile(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}
