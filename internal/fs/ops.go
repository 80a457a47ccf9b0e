package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func validName(name string) error {
	if name == "" {
		return errors.New("name is empty")
	}
	if strings.ContainsRune(name, os.PathSeparator) {
		return fmt.Errorf("%q must not contain %q", name, os.PathSeparator)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%q is not a valid name", name)
	}
	return nil
}

// Rename moves old to a sibling path named newName. Refuses to clobber an
// existing target.
func Rename(old Entry, newName string) error {
	if err := validName(newName); err != nil {
		return err
	}
	target := filepath.Join(filepath.Dir(old.Path), newName)
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%s already exists", newName)
	}
	if err := os.Rename(old.Path, target); err != nil {
		return fmt.Errorf("rename %s: %w", old.Name, err)
	}
	return nil
}

// Delete removes the entry. Directories are removed recursively.
func Delete(e Entry) error {
	var err error
	if e.IsDir {
		err = os.RemoveAll(e.Path)
	} else {
		err = os.Remove(e.Path)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", e.Name, err)
	}
	return nil
}

// CreateFile creates an empty file named name inside dir. Fails if the
// target already exists.
func CreateFile(dir, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	target := filepath.Join(dir, name)
	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", name)
		}
		return fmt.Errorf("create file %s: %w", name, err)
	}
	return f.Close()
}

// CreateDir creates a directory named name inside dir.
func CreateDir(dir, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	target := filepath.Join(dir, name)
	if err := os.Mkdir(target, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", name)
		}
		return fmt.Errorf("create directory %s: %w", name, err)
	}
	return nil
}
