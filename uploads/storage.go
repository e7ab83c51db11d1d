package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps uploaded files on the local filesystem under root. Files are
// served back from root by the router.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	s := &Store{root: root}
	for _, p := range []Policy{ProfilePhoto, ProjectThumbnail} {
		if err := os.MkdirAll(filepath.Join(root, p.Dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", p.Dir, err)
		}
	}
	return s, nil
}

func (s *Store) Root() string {
	return s.root
}

// Save writes f under its policy directory with a unique name and returns
// that name, which is what the database stores.
func (s *Store) Save(f *File) (string, error) {
	src, err := f.Header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := f.Policy.Prefix + uuid.NewString() + extension(f.Header.Filename)
	if _, err := s.Put(filepath.Join(f.Policy.Dir, name), src); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Store) Put(name string, r io.Reader) (int64, error) {
	name = s.fixPath(name)
	if err := os.MkdirAll(filepath.Dir(name), os.ModePerm); err != nil {
		return 0, fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	f, err := os.Create(name)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", name, err)
	}
	defer f.Close()
	n, err := io.Copy(f, r)
	if err != nil {
		return n, fmt.Errorf("failed to copy data to file %s: %w", name, err)
	}
	return n, nil
}

func (s *Store) Exists(name string) (bool, error) {
	_, err := os.Stat(s.fixPath(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence of file %s: %w", name, err)
}

// Replace all slashes with the OS-specific separator.
func (s *Store) fixPath(path string) string {
	path = strings.ReplaceAll(path, "/", string(os.PathSeparator))
	return filepath.Join(s.root, filepath.Clean(string(os.PathSeparator)+path))
}

func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
