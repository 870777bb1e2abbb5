// Package receipt keeps uploaded receipt files on local disk.
package receipt

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errors "github.com/frahmantamala/household-expenses/internal"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// FileName is the stored name of a receipt uploaded for an expense.
func FileName(expenseID int64, name string) string {
	return fmt.Sprintf("expense_%d_%s", expenseID, filepath.Base(filepath.Clean("/"+name)))
}

// Save decodes the base64 payload and writes it under the store directory.
func (s *Store) Save(expenseID int64, name, data string) (string, error) {
	if i := strings.Index(data, ","); strings.HasPrefix(data, "data:") && i >= 0 {
		data = data[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", errors.NewValidationError("Invalid receipt data", errors.ErrCodeValidationFailed).WithCause(err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	fileName := FileName(expenseID, name)
	if err := os.WriteFile(filepath.Join(s.dir, fileName), raw, 0o644); err != nil {
		return "", err
	}
	return fileName, nil
}

// Path resolves a stored receipt name, refusing anything outside the store directory.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == ".." || name == "." {
		return "", errors.ErrReceiptNotFound
	}
	p := filepath.Join(s.dir, name)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", errors.ErrReceiptNotFound
	}
	return p, nil
}
