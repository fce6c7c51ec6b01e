// Package upload writes multipart photo uploads under the public static
// directory.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Saver stores uploaded files as <public>/<dir>/<field>-<uuid><ext> and
// returns the path relative to the public dir, with forward slashes, which
// is what gets persisted on the post.
type Saver struct {
	Public string
	Dir    string
}

func NewSaver(public, dir string) *Saver {
	return &Saver{Public: public, Dir: dir}
}

func (s *Saver) Save(field string, file multipart.File, hdr *multipart.FileHeader) (string, error) {
	defer file.Close()

	name := fmt.Sprintf("%s-%s%s", field, uuid.New().String(), filepath.Ext(hdr.Filename))
	rel := filepath.Join(s.Dir, name)
	abs := filepath.Join(s.Public, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("upload: mkdir: %w", err)
	}

	dst, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("upload: create %s: %w", abs, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("upload: write %s: %w", abs, err)
	}

	return filepath.ToSlash(rel), nil
}
