package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// VCardContentType is the MIME type of the exported artifact.
const VCardContentType = "text/vcard"

// WriteVCardFile writes decoded vCard bytes to dir/filename and returns the
// full path. The destination directory is created when missing, and a
// half-written file is removed so a failed export leaves no artifact
// behind.
func WriteVCardFile(dir, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to write empty vCard file")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing export file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing export file: %w", err)
	}

	return path, nil
}
