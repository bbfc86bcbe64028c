// Package filex implements local file delivery for decrypted attachments.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubDir creates (if needed) and returns a subdirectory of the current
// working directory.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// DirDeliverer saves delivered files into a fixed directory. It is the CLI's
// implementation of the file-delivery collaborator (a browser client would
// trigger a download instead).
type DirDeliverer struct {
	Dir string
}

// Deliver writes the plaintext under the attachment's stored file name.
// The name is sanitized to its base component so a hostile file name cannot
// escape the delivery directory.
func (d *DirDeliverer) Deliver(fileName string, data []byte) error {
	if fileName == "" {
		fileName = "attachment"
	}
	path := filepath.Join(d.Dir, filepath.Base(fileName))

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
