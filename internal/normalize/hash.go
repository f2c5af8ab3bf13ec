package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// FileHash computes the hex-encoded SHA-256 of the files at paths, read in
// order. One path gives the plain digest of that file; the CSV source,
// which reads three files, fingerprints them together.
func FileHash(paths ...string) (string, error) {
	h := sha256.New()
	for _, path := range paths {
		if err := hashInto(h, path); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func hashInto(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("hash file %s: %w", path, err)
	}
	return nil
}
