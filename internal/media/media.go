// Package media copies catch attachments (audio notes, video clips) into
// the app's library directory under stable generated names.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Kind selects the filename prefix for an attachment
type Kind string

const (
	KindAudio Kind = "catch"
	KindVideo Kind = "catch_video"
)

// CopyIntoLibrary copies src into dir as <kind>_<uuid><ext> and returns
// the destination path, which callers store as the catch's media ref
func CopyIntoLibrary(dir, src string, kind Kind) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create library dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	name := fmt.Sprintf("%s_%s%s", kind, uuid.New().String(), filepath.Ext(src))
	dst := filepath.Join(dir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("copy media: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close destination: %w", err)
	}

	return dst, nil
}
