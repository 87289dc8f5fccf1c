package utils

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateFilename names the output of a queued job. ext may carry a leading
// dot.
func GenerateFilename(jobID, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("stamped_%s_%d.%s", jobID, time.Now().Unix(), ext)
}

// StampedName keeps the caller's base name and swaps in the output extension.
func StampedName(original, ext string) string {
	base := filepath.Base(original)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == "/" {
		name = "document"
	}
	return name + "_watermarked" + ext
}

func GenerateStorageKey(prefix, filename string) string {
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filepath.Base(filename), ext)
	timestamp := time.Now().Unix()
	id := uuid.New().String()[:8]

	return path.Join(prefix, fmt.Sprintf("%s_%d_%s%s", name, timestamp, id, ext))
}
