package extract

import (
	"path/filepath"
	"strconv"
	"strings"
)

const artifactExt = ".jpg"

var titleReplacer = strings.NewReplacer(".", "_", "?", "_")

// SanitizeTitle replaces every '.' and '?' with '_'.
// Path separators are kept, so a title like "a/b" nests under the output dir.
func SanitizeTitle(title string) string {
	return titleReplacer.Replace(title)
}

// ArtifactName returns "<sanitized-title>_<index>.jpg".
func ArtifactName(title string, index int) string {
	return SanitizeTitle(title) + "_" + strconv.Itoa(index) + artifactExt
}

// ArtifactPath joins the artifact name for (title, index) onto dir.
func ArtifactPath(dir, title string, index int) string {
	return filepath.Join(dir, ArtifactName(title, index))
}

// ResolveDir returns dir, or fallback when dir is empty.
func ResolveDir(dir, fallback string) string {
	if dir == "" {
		return fallback
	}
	return dir
}
