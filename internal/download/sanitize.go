package download

import (
	"path/filepath"
	"regexp"
	"strings"
)

// illegalChars are characters not allowed in filenames on common filesystems.
var illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00]`)

// multiSpace matches multiple consecutive spaces.
var multiSpace = regexp.MustCompile(`\s+`)

// multiDot matches multiple consecutive dots.
var multiDot = regexp.MustCompile(`\.{2,}`)

// spaceBeforeDot matches whitespace directly before a dot, left behind
// when an illegal character next to an extension is replaced.
var spaceBeforeDot = regexp.MustCompile(`\s+\.`)

// SanitizeFilename removes or replaces characters that are unsafe for
// filenames. Download filenames come from remote servers and catalog
// titles, so this also prevents path traversal.
func SanitizeFilename(name string) string {
	// Remove null bytes
	name = strings.ReplaceAll(name, "\x00", "")

	// Replace path separators with space
	name = strings.ReplaceAll(name, "/", " ")
	name = strings.ReplaceAll(name, "\\", " ")

	// Replace illegal characters with space
	name = illegalChars.ReplaceAllString(name, " ")

	// Collapse multiple spaces to single space
	name = multiSpace.ReplaceAllString(name, " ")

	// Rejoin extensions separated from the name by a replaced
	// character ("what?.zip" -> "what .zip" -> "what.zip")
	name = spaceBeforeDot.ReplaceAllString(name, ".")

	// Collapse multiple dots to single dot
	name = multiDot.ReplaceAllString(name, ".")

	// Trim leading/trailing whitespace and dots
	name = strings.Trim(name, " .")

	return name
}

// ValidatePath ensures the path is within the expected root directory.
// Returns ErrPathTraversal if the path would escape the root.
func ValidatePath(path, expectedRoot string) error {
	cleanPath := filepath.Clean(path)
	cleanRoot := filepath.Clean(expectedRoot)

	if !strings.HasSuffix(cleanRoot, string(filepath.Separator)) {
		cleanRoot += string(filepath.Separator)
	}

	if cleanPath != filepath.Clean(expectedRoot) && !strings.HasPrefix(cleanPath, cleanRoot) {
		return ErrPathTraversal
	}

	return nil
}
