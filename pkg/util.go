package pkg

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"
)

// ArtifactTimestampLayout is used in generated file names (second resolution)
const ArtifactTimestampLayout = "20060102150405"

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir && !stat.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}
	if !isDir && stat.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// FileExists is a shorthand for PathExists(path, false) that swallows the error
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	exists, err := PathExists(path, false)
	return err == nil && exists
}

// SafeFileNamePart keeps letters (any script), digits, '-' and '_';
// everything else becomes '_', so a caller supplied id cannot escape the output dir.
func SafeFileNamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
}

// ArtifactName builds names like dashboard_<member>_<20240102150405>.png
func ArtifactName(prefix, memberID string, ts time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", prefix, SafeFileNamePart(memberID), ts.Format(ArtifactTimestampLayout), ext)
}
