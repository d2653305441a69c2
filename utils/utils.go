package utils

import (
	"path/filepath"
	"strings"
)

// BuildDirPath constructs os-agnostic display directory path with trailing separator preserving all components.
// Unlike filepath.Join, does not normalize "." or remove redundant separators.
func BuildDirPath(dirs ...string) string {
	return strings.Join(dirs, string(filepath.Separator)) + string(filepath.Separator)
}

// PadMode left-pads numeric modes shorter than six characters with zeros,
// so a tree written as "40000" displays as "040000". Other modes are returned as-is.
func PadMode(mode string) string {
	if len(mode) == 0 || len(mode) >= 6 || !isDigits(mode) {
		return mode
	}
	return strings.Repeat("0", 6-len(mode)) + mode
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
