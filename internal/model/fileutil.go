package model

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HeaderPreview holds the first lines of a header file
type HeaderPreview struct {
	Path      string   // File that was read
	Lines     []string // Up to the requested number of lines
	Truncated bool     // Whether the file has more lines than returned
	ErrorMsg  string   // Error message if file couldn't be read
}

// ExpandTilde expands a leading ~ to the user's home directory
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetHeaderPreview reads up to maxLines lines from the start of a file
func GetHeaderPreview(filePath string, maxLines int) HeaderPreview {
	result := HeaderPreview{
		Path: filePath,
	}

	file, err := os.Open(ExpandTilde(filePath))
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// Vendor headers occasionally carry very long macro lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		if len(result.Lines) == maxLines {
			result.Truncated = true
			break
		}
		result.Lines = append(result.Lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
	}

	return result
}

// IsDir reports whether path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file (symlinks followed)
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
