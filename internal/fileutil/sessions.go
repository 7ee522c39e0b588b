package fileutil

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sniffLines is how many leading lines LooksLikeSession inspects
const sniffLines = 20

// sessionHeaderFields are fields that appear near the top of every session file
var sessionHeaderFields = []string{"File:", "Start Date:", "Subject:", "MSN:"}

// LooksLikeSession reports whether a file starts like a MED-PC session:
// at least two known header fields within its first lines.
func LooksLikeSession(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	seen := 0
	scanner := bufio.NewScanner(f)
	for i := 0; i < sniffLines && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		for _, field := range sessionHeaderFields {
			if strings.HasPrefix(line, field) {
				seen++
				break
			}
		}
		if seen >= 2 {
			return true
		}
	}
	return false
}

// CollectSessionFiles expands paths into session files. Files are taken as
// given; directories are scanned recursively for files that look like
// sessions. The result is sorted and de-duplicated. Unreadable entries met
// while scanning are returned as non-fatal errors.
func CollectSessionFiles(paths []string) ([]string, []error, error) {
	seen := make(map[string]bool)
	var files []string
	var scanErrs []error

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to access %s: %w", p, err)
		}

		if !info.IsDir() {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to resolve path %s: %w", p, err)
			}
			add(abs)
			continue
		}

		result, err := ScanDirectory(p, ScanOptions{
			Recursive: true,
			Match:     LooksLikeSession,
		})
		if err != nil {
			return nil, nil, err
		}
		for _, f := range result.Files {
			add(f)
		}
		scanErrs = append(scanErrs, result.Errors...)
	}

	sort.Strings(files)
	return files, scanErrs, nil
}
