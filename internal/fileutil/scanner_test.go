package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sessionHeader = "File: C:\\MED-PC\\Data\\x\n\nStart Date: 01/15/20\nSubject: R1\nW:\n  0: 10000001\n"

// writeTree creates files under root; content defaults to "test content".
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if content == "" {
			content = "test content"
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

func relNames(t *testing.T, root string, files []string) []string {
	t.Helper()
	absRoot, _ := filepath.Abs(root)
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(absRoot, f)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"r1.txt":              "",
		"r2.TXT":              "",
		"notes.md":            "",
		"box-01.txt":          "",
		".hidden.txt":         "",
		"sub/r3.txt":          "",
		"sub/deeper/r4.txt":   "",
		".git/config.txt":     "",
		"excluded/r5.txt":     "",
		"!2020-01-15_Subject": "",
	})

	tests := []struct {
		name string
		opts ScanOptions
		want []string
	}{
		{
			name: "top level, all files",
			opts: ScanOptions{},
			want: []string{"!2020-01-15_Subject", "box-01.txt", "notes.md", "r1.txt", "r2.TXT"},
		},
		{
			name: "extension filter is case-insensitive",
			opts: ScanOptions{Extensions: []string{"txt"}},
			want: []string{"box-01.txt", "r1.txt", "r2.TXT"},
		},
		{
			name: "pattern on name without extension",
			opts: ScanOptions{Pattern: `^r\d$`, Recursive: true},
			want: []string{"excluded/r5.txt", "r1.txt", "r2.TXT", "sub/deeper/r4.txt", "sub/r3.txt"},
		},
		{
			name: "recursive with exclusions",
			opts: ScanOptions{Extensions: []string{".txt"}, Recursive: true, ExcludeDirs: []string{"excluded"}},
			want: []string{"box-01.txt", "r1.txt", "r2.TXT", "sub/deeper/r4.txt", "sub/r3.txt"},
		},
		{
			name: "max depth",
			opts: ScanOptions{Extensions: []string{".txt"}, Recursive: true, MaxDepth: 2, ExcludeDirs: []string{"excluded"}},
			want: []string{"box-01.txt", "r1.txt", "r2.TXT", "sub/r3.txt"},
		},
		{
			name: "content match",
			opts: ScanOptions{Match: func(path string) bool { return strings.HasPrefix(filepath.Base(path), "box") }},
			want: []string{"box-01.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanDirectory(tmpDir, tt.opts)
			if err != nil {
				t.Fatalf("ScanDirectory() error = %v", err)
			}
			got := relNames(t, tmpDir, result.Files)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("ScanDirectory() = %v, want %v", got, tt.want)
			}
			for _, f := range result.Files {
				if !filepath.IsAbs(f) {
					t.Errorf("expected absolute path, got %s", f)
				}
			}
		})
	}
}

func TestScanDirectory_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ScanDirectory(filepath.Join(tmpDir, "missing"), ScanOptions{}); err == nil {
		t.Error("expected error for missing directory")
	}
	if _, err := ScanDirectory(file, ScanOptions{}); err == nil {
		t.Error("expected error for a file path")
	}
	if _, err := ScanDirectory(tmpDir, ScanOptions{Pattern: "["}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestLooksLikeSession(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"session":  sessionHeader,
		"one.txt":  "Subject: R1\nother: x\n",
		"plain.md": "# notes\n",
	})

	if !LooksLikeSession(filepath.Join("testdata", "sample.txt")) {
		t.Error("sample session should be recognized")
	}
	if !LooksLikeSession(filepath.Join(tmpDir, "session")) {
		t.Error("session header should be recognized")
	}
	if LooksLikeSession(filepath.Join(tmpDir, "one.txt")) {
		t.Error("a single header field is not enough")
	}
	if LooksLikeSession(filepath.Join(tmpDir, "plain.md")) {
		t.Error("markdown should not be recognized")
	}
	if LooksLikeSession(filepath.Join(tmpDir, "missing")) {
		t.Error("missing file should not be recognized")
	}
}

func TestCollectSessionFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"data/!2020-01-15_Subject R1": sessionHeader,
		"data/day2/R2.txt":            sessionHeader,
		"data/readme.md":              "# not a session",
		"explicit.dat":                "anything",
	})

	explicit := filepath.Join(tmpDir, "explicit.dat")
	files, scanErrs, err := CollectSessionFiles([]string{
		filepath.Join(tmpDir, "data"),
		explicit,
		filepath.Join(tmpDir, "data", "day2", "R2.txt"),
	})
	if err != nil {
		t.Fatalf("CollectSessionFiles() error = %v", err)
	}
	if len(scanErrs) != 0 {
		t.Errorf("unexpected scan errors: %v", scanErrs)
	}

	got := relNames(t, tmpDir, files)
	want := []string{"data/!2020-01-15_Subject R1", "data/day2/R2.txt", "explicit.dat"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("CollectSessionFiles() = %v, want %v", got, want)
	}
}

func TestCollectSessionFiles_MissingPath(t *testing.T) {
	if _, _, err := CollectSessionFiles([]string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("expected error for missing path")
	}
}
