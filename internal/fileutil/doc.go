// Package fileutil finds session files on disk.
//
// ScanDirectory walks a directory with extension, pattern and content
// filters; CollectSessionFiles expands command-line arguments (files and
// directories) into a sorted, de-duplicated list of session files.
//
// MED-PC names data files like "!2020-01-15_10h15m.Subject R1" with no
// useful extension, so directory scans identify sessions by their header
// instead of by name. Hidden directories are never entered.
package fileutil
