package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NormalizeDate collapses a timestamp to its calendar day (midnight UTC).
// Day-bucketed records (daily logs, events) are stored and queried with this.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an RFC3339 datetime or a plain YYYY-MM-DD date
// and normalizes it to its calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, err
		}
	}
	return NormalizeDate(t), nil
}

// Getwd tries to find the project root (the directory holding go.mod).
// go-test changes the working directory to the package being tested;
// walking up keeps config/asset paths stable either way.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd // fall back to the actual working dir
		}
		currDir = newDir
	}
}
