// Package view holds the server-rendered HTML pages.
package view

import "time"

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
