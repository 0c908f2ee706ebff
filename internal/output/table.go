// Package output provides terminal output utilities for the stringd CLI.
//
// This package includes:
//   - Table rendering for stored string records
//   - A detail view for a single record, including its character frequencies
//   - Human-readable formatting for timestamps
//
// All rendering functions use ASCII characters and ANSI color codes for
// terminal output.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"stringd/internal/analyzer"
)

// ANSI color codes for palindrome highlighting
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderRecordTable renders a table of stored string records.
// Note: Does not sort - records are expected in insertion order.
func RenderRecordTable(records []*analyzer.Record) string {
	if len(records) == 0 {
		return "No strings stored.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-28s %-7s %-6s %-7s %-11s %-13s %s\n",
		"Value", "Length", "Words", "Unique", "Palindrome", "Created", "ID"))
	sb.WriteString(strings.Repeat("─", 92))
	sb.WriteString("\n")

	for _, rec := range records {
		palindrome := "no"
		if rec.IsPalindrome {
			palindrome = colorize(colorGreen, "yes")
		}

		sb.WriteString(fmt.Sprintf("%-28s %-7d %-6d %-7d %-11s %-13s %s\n",
			truncate(rec.Value, 28),
			rec.Length,
			rec.WordCount,
			rec.UniqueCharacters,
			palindrome,
			formatRelativeTime(rec.CreatedAt),
			truncate(rec.ContentHash, 12)))
	}

	return sb.String()
}

// RenderRecordDetail renders a single record with its full analysis,
// including the per-character frequency breakdown.
func RenderRecordDetail(rec *analyzer.Record) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Value:             %s\n", rec.Value))
	sb.WriteString(fmt.Sprintf("ID:                %s\n", rec.ContentHash))
	sb.WriteString(fmt.Sprintf("Length:            %d\n", rec.Length))
	sb.WriteString(fmt.Sprintf("Words:             %d\n", rec.WordCount))
	sb.WriteString(fmt.Sprintf("Unique characters: %d\n", rec.UniqueCharacters))
	sb.WriteString(fmt.Sprintf("Palindrome:        %t\n", rec.IsPalindrome))
	sb.WriteString(fmt.Sprintf("Created:           %s\n", formatRelativeTime(rec.CreatedAt)))

	if len(rec.CharacterFrequency) > 0 {
		sb.WriteString("\nCharacter frequencies:\n")

		// Sorted keys keep output stable across runs.
		chars := make([]string, 0, len(rec.CharacterFrequency))
		for c := range rec.CharacterFrequency {
			chars = append(chars, c)
		}
		sort.Strings(chars)

		for _, c := range chars {
			display := c
			if c == " " {
				display = colorize(colorGray, "(space)")
			}
			sb.WriteString(fmt.Sprintf("  %-9s %d\n", display, rec.CharacterFrequency[c]))
		}
	}

	return sb.String()
}

// StoreStats holds aggregate counts rendered by RenderStatsSummary.
type StoreStats struct {
	Total       int
	Palindromes int
	TotalLength int
	MaxLength   int
}

// RenderStatsSummary renders a one-line store summary.
// Format: "4 strings · 2 palindromes · avg length 5.3 · longest 11"
func RenderStatsSummary(stats StoreStats) string {
	if stats.Total == 0 {
		return "No strings stored."
	}

	avg := float64(stats.TotalLength) / float64(stats.Total)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d strings", stats.Total))
	sb.WriteString(" · ")
	if IsColorEnabled() {
		sb.WriteString(fmt.Sprintf("%s%d palindromes%s", colorGreen, stats.Palindromes, colorReset))
	} else {
		sb.WriteString(fmt.Sprintf("%d palindromes", stats.Palindromes))
	}
	sb.WriteString(fmt.Sprintf(" · avg length %.1f · longest %d", avg, stats.MaxLength))

	return sb.String()
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
