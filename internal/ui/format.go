// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for recorded conversions

package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harper/eci2ecef/internal/models"
)

// FormatConversion formats a recorded conversion for history listings.
func FormatConversion(c *models.Conversion) string {
	if c == nil {
		return color.New(color.Faint).Sprint("(no conversion)")
	}
	in := fmt.Sprintf("(%.3f, %.3f, %.3f)", c.ECI.X, c.ECI.Y, c.ECI.Z)
	out := fmt.Sprintf("(%.3f, %.3f, %.3f)", c.Output.X, c.Output.Y, c.Output.Z)

	return fmt.Sprintf("%s %s %s -> %s %s - %s",
		color.New(color.Faint).Sprint(c.ID.String()[:6]),
		color.GreenString(c.Epoch.String()),
		in,
		color.CyanString(out),
		color.New(color.Faint).Sprintf("[%s]", c.Model),
		color.New(color.Faint).Sprint(FormatRelativeTime(c.CreatedAt)))
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
