package tui

import (
	"strings"
	"time"

	"github.com/MKhiriev/mylife-client/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

// deviceIDWidth is how much of the device id the sync page shows.
const deviceIDWidth = 16

const conflictMessageWidth = 60

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: quit"))

	return appStyle.Render(b.String())
}

// formatTimestamp renders t in local time, or "Never" when the backend has
// no value.
func formatTimestamp(t *models.Timestamp) string {
	if t == nil || t.IsZero() {
		return "Never"
	}
	return t.Local().Format(time.DateTime)
}

// truncateDeviceID keeps the first deviceIDWidth characters of id.
func truncateDeviceID(id string) string {
	if len(id) <= deviceIDWidth {
		return id
	}
	return id[:deviceIDWidth] + "..."
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
