// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/mylife-client/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: MyLife\n")
	b.WriteString("Version:     ")
	b.WriteString(info.BuildVersion())
	b.WriteString("\n")
	b.WriteString("Build date:  ")
	b.WriteString(info.BuildDate())
	b.WriteString("\n")
	b.WriteString("Commit:      ")
	b.WriteString(info.BuildCommit())

	return renderPage("ABOUT", b.String(), "esc: back")
}
