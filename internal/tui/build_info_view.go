// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ship-sync/models"
)

func renderBuildInfoWindow(info models.BuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: syncmon\n")
	fmt.Fprintf(&b, "Version: %s\n", valueOrNA(info.Version))
	fmt.Fprintf(&b, "Date: %s\n", valueOrNA(info.Date))
	fmt.Fprintf(&b, "Commit: %s\n", valueOrNA(info.Commit))
	fmt.Fprintf(&b, "Sync protocol: %d\n", info.ProtocolBuild)
	fmt.Fprintf(&b, "Features: %s", info.FeatureList())

	return renderPage("BUILD INFO", b.String(), "esc: back")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
