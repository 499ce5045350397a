// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strings"
)

// BuildInfo describes a binary: release metadata injected by the linker and
// the sync protocol level it speaks. ProtocolBuild is the client build number
// whose capabilities the binary understands; Features lists them.
type BuildInfo struct {
	Version       string    `json:"buildVersion,omitempty"`
	Date          string    `json:"buildDate,omitempty"`
	Commit        string    `json:"buildCommit,omitempty"`
	ProtocolBuild int64     `json:"protocolBuild,omitempty"`
	Features      []Feature `json:"features,omitempty"`
}

func NewBuildInfo(version, date, commit string, protocolBuild int64, features []Feature) BuildInfo {
	return BuildInfo{
		Version:       version,
		Date:          date,
		Commit:        commit,
		ProtocolBuild: protocolBuild,
		Features:      slices.Clone(features),
	}
}

// Supports reports whether the build speaks feature f.
func (b BuildInfo) Supports(f Feature) bool {
	return slices.Contains(b.Features, f)
}

// FeatureList joins the feature names with commas, "none" when empty.
func (b BuildInfo) FeatureList() string {
	if len(b.Features) == 0 {
		return "none"
	}
	names := make([]string, 0, len(b.Features))
	for _, f := range b.Features {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
