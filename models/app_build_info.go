// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// AppBuildInfo is the version, date and commit stamped into a binary with
// -ldflags. Unset values read as "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		version: strings.TrimSpace(buildVersion),
		date:    strings.TrimSpace(buildDate),
		commit:  strings.TrimSpace(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return orNA(a.version) }

func (a AppBuildInfo) BuildDate() string { return orNA(a.date) }

func (a AppBuildInfo) BuildCommit() string { return orNA(a.commit) }

// Summary renders "version (commit, date)" for one-line output.
func (a AppBuildInfo) Summary() string {
	return a.BuildVersion() + " (" + a.BuildCommit() + ", " + a.BuildDate() + ")"
}

// HasVersion reports whether a version was stamped at all.
func (a AppBuildInfo) HasVersion() bool {
	return a.version != ""
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
