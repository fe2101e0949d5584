// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // e.g. "v1.2.3", or "dev" for local builds
	GitCommit string // short commit hash
	BuildTime string // RFC3339
}

// String formats the info the way the -version flag prints it.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", orUnknown(i.Version), orUnknown(i.GitCommit), orUnknown(i.BuildTime))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
