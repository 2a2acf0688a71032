// Package buildinfo exposes build metadata injected with -ldflags:
//
//	go build -ldflags "-X github.com/dmitrijs2005/photodesk/internal/buildinfo.buildVersion=v1.2.0 \
//	  -X github.com/dmitrijs2005/photodesk/internal/buildinfo.buildDate=2026-10-14 \
//	  -X github.com/dmitrijs2005/photodesk/internal/buildinfo.buildCommit=abc123"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// Version is the one-line form used by `photodesk --version`.
func Version() string {
	return fmt.Sprintf("%s (commit %s, built %s)", buildVersion, buildCommit, buildDate)
}

func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
