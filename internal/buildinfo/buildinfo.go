// Package buildinfo exposes link-time build metadata.
//
// Values are injected with -ldflags, e.g.:
//
//	go build -ldflags "-X github.com/dmitrijs2005/bloodlink/internal/buildinfo.buildVersion=1.0.0"
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

// PrintBuildData writes the version banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
