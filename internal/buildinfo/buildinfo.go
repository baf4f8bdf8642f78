// Package buildinfo exposes link-time build metadata.
//
// Values are injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/examprep-admin/internal/buildinfo.buildVersion=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes the version, date and commit lines to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", valueOrNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", valueOrNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", valueOrNA(buildCommit))
}

// PrintBanner renders appName as ASCII art followed by the build data.
func PrintBanner(w io.Writer, appName string) {
	fmt.Fprintln(w, figure.NewFigure(appName, "cybermedium", true).String())
	PrintBuildData(w)
}
