package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-file-courier/cmd/client/commands"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := commands.Execute(buildInfo()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildInfo() commands.BuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}
	return commands.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
}
