package cli

import "fmt"

// Overridden at build time:
//
//	go build -ldflags "-X dpm-integrator/internal/adapters/primary/cli.Version=1.2.0 ..."
var (
	Version   = "0.0.0-DEV"
	BuildTime = "-"
	Revision  = "-"
)

func versionText() string {
	return fmt.Sprintf("%s\nVersion: %s\nBuild time: %s\nRevision: %s\n", title, Version, BuildTime, Revision)
}
