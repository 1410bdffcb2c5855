package version

// Name identifies the service in logs and traces.
const Name = "gadgetd"

// Version is overridden at build time via -ldflags.
var Version = "dev"
