package version

// overridden at build time with -ldflags "-X github.com/shubh-io/dockboard/pkg/version.Version=..."
var Version = "0.1.0"

const Repo = "shubh-io/dockboard"
