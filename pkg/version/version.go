package version

// Version is the pipeline version, overridden at build time with
// -ldflags "-X geoquiz/pkg/version.Version=...".
var Version = "v0.4.0"
