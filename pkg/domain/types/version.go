package types

// Version is the buildprobe release version, overridden at build time via -ldflags.
var Version = "dev"
