package version

// Version is overridden at build time with -ldflags "-X unipept/internal/version.Version=...".
var Version = "dev"
