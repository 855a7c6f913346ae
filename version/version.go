package version

// Set at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

func GetFullVersion() string {
	return Version + " (" + Commit + ") built at " + BuildTime
}
