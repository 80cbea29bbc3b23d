package lexbridge

// Version information for lexbridge.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/lexbridge.GitCommit=$(git rev-parse HEAD)"
const (
	// Name is the application name.
	Name = "lexbridge"

	// Description is a short description of the application.
	Description = "Phrase resolution for African languages with an offline result cache"

	// Version is the semantic version of the application.
	Version = "0.1.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/lexbridge"
)

// Build information, set via ldflags.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns the version with the short commit hash appended when
// one was stamped in.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns the User-Agent sent to translation providers.
func UserAgent() string {
	return Name + "/" + FullVersion()
}
