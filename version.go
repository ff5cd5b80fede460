package domloc

// Identity of the module, used in CLI output and outbound requests.
const (
	// Name is the short tool name.
	Name = "domloc"

	// Description is a one-line summary used by the CLI.
	Description = "Dictionary-driven localization engine for live HTML documents"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/domloc"

	// License is the software license.
	License = "MIT"
)

// Build identity, overridable at build time:
//
//	go build -ldflags "-X github.com/ZaguanLabs/domloc.Version=1.0.0"
var (
	// Version is the semantic version; releases override it with ldflags.
	Version = "0.1.0"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// FullVersion returns the version, with the short commit hash when known.
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

// UserAgent returns the User-Agent value for outbound HTTP requests.
func UserAgent() string {
	return Name + "/" + Version
}
