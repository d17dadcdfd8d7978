package model

// Signal is the name of a single build or CI tooling indicator
type Signal string

const (
	SignalMakefile      Signal = "makefile"
	SignalBazel         Signal = "bazel"
	SignalJustfile      Signal = "justfile"
	SignalGoreleaser    Signal = "goreleaser"
	SignalDockerfile    Signal = "dockerfile"
	SignalMage          Signal = "mage"
	SignalGoTask        Signal = "gotask"
	SignalGoMod         Signal = "gomod"
	SignalGoWork        Signal = "gowork"
	SignalBuf           Signal = "buf"
	SignalDrone         Signal = "drone"
	SignalGitHubActions Signal = "github_actions"
	SignalCircleCI      Signal = "circleci"
	SignalGitLabCI      Signal = "gitlab_ci"
)

// SignalValue pairs a signal with its detected state
type SignalValue struct {
	Name    Signal
	Present bool
}

// BuildSignalSet is the complete, ordered set of detected signals
type BuildSignalSet []SignalValue

// Get reports whether name was detected
func (s BuildSignalSet) Get(name Signal) bool {
	for _, v := range s {
		if v.Name == name {
			return v.Present
		}
	}
	return false
}

// Detection is the output of build-system detection over a path set
type Detection struct {
	Signals           BuildSignalSet
	FilesPresent      []string // Human-readable names of detected tooling
	CIProviders       []string // Detected CI provider identifiers
	DetectedFileCount int
}
