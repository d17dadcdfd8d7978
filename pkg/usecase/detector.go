package usecase

import (
	"strings"

	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

// pathView is one repository path seen both as-is and lowercased
type pathView struct {
	raw       string
	base      string // final segment of raw
	lowerBase string
}

type detectionRule struct {
	signal model.Signal
	label  string
	match  func(p pathView) bool
}

// detectionRules is evaluated in order; the order defines files_present.
var detectionRules = []detectionRule{
	{
		signal: model.SignalMakefile,
		label:  "Makefile",
		match:  func(p pathView) bool { return p.lowerBase == "makefile" },
	},
	{
		signal: model.SignalBazel,
		label:  "Bazel",
		match: func(p pathView) bool {
			switch p.base {
			case "WORKSPACE", "WORKSPACE.bazel", "BUILD", "BUILD.bazel":
				return true
			}
			return strings.HasSuffix(p.raw, ".bzl")
		},
	},
	{
		signal: model.SignalJustfile,
		label:  "Justfile",
		match:  func(p pathView) bool { return p.base == "Justfile" },
	},
	{
		signal: model.SignalGoreleaser,
		label:  "Goreleaser",
		match: func(p pathView) bool {
			b := p.lowerBase
			return b == ".goreleaser.yml" || b == ".goreleaser.yaml"
		},
	},
	{
		signal: model.SignalDockerfile,
		label:  "Dockerfile",
		match:  func(p pathView) bool { return p.base == "Dockerfile" },
	},
	{
		signal: model.SignalMage,
		label:  "Magefile",
		match:  func(p pathView) bool { return p.lowerBase == "magefile.go" },
	},
	{
		signal: model.SignalGoTask,
		label:  "Taskfile",
		match:  func(p pathView) bool { return p.lowerBase == "taskfile.yml" },
	},
	{
		signal: model.SignalGoMod,
		label:  "go.mod",
		match:  func(p pathView) bool { return p.base == "go.mod" },
	},
	{
		signal: model.SignalGoWork,
		label:  "go.work",
		match:  func(p pathView) bool { return p.base == "go.work" },
	},
	{
		signal: model.SignalBuf,
		label:  "buf",
		match:  func(p pathView) bool { return p.base == "buf.yaml" || p.base == "buf.yml" },
	},
	{
		signal: model.SignalDrone,
		label:  "Drone",
		match:  func(p pathView) bool { return p.base == ".drone.yml" },
	},
	{
		signal: model.SignalGitHubActions,
		label:  "GitHub Actions",
		match:  func(p pathView) bool { return strings.HasPrefix(p.raw, ".github/workflows/") },
	},
	{
		signal: model.SignalCircleCI,
		label:  "CircleCI",
		match: func(p pathView) bool {
			return p.raw == ".circleci/config.yml" || strings.HasSuffix(p.raw, "/.circleci/config.yml")
		},
	},
	{
		signal: model.SignalGitLabCI,
		label:  "GitLab CI",
		match:  func(p pathView) bool { return p.base == ".gitlab-ci.yml" },
	},
}

// ciProviderOrder lists the signals reported as CI providers, in output order
var ciProviderOrder = []model.Signal{
	model.SignalGitHubActions,
	model.SignalCircleCI,
	model.SignalGitLabCI,
	model.SignalDrone,
}

// SignalNames returns every signal in detection order
func SignalNames() []model.Signal {
	names := make([]model.Signal, len(detectionRules))
	for i, rule := range detectionRules {
		names[i] = rule.signal
	}
	return names
}

// DetectBuildSystems classifies a set of repository-relative paths into the
// complete build signal set. It performs no I/O and has no failure mode.
func DetectBuildSystems(paths []string) *model.Detection {
	views := make([]pathView, len(paths))
	for i, p := range paths {
		base := p
		if idx := strings.LastIndex(p, "/"); idx >= 0 {
			base = p[idx+1:]
		}
		views[i] = pathView{raw: p, base: base, lowerBase: strings.ToLower(base)}
	}

	detection := &model.Detection{
		Signals:      make(model.BuildSignalSet, len(detectionRules)),
		FilesPresent: []string{},
		CIProviders:  []string{},
	}

	for i, rule := range detectionRules {
		present := false
		for _, v := range views {
			if rule.match(v) {
				present = true
				break
			}
		}

		detection.Signals[i] = model.SignalValue{Name: rule.signal, Present: present}
		if present {
			detection.FilesPresent = append(detection.FilesPresent, rule.label)
		}
	}

	for _, name := range ciProviderOrder {
		if detection.Signals.Get(name) {
			detection.CIProviders = append(detection.CIProviders, string(name))
		}
	}
	detection.DetectedFileCount = len(detection.FilesPresent)

	return detection
}
