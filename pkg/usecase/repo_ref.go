package usecase

import (
	"regexp"

	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

var githubURLPattern = regexp.MustCompile(`^https?://github\.com/(?P<owner>[^/]+)/(?P<repo>[^/#]+)(?:/.*)?$`)

// ParseRepoRef resolves a repository URL into a RepoRef. Only
// http(s)://github.com/owner/repo[/...] URLs match; anything else returns
// false, which callers treat as an unsupported host rather than an error.
func ParseRepoRef(rawURL string) (model.RepoRef, bool) {
	m := githubURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return model.RepoRef{}, false
	}

	return model.RepoRef{
		Host:  model.RepoHostGitHub,
		Owner: m[githubURLPattern.SubexpIndex("owner")],
		Name:  m[githubURLPattern.SubexpIndex("repo")],
	}, true
}
