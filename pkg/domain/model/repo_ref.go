package model

// RepoHost identifies the code-forge hosting a repository
type RepoHost string

const (
	RepoHostGitHub  RepoHost = "github"
	RepoHostUnknown RepoHost = "unknown"
)

// RepoRef is the resolved identity of a repository derived from its URL
type RepoRef struct {
	Host  RepoHost // Forge hosting the repository
	Owner string   // Repository owner (user or organization)
	Name  string   // Repository name
}

// FullName returns the "owner/name" form used by the forge API
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}
