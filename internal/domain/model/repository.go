package model

// RepoRef identifies a GitHub repository by owner and name.
type RepoRef struct {
	Owner string
	Name  string
}

// FullName returns the "owner/name" form.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}
