package githubapi

import "strings"

// PushEvent is a github webhook push event
type PushEvent struct {
	Ref        string     `json:"ref"`
	After      string     `json:"after"`
	Repository Repository `json:"repository"`
}

// IsTagPush reports whether the push created or moved a tag rather than a branch
func (pe *PushEvent) IsTagPush() bool {
	return strings.HasPrefix(pe.Ref, "refs/tags/")
}

// GetTagName returns the pushed tag without the refs/tags/ prefix
func (pe *PushEvent) GetTagName() string {
	return strings.TrimPrefix(pe.Ref, "refs/tags/")
}

// Repository represents the repository a push event happened on
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    Owner  `json:"owner"`
}

// Owner represents the owner of a repository
type Owner struct {
	Login string `json:"login"`
}

// Release is a tagged release record as returned by the github releases api
type Release struct {
	ID         int    `json:"id"`
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Body       string `json:"body"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	HTMLURL    string `json:"html_url"`
}

type createReleaseRequest struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Body       string `json:"body"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}
