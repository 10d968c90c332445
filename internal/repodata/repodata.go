package repodata

import "encoding/json"

type URLType string

const (
	// URLTypeGithub: owner/repo are encoded in the path
	URLTypeGithub URLType = "github"
	// URLTypeSubdomain: owner is the leftmost label of the host
	URLTypeSubdomain URLType = "subdomain"
	URLTypeUnknown   URLType = "unknown"
)

/*
RepoData is the repository identifier extracted from a request.
An empty Owner or Repo means "absent" (serialized as null).
*/
type RepoData struct {
	Owner   string
	Repo    string
	URLType URLType
	Host    string
}

type repoDataJSON struct {
	Owner   *string `json:"owner"`
	Repo    *string `json:"repo"`
	URLType URLType `json:"urlType"`
	Host    string  `json:"host"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r RepoData) MarshalJSON() ([]byte, error) {
	return json.Marshal(repoDataJSON{
		Owner:   optional(r.Owner),
		Repo:    optional(r.Repo),
		URLType: r.URLType,
		Host:    r.Host,
	})
}

func (r *RepoData) UnmarshalJSON(data []byte) error {
	var v repoDataJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = RepoData{URLType: v.URLType, Host: v.Host}
	if v.Owner != nil {
		r.Owner = *v.Owner
	}
	if v.Repo != nil && r.Owner != "" {
		r.Repo = *v.Repo
	}
	if r.URLType == "" {
		r.URLType = URLTypeUnknown
	}
	return nil
}

// HasOwner returns true if the request identifies at least an owner
func (r RepoData) HasOwner() bool {
	return r.Owner != ""
}

// FullName returns "owner/repo", or "owner" when there is no repo
func (r RepoData) FullName() string {
	if r.Repo == "" {
		return r.Owner
	}
	return r.Owner + "/" + r.Repo
}
