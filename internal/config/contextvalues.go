package config

type contextKey string

const (
	// ContextKeyRepoData is the key used to store the resolved repository in the request context.
	ContextKeyRepoData contextKey = "repoData"
)

// ResolveStatistics counts how requests were addressed since the server started
type ResolveStatistics struct {
	Requests  int64 `json:"requests"`
	Github    int64 `json:"github"`
	Subdomain int64 `json:"subdomain"`
	Unknown   int64 `json:"unknown"`
	NoOwner   int64 `json:"no_owner"`
}
