package repodata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepoDataJSON(t *testing.T) {
	t.Run("happy path: absent fields are null", func(t *testing.T) {
		b, err := json.Marshal(RepoData{Owner: "docs", URLType: URLTypeGithub, Host: "repomcp.com"})
		assert.Nil(t, err)
		assert.JSONEq(t, `{"owner":"docs","repo":null,"urlType":"github","host":"repomcp.com"}`, string(b))
	})

	t.Run("happy path: full repo data", func(t *testing.T) {
		b, err := json.Marshal(RepoData{Owner: "mrdoob", Repo: "three.js", URLType: URLTypeSubdomain, Host: "mrdoob.repomcp.com"})
		assert.Nil(t, err)
		assert.JSONEq(t, `{"owner":"mrdoob","repo":"three.js","urlType":"subdomain","host":"mrdoob.repomcp.com"}`, string(b))
	})

	t.Run("happy path: decode null fields", func(t *testing.T) {
		var r RepoData
		err := json.Unmarshal([]byte(`{"owner":null,"repo":null,"urlType":"unknown","host":"test.com"}`), &r)
		assert.Nil(t, err)
		assert.Equal(t, RepoData{URLType: URLTypeUnknown, Host: "test.com"}, r)
	})

	t.Run("not happy path: repo without owner is dropped", func(t *testing.T) {
		var r RepoData
		err := json.Unmarshal([]byte(`{"owner":null,"repo":"three.js","host":"test.com"}`), &r)
		assert.Nil(t, err)
		assert.Equal(t, "", r.Repo)
		assert.Equal(t, URLTypeUnknown, r.URLType)
	})

	t.Run("not happy path: invalid json", func(t *testing.T) {
		var r RepoData
		err := json.Unmarshal([]byte(`{"owner":`), &r)
		assert.NotNil(t, err)
	})
}

func TestRepoDataHelpers(t *testing.T) {
	assert.Equal(t, "mrdoob/three.js", RepoData{Owner: "mrdoob", Repo: "three.js"}.FullName())
	assert.Equal(t, "docs", RepoData{Owner: "docs"}.FullName())
	assert.True(t, RepoData{Owner: "docs"}.HasOwner())
	assert.False(t, RepoData{}.HasOwner())
}

func TestResolveInvariants(t *testing.T) {
	resolver := NewResolver(DefaultConfig())

	hosts := []string{
		"", "repomcp.com", "www.repomcp.com", "o.repomcp.com", ".repomcp.com", "o.github.io",
		"localhost", "localhost:3000", "localhost:", "localhost:a", ":", "test.com",
		DefaultPreviewHost, "a.b.c.repomcp.com", "[::1]:3000",
	}
	urls := []string{
		"", "/", "//", "///", "/docs", "/o", "/o/r", "/o/r/blob/main/x.go", "https://", "http://x",
		"https://repomcp.com/o/r", "o/r", "?", "#", "/o/r?x=1", ".", "...", "github.com/o/r",
		"https://o.github.io", "\x00/\xff", "localhost:3000/docs",
	}

	for _, host := range hosts {
		for _, u := range urls {
			got := resolver.Resolve(host, u)
			assert.Equal(t, host, got.Host)
			assert.Contains(t, []URLType{URLTypeGithub, URLTypeSubdomain, URLTypeUnknown}, got.URLType)
			if got.Repo != "" {
				assert.NotEqual(t, "", got.Owner, "host=%q url=%q", host, u)
			}
			if got.URLType == URLTypeUnknown {
				assert.Equal(t, "", got.Owner, "host=%q url=%q", host, u)
			}

			fromURL := resolver.ResolveFromURL(u)
			if fromURL.Repo != "" {
				assert.NotEqual(t, "", fromURL.Owner, "url=%q", u)
			}
		}
	}

	t.Run("happy path: scheme stripping is idempotent", func(t *testing.T) {
		hosts := []string{"repomcp.com", "o.repomcp.com", "repomcp.com:8080", "REPOMCP.COM", DefaultPreviewHost + ":8787", "localhost:3000"}
		for _, host := range hosts {
			for _, path := range []string{"/o/r", "/docs", "/o/r/tree/main"} {
				bare := resolver.Resolve(host, path)
				assert.Equal(t, bare, resolver.Resolve(host, "https://"+host+path), "host=%q path=%q", host, path)
				assert.Equal(t, bare, resolver.Resolve(host, "http://"+host+path), "host=%q path=%q", host, path)
				assert.NotEqual(t, "", bare.Owner, "host=%q path=%q", host, path)
			}
		}
	})

	t.Run("happy path: every shape gives the same pair", func(t *testing.T) {
		for _, u := range []string{"github.com/o/r", "o.github.io/r", "repomcp.com/o/r", "o.repomcp.com/r", "o/r"} {
			got := resolver.ResolveFromURL(u)
			assert.Equal(t, "o", got.Owner, u)
			assert.Equal(t, "r", got.Repo, u)
		}
	})
}
