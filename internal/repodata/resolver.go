package repodata

import (
	"regexp"
	"strings"
)

const (
	DefaultAliasDomain = "repomcp.com"
	DefaultPagesDomain = "github.io"
	DefaultPreviewHost = "git-mcp.talya7625.workers.dev"
	DefaultDevHost     = "localhost"

	githubDomain = "github.com"
)

// Config is the set of hosts the resolver knows about
type Config struct {
	// AliasDomain is the branded domain mirroring github (e.g. repomcp.com)
	AliasDomain string
	// PagesDomain is the github pages domain (github.io)
	PagesDomain string
	// PreviewHosts are temporary/staging hosts treated like the alias domain
	PreviewHosts []string
	// DevHost is the local development host, accepted with an optional port
	DevHost string
}

func DefaultConfig() Config {
	return Config{
		AliasDomain:  DefaultAliasDomain,
		PagesDomain:  DefaultPagesDomain,
		PreviewHosts: []string{DefaultPreviewHost},
		DevHost:      DefaultDevHost,
	}
}

type pattern struct {
	name    string
	re      *regexp.Regexp
	urlType URLType
}

/*
Resolver turns a request (host + url) into a RepoData.
It is immutable once created and can be shared between goroutines.
*/
type Resolver struct {
	aliasDomain  string
	pagesDomain  string
	previewHosts map[string]bool
	devHost      string
	patterns     []pattern
}

func NewResolver(cfg Config) *Resolver {
	r := &Resolver{
		aliasDomain:  normalizeDomain(cfg.AliasDomain, DefaultAliasDomain),
		pagesDomain:  normalizeDomain(cfg.PagesDomain, DefaultPagesDomain),
		devHost:      normalizeDomain(cfg.DevHost, DefaultDevHost),
		previewHosts: make(map[string]bool),
	}
	previews := []string{}
	for _, h := range cfg.PreviewHosts {
		h = normalizeDomain(h, "")
		if h == "" || r.previewHosts[h] {
			continue
		}
		r.previewHosts[h] = true
		previews = append(previews, h)
	}
	r.patterns = buildPatterns(r.aliasDomain, r.pagesDomain, previews, r.devHost)
	return r
}

func normalizeDomain(domain string, def string) string {
	domain = strings.ToLower(strings.Trim(strings.TrimSpace(domain), "."))
	if domain == "" {
		return def
	}
	return domain
}

type rule struct {
	name    string
	expr    string
	urlType URLType
}

// buildPatterns returns the ordered table, first match wins
func buildPatterns(alias, pages string, previews []string, dev string) []pattern {
	qAlias := regexp.QuoteMeta(alias)
	qPages := regexp.QuoteMeta(pages)
	qGithub := regexp.QuoteMeta(githubDomain)
	qDev := regexp.QuoteMeta(dev)
	// the owner of a subdomain is its leftmost label, inner labels are skipped
	label := `([^./]+)(?:\.[^/]+)?\.`

	rules := []rule{
		{"github", `^(?:www\.)?` + qGithub + `/([^/]+)/([^/]+)`, URLTypeGithub},
		{"pages-repo", `^(?:www\.)?` + label + qPages + `/([^/]+)`, URLTypeSubdomain},
		{"alias-path", `^(?:www\.)?` + qAlias + `/([^/]+)/([^/]+)`, URLTypeGithub},
		{"alias-subdomain-repo", `^(?:www\.)?` + label + qAlias + `/([^/]+)`, URLTypeSubdomain},
		{"alias-subdomain", `^(?:www\.)?` + label + qAlias, URLTypeSubdomain},
		{"pages-subdomain", `^(?:www\.)?` + label + qPages, URLTypeSubdomain},
		{"alias-docs", `^(?:www\.)?` + qAlias + `/(docs)`, URLTypeGithub},
	}
	for _, preview := range previews {
		q := regexp.QuoteMeta(preview)
		rules = append(rules,
			rule{"preview-path:" + preview, `^` + q + `/([^/]+)/([^/]+)`, URLTypeGithub},
			rule{"preview-docs:" + preview, `^` + q + `/(docs)`, URLTypeGithub},
		)
	}
	rules = append(rules,
		rule{"dev-path", `^` + qDev + `(?::\d+)?/([^/]+)/([^/]+)`, URLTypeGithub},
		rule{"dev-docs", `^` + qDev + `(?::\d+)?/(docs)`, URLTypeGithub},
		// plain owner/repo, only reached once the host is gone
		rule{"owner-repo", `^([a-zA-Z0-9_-]+)/([a-zA-Z0-9_-]+)`, URLTypeGithub},
	)

	patterns := make([]pattern, 0, len(rules))
	for _, ru := range rules {
		patterns = append(patterns, pattern{
			name:    ru.name,
			re:      regexp.MustCompile(ru.expr),
			urlType: ru.urlType,
		})
	}
	return patterns
}

// match runs the pattern table against a scheme-less url
func (r *Resolver) match(s string) (owner, repo string, p *pattern) {
	for i := range r.patterns {
		m := r.patterns[i].re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		owner = m[1]
		if len(m) > 2 {
			repo = m[2]
		}
		return owner, repo, &r.patterns[i]
	}
	return "", "", nil
}

/*
Resolve returns the repository addressed by a request.
requestURL can be absolute (https://host/path) or path-only (/path).
It never fails: unrecognized input gives absent owner/repo.
*/
func (r *Resolver) Resolve(requestHost, requestURL string) RepoData {
	result := RepoData{
		Host:    requestHost,
		URLType: URLTypeUnknown,
	}

	urlType, hostname, owner := r.classifyHost(requestHost)
	switch urlType {
	case URLTypeGithub:
		result.URLType = URLTypeGithub
		if !hasSeparator(requestURL) {
			return result
		}
		result.Owner, result.Repo, _ = r.match(r.qualify(hostname, requestURL))
	case URLTypeSubdomain:
		result.URLType = URLTypeSubdomain
		result.Owner = owner
		result.Repo = firstSegment(r.pathOf(requestHost, requestURL))
	}
	return result
}

/*
ResolveFromURL resolves a single url string (with or without scheme).
The url type comes from the shape of the matching rule.
*/
func (r *Resolver) ResolveFromURL(absoluteURL string) RepoData {
	rest, _ := stripScheme(absoluteURL)
	rest = stripQuery(rest)

	result := RepoData{
		URLType: URLTypeUnknown,
	}
	if token := firstToken(rest); r.looksLikeHost(token) {
		result.Host = token
	}
	if !hasSeparator(absoluteURL) {
		return result
	}

	owner, repo, p := r.match(rest)
	if p == nil {
		return result
	}
	result.Owner = owner
	result.Repo = repo
	result.URLType = p.urlType
	return result
}

/*
classifyHost returns how the owner is addressed, the host without its port,
and the owner label for subdomain addressing
*/
func (r *Resolver) classifyHost(host string) (URLType, string, string) {
	hostname, ok := stripPort(strings.TrimSpace(host))
	if !ok || hostname == "" {
		return URLTypeUnknown, "", ""
	}
	lower := strings.ToLower(hostname)

	if lower == r.aliasDomain || lower == "www."+r.aliasDomain || lower == r.devHost || r.previewHosts[lower] {
		return URLTypeGithub, lower, ""
	}

	for _, domain := range []string{r.aliasDomain, r.pagesDomain} {
		suffix := "." + domain
		if !strings.HasSuffix(lower, suffix) {
			continue
		}
		labels := strings.Split(hostname[:len(hostname)-len(suffix)], ".")
		if len(labels) > 1 && strings.EqualFold(labels[0], "www") {
			labels = labels[1:]
		}
		if labels[0] == "" {
			return URLTypeUnknown, "", ""
		}
		return URLTypeSubdomain, lower, labels[0]
	}

	return URLTypeUnknown, "", ""
}

/*
qualify returns a scheme-less "host/path" string for the pattern table.
When the url carries the request host (any case, with or without port),
it is replaced by the normalized host.
*/
func (r *Resolver) qualify(host, requestURL string) string {
	rest, hadScheme := stripScheme(requestURL)
	rest = stripQuery(rest)
	if !hadScheme && strings.HasPrefix(rest, "/") {
		return host + rest
	}
	token := firstToken(rest)
	if !hadScheme && !r.looksLikeHost(token) {
		return host + "/" + rest
	}
	if hostname, ok := stripPort(token); ok && strings.EqualFold(hostname, host) {
		return host + rest[len(token):]
	}
	return rest
}

// pathOf returns the path part of the request url (without host)
func (r *Resolver) pathOf(host, requestURL string) string {
	rest, hadScheme := stripScheme(requestURL)
	rest = stripQuery(rest)
	if hadScheme || (!strings.HasPrefix(rest, "/") && strings.EqualFold(firstToken(rest), host)) {
		idx := strings.Index(rest, "/")
		if idx < 0 {
			return ""
		}
		return rest[idx:]
	}
	return rest
}

func (r *Resolver) looksLikeHost(token string) bool {
	if token == "" {
		return false
	}
	if strings.ContainsAny(token, ".:") {
		return true
	}
	return strings.EqualFold(token, r.devHost)
}

func hasSeparator(s string) bool {
	return strings.ContainsAny(s, "/.")
}

func stripScheme(s string) (string, bool) {
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(s, scheme) {
			return s[len(scheme):], true
		}
	}
	return s, false
}

func stripQuery(s string) string {
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		return s[:idx]
	}
	return s
}

func firstToken(s string) string {
	if idx := strings.Index(s, "/"); idx >= 0 {
		return s[:idx]
	}
	return s
}

func firstSegment(path string) string {
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			return segment
		}
	}
	return ""
}

// stripPort removes a trailing ":port", ok is false when the port is not numeric
func stripPort(host string) (string, bool) {
	idx := strings.LastIndex(host, ":")
	if idx < 0 {
		return host, true
	}
	port := host[idx+1:]
	if port == "" {
		return "", false
	}
	for _, c := range port {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return host[:idx], true
}
