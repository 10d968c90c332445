package internal

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/repomcp/repomcp/internal/config"
	"github.com/repomcp/repomcp/internal/repodata"
	"github.com/sirupsen/logrus"
)

// internalPathPrefix is reserved for the service own endpoints (never resolved)
const internalPathPrefix = "/_/"

type resolveStatistics struct {
	requests  atomic.Int64
	github    atomic.Int64
	subdomain atomic.Int64
	unknown   atomic.Int64
	noOwner   atomic.Int64
}

func (s *resolveStatistics) record(data repodata.RepoData) {
	s.requests.Add(1)
	switch data.URLType {
	case repodata.URLTypeGithub:
		s.github.Add(1)
	case repodata.URLTypeSubdomain:
		s.subdomain.Add(1)
	default:
		s.unknown.Add(1)
	}
	if !data.HasOwner() {
		s.noOwner.Add(1)
	}
}

func (s *resolveStatistics) snapshot() config.ResolveStatistics {
	return config.ResolveStatistics{
		Requests:  s.requests.Load(),
		Github:    s.github.Load(),
		Subdomain: s.subdomain.Load(),
		Unknown:   s.unknown.Load(),
		NoOwner:   s.noOwner.Load(),
	}
}

/*
RepoDataMiddleware is a negroni handler resolving the repository addressed
by each request. The result is available to the next handlers through
RepoDataFromContext.
*/
type RepoDataMiddleware struct {
	resolver *repodata.Resolver
	stats    *resolveStatistics
}

func NewRepoDataMiddleware(resolver *repodata.Resolver) *RepoDataMiddleware {
	return &RepoDataMiddleware{
		resolver: resolver,
		stats:    &resolveStatistics{},
	}
}

func (m *RepoDataMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if strings.HasPrefix(r.URL.Path, internalPathPrefix) {
		next(rw, r)
		return
	}

	data := m.resolver.Resolve(r.Host, r.URL.RequestURI())
	m.stats.record(data)

	config.AnnotateRepoData(r.Context(), data)

	logrus.WithFields(logrus.Fields{
		"owner":   data.Owner,
		"repo":    data.Repo,
		"urlType": data.URLType,
		"host":    data.Host,
	}).Debug("request resolved")

	next(rw, r.WithContext(WithRepoData(r.Context(), data)))
}

// Statistics returns the counters since the middleware was created
func (m *RepoDataMiddleware) Statistics() config.ResolveStatistics {
	return m.stats.snapshot()
}

func WithRepoData(ctx context.Context, data repodata.RepoData) context.Context {
	return context.WithValue(ctx, config.ContextKeyRepoData, data)
}

func RepoDataFromContext(ctx context.Context) (repodata.RepoData, bool) {
	data, ok := ctx.Value(config.ContextKeyRepoData).(repodata.RepoData)
	return data, ok
}
