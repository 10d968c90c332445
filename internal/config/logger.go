package config

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// LoggerMiddleware is a negroni handler logging every request through logrus
type LoggerMiddleware struct {
	Logger *logrus.Logger
	Name   string
	Level  logrus.Level

	excludeURLs map[string]bool
	clock       func() time.Time
}

func NewMiddlewareFromLogger(logger *logrus.Logger, level logrus.Level, name string) *LoggerMiddleware {
	return &LoggerMiddleware{
		Logger:      logger,
		Name:        name,
		Level:       level,
		excludeURLs: make(map[string]bool),
		clock:       time.Now,
	}
}

// ExcludeURL stops logging requests on the given path
func (m *LoggerMiddleware) ExcludeURL(u string) {
	if u == "" {
		return
	}
	m.excludeURLs[u] = true
}

func (m *LoggerMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if m.excludeURLs[r.URL.Path] {
		next(rw, r)
		return
	}

	start := m.clock()
	next(rw, r)
	latency := m.clock().Sub(start)

	status := 0
	if nrw, ok := rw.(negroni.ResponseWriter); ok {
		status = nrw.Status()
	}

	m.Logger.WithFields(logrus.Fields{
		"name":    m.Name,
		"method":  r.Method,
		"host":    r.Host,
		"request": r.RequestURI,
		"remote":  r.RemoteAddr,
		"status":  status,
		"took":    latency,
	}).Log(m.Level, "completed handling request")
}
