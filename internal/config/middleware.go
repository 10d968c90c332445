package config

import (
	"net/http"

	"github.com/phyber/negroni-gzip/gzip"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

/*
SetupGlobalMiddleware setup the global middleware.
extra handlers (like the repo data resolution) run after the common ones,
right before the handler
*/
func SetupGlobalMiddleware(handler http.Handler, extra ...negroni.Handler) http.Handler {
	n := negroni.New()

	if Config.MiddlewareGzipEnabled {
		n.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	if Config.MiddlewareVerboseLoggerEnabled {
		middleware := NewMiddlewareFromLogger(logrus.StandardLogger(), logrus.DebugLevel, "repomcp")

		for _, u := range Config.MiddlewareVerboseLoggerExcludeURLs {
			middleware.ExcludeURL(u)
		}

		n.Use(middleware)
	}

	if Config.CORSEnabled {
		n.Use(cors.New(cors.Options{
			AllowedOrigins:   Config.CORSAllowedOrigins,
			AllowedHeaders:   Config.CORSAllowedHeaders,
			ExposedHeaders:   Config.CORSExposedHeaders,
			AllowedMethods:   Config.CORSAllowedMethods,
			AllowCredentials: Config.CORSAllowCredentials,
		}))
	}

	if Config.OpenTelemetryEnabled {
		n.Use(NewResolveTracingMiddleware())
	}

	n.Use(setupRecoveryMiddleware())

	for _, h := range extra {
		n.Use(h)
	}

	n.UseHandler(handler)

	return n
}

type recoveryLogger struct{}

func (r *recoveryLogger) Printf(format string, v ...interface{}) {
	logrus.Errorf(format, v...)
}

func (r *recoveryLogger) Println(v ...interface{}) {
	logrus.Errorln(v...)
}

func setupRecoveryMiddleware() *negroni.Recovery {
	r := negroni.NewRecovery()
	r.Logger = &recoveryLogger{}
	r.PrintStack = false
	return r
}
