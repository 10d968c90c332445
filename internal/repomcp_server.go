package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/repomcp/repomcp/internal/config"
	"github.com/repomcp/repomcp/internal/repodata"
	"github.com/sirupsen/logrus"
)

/*
RepoServer answers http requests with the repository they address:
- /_/liveness and /_/readiness for health checks
- /_/resolve?url=... resolves any url
- /_/statistics returns how requests were addressed
- any other path returns the repository of the request itself
*/
type RepoServer interface {
	Serve()
	Handler() http.Handler
	Shutdown() error
}

type RepoServerImpl struct {
	resolver   *repodata.Resolver
	middleware *RepoDataMiddleware
	address    string
	port       int
	server     *http.Server
	ready      atomic.Bool
}

type healthStatus struct {
	Status string `json:"status"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func NewRepoServer(resolver *repodata.Resolver, address string, port int) *RepoServerImpl {
	return &RepoServerImpl{
		resolver:   resolver,
		middleware: NewRepoDataMiddleware(resolver),
		address:    address,
		port:       port,
	}
}

func (s *RepoServerImpl) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(internalPathPrefix+"liveness", s.GetLiveness)
	mux.HandleFunc(internalPathPrefix+"readiness", s.GetReadiness)
	mux.HandleFunc(internalPathPrefix+"resolve", s.GetResolve)
	mux.HandleFunc(internalPathPrefix+"statistics", s.GetStatistics)
	mux.HandleFunc("/", s.GetRepoData)

	return config.SetupGlobalMiddleware(mux, s.middleware)
}

func (s *RepoServerImpl) GetLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthStatus{Status: "OK"})
}

func (s *RepoServerImpl) GetReadiness(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, errorMessage{Message: "Not yet ready"})
		return
	}
	writeJSON(w, http.StatusOK, healthStatus{Status: "OK"})
}

func (s *RepoServerImpl) GetResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	u := r.URL.Query().Get("url")
	if u == "" {
		writeJSON(w, http.StatusBadRequest, errorMessage{Message: "missing url parameter"})
		return
	}
	writeJSON(w, http.StatusOK, s.resolver.ResolveFromURL(u))
}

func (s *RepoServerImpl) GetStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.middleware.Statistics())
}

// GetRepoData returns the repository addressed by the request, 404 if there is none
func (s *RepoServerImpl) GetRepoData(w http.ResponseWriter, r *http.Request) {
	data, ok := RepoDataFromContext(r.Context())
	if !ok {
		data = s.resolver.Resolve(r.Host, r.URL.RequestURI())
	}
	if !data.HasOwner() {
		writeJSON(w, http.StatusNotFound, data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("not able to write the response: %v", err)
	}
}

func (s *RepoServerImpl) start(server *http.Server) error {
	s.ready.Store(true)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *RepoServerImpl) Shutdown() error {
	s.ready.Store(false)
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.TODO(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *RepoServerImpl) Serve() {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.address, s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.start(s.server); err != nil {
			logrus.Fatal(err)
		}
	}()

	logrus.Infof("Server started on %s:%d", s.address, s.port)

	// Handle OS signals
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	<-signalCh
	logrus.Info("Received OS signal, stopping repomcp...")

	if err := s.Shutdown(); err != nil {
		logrus.Error(err)
	}
	if err := config.ShutdownTraceProvider(); err != nil {
		logrus.Error(err)
	}
}
