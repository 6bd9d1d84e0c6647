package userrecords

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/user-records-api/config"
	"github.com/theoremus-urban-solutions/user-records-api/formatter"
	"github.com/theoremus-urban-solutions/user-records-api/records"
)

var (
	server *http.Server
)

// NewAPIFromConfig wires the lookup service and response builder from cfg
func NewAPIFromConfig(cfg config.AppConfig) (*API, error) {
	svc, err := records.NewServiceFromConfig(cfg.Data)
	if err != nil {
		return nil, err
	}
	rb := formatter.NewResponseBuilder(formatter.Options{EscapeXML: cfg.SOAP.EscapeText})
	return NewAPI(svc, rb), nil
}

// NewRouter returns the full handler: routes plus middleware
func NewRouter(a *API, cfg config.AppConfig) http.Handler {
	router := mux.NewRouter()
	get := []string{http.MethodGet, http.MethodHead}

	router.Path("/").HandlerFunc(a.handleIndex).Methods(get...)
	router.Path("/api/health").HandlerFunc(a.handleHealth).Methods(get...)
	a.CreateRoutes(router.PathPrefix("/api").Subrouter())

	router.NotFoundHandler = http.HandlerFunc(a.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(a.handleNotFound)

	var h http.Handler = router
	h = normalizePath(h)
	h = a.recoverer(h)
	h = corsHandler(cfg.CORS, h)
	h = Logging(h)
	h = RequestID(h)
	return h
}

// StartServer starts listening in the background
func StartServer(cfg config.AppConfig, handler http.Handler) {
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutMS) * time.Millisecond,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("addr", addr).Msgf("server is running on http://localhost:%d", cfg.Server.Port)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then shuts the server down
func HandleGracefulShutdown(timeout time.Duration) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		} else {
			log.Info().Msg("server shut down successfully")
		}
	}
}
