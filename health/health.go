// Package health implements the liveness endpoint that lets a hosting platform
// see a listening port while the bot long polls.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Server struct {
	server *http.Server
	log    *logrus.Logger
}

func NewServer(addr string, log *logrus.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           Router(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Router returns the health check routes: GET / and nothing else.
func Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", ok).Methods(http.MethodGet)

	return router
}

// Run listens until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	errs := make(chan error, 1)

	go func() {
		s.log.WithField("address", s.server.Addr).Info("health check listening")

		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("health check server error (%w)", err)
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return err

	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdown); err != nil {
			s.log.WithError(err).Warn("health check shutdown")
		}

		return nil
	}
}

func ok(w http.ResponseWriter, rq *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
