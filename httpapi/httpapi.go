// Package httpapi exposes a read-only monitoring/control surface over a
// running automaton.HybridAutomaton: current mode, last command, the mode
// list, and a manual halt. It also mounts the blackboard's network
// endpoint, when one is supplied, as the HTTP-facing home for the
// external pub/sub collaborator spec.md §5 describes. It is a thin
// introspection layer, not the engine itself, mirroring the teacher's
// http_server package's Start(ctx, ...)/router-per-resource shape.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/shaply/automesh/automaton"
	"github.com/shaply/automesh/blackboard"
	"github.com/shaply/automesh/shared"

	"github.com/go-chi/chi/v5"
)

// Server wraps the HTTP router, the engine it reports on, and the
// blackboard it exposes over the network (nil if the caller didn't wire
// one in).
type Server struct {
	engine     *automaton.HybridAutomaton
	blackboard *blackboard.BlackBoard
	router     *chi.Mux
	srv        *http.Server
}

// Start builds the router, binds it to HTTP_PORT, and serves until ctx is
// cancelled, exactly like the teacher's http_server.Start: a background
// goroutine runs ListenAndServe, and the caller's ctx cancellation drives
// a graceful Shutdown. bb may be nil, in which case no blackboard routes
// are mounted.
func Start(ctx context.Context, engine *automaton.HybridAutomaton, bb *blackboard.BlackBoard) error {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		return fmt.Errorf("%w: HTTP_PORT environment variable is not set", shared.ErrInvalidInput)
	}

	r := chi.NewRouter()
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	s := &Server{engine: engine, blackboard: bb, router: r, srv: srv}
	s.router.Route("/automaton", s.automatonRoutes)
	if s.blackboard != nil {
		s.router.Route("/blackboard", s.blackboardRoutes)
	}

	serverErr := make(chan error, 1)
	go func() {
		shared.DebugPrint("httpapi: starting on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("%w: %v", shared.ErrSystemError, err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shared.DebugPrint("httpapi: shutting down")
		if err := s.srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%w: shutting down httpapi: %v", shared.ErrSystemError, err)
		}
	}
	return nil
}

func (s *Server) automatonRoutes(r chi.Router) {
	r.Get("/", s.getAutomaton)
	r.Get("/modes", s.getModes)
	r.Post("/halt", s.postHalt)
}

func (s *Server) blackboardRoutes(r chi.Router) {
	r.Get("/", s.getBlackboardSnapshot)
	r.Get("/ws", s.serveBlackboardWS)
}
