package httpapi

import (
	"net/http"

	"github.com/shaply/automesh/shared"
)

// automatonStatus is the wire shape for GET /automaton.
type automatonStatus struct {
	Name        string      `json:"name"`
	State       string      `json:"state"`
	CurrentMode string      `json:"current_mode,omitempty"`
	Command     interface{} `json:"command,omitempty"`
}

func (s *Server) getAutomaton(w http.ResponseWriter, r *http.Request) {
	status := automatonStatus{
		Name:  s.engine.Name(),
		State: s.engine.State().String(),
	}
	if mode := s.engine.CurrentMode(); mode != nil {
		status.CurrentMode = mode.Name()
	}
	if cmd, err := s.engine.GetCommand(); err == nil {
		status.Command = cmd
	}
	sendResponseAsJSON(w, status, http.StatusOK)
}

// modeSummary is the wire shape for a single entry in GET /automaton/modes.
type modeSummary struct {
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

func (s *Server) getModes(w http.ResponseWriter, r *http.Request) {
	current := s.engine.CurrentMode()
	modes := s.engine.Modes()
	summaries := make([]modeSummary, 0, len(modes))
	for _, m := range modes {
		summaries = append(summaries, modeSummary{
			Name:    m.Name(),
			Current: current != nil && current.Name() == m.Name(),
		})
	}
	sendResponseAsJSON(w, summaries, http.StatusOK)
}

func (s *Server) postHalt(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Halt(); err != nil {
		sendErrorResponse(w, err, http.StatusConflict)
		return
	}
	sendResponseAsJSON(w, automatonStatus{
		Name:  s.engine.Name(),
		State: s.engine.State().String(),
	}, http.StatusOK)
}

// getBlackboardSnapshot returns a single point-in-time read of the
// blackboard's outgoing buffer, for callers that don't want a persistent
// websocket connection -- exactly the non-websocket consumer
// MarshalSnapshot was built for.
func (s *Server) getBlackboardSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.blackboard.MarshalSnapshot()
	if err != nil {
		sendErrorResponse(w, err, http.StatusInternalServerError)
		return
	}
	sendJSONResponse(w, snapshot, http.StatusOK)
}

// serveBlackboardWS upgrades the connection and runs the blackboard's
// network thread on it until the connection closes.
func (s *Server) serveBlackboardWS(w http.ResponseWriter, r *http.Request) {
	if err := s.blackboard.Serve(w, r); err != nil {
		shared.DebugError(err)
	}
}
