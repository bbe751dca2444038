package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/logging"
	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/submission"
)

type api struct {
	reg       *Registry
	submitter *submission.Submitter
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sessionFrom resolves the {id} URL parameter, writing a 404 when unknown.
func (a *api) sessionFrom(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := a.reg.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return s, true
}

func (a *api) listExercises(w http.ResponseWriter, r *http.Request) {
	all := exercises.All()
	out := make([]exerciseView, len(all))
	for i, ex := range all {
		out[i] = newExerciseView(ex)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) createSession(w http.ResponseWriter, r *http.Request) {
	s, err := a.reg.Create(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, newStateView(s))
}

func (a *api) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateView(s))
}

func (a *api) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.reg.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) query(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFrom(w, r)
	if !ok {
		return
	}
	var req struct {
		SQL string `json:"sql"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	out := s.Execute(r.Context(), req.SQL)
	writeJSON(w, http.StatusOK, outcomeView{
		Result:   newResultView(out.Result),
		Index:    out.Index,
		Credited: out.Credited,
		Advanced: out.Advanced,
		State:    newStateView(s),
	})
}

func (a *api) reveal(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFrom(w, r)
	if !ok {
		return
	}
	answer := s.RevealSolution(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"answer": answer,
		"state":  newStateView(s),
	})
}

func (a *api) jump(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFrom(w, r)
	if !ok {
		return
	}
	var req struct {
		Index *int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		writeError(w, http.StatusBadRequest, "index required")
		return
	}
	if err := s.JumpTo(r.Context(), *req.Index); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newStateView(s))
}

func (a *api) reset(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFrom(w, r)
	if !ok {
		return
	}
	if err := s.ResetDatabase(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newStateView(s))
}

func (a *api) hint(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFrom(w, r)
	if !ok {
		return
	}
	h := s.Hint(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"text":   h.Text,
		"source": string(h.Source),
	})
}

func (a *api) submit(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFrom(w, r)
	if !ok {
		return
	}
	if a.submitter == nil {
		writeError(w, http.StatusNotImplemented, "submission is not configured")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	receipt, err := a.submitter.Submit(r.Context(), s.ID(), req.Name, s.State())
	if errors.Is(err, submission.ErrMissingName) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if receipt == nil {
		writeError(w, http.StatusInternalServerError, logging.PresentError("submit", err))
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, newReceiptView(receipt, logging.Mask))
}
