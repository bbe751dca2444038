package server

import (
	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/sqlexec"
	"github.com/abhisek/sqlpractice/internal/submission"
)

type exerciseView struct {
	Index   int    `json:"index"`
	Number  int    `json:"number"`
	Topic   string `json:"topic"`
	Prompt  string `json:"prompt"`
	HasHint bool   `json:"has_hint"`
}

func newExerciseView(ex exercises.Exercise) exerciseView {
	return exerciseView{
		Index:   ex.Index,
		Number:  ex.Number(),
		Topic:   string(ex.Topic),
		Prompt:  ex.Prompt,
		HasHint: ex.HasHint(),
	}
}

type stateView struct {
	ID           string         `json:"id"`
	CurrentIndex int            `json:"current_index"`
	Current      exerciseView   `json:"current"`
	Statuses     []string       `json:"statuses"`
	Answers      []string       `json:"answers"`
	Counts       session.Counts `json:"counts"`
	Complete     bool           `json:"complete"`
}

func newStateView(s *session.Session) stateView {
	st := s.State()
	statuses := make([]string, st.Len())
	for i, v := range st.Statuses {
		statuses[i] = string(v)
	}
	return stateView{
		ID:           s.ID(),
		CurrentIndex: st.CurrentIndex,
		Current:      newExerciseView(s.Exercises()[st.CurrentIndex]),
		Statuses:     statuses,
		Answers:      st.Answers,
		Counts:       st.Counts(),
		Complete:     st.IsComplete(),
	}
}

type resultView struct {
	Kind         string   `json:"kind"`
	Columns      []string `json:"columns,omitempty"`
	Rows         [][]any  `json:"rows,omitempty"`
	Message      string   `json:"message,omitempty"`
	RowsAffected int64    `json:"rows_affected,omitempty"`
	Error        string   `json:"error,omitempty"`
	Rejected     bool     `json:"rejected,omitempty"`
}

func newResultView(res sqlexec.Result) resultView {
	return resultView{
		Kind:         res.Kind.String(),
		Columns:      res.Columns,
		Rows:         res.Rows,
		Message:      res.Message,
		RowsAffected: res.RowsAffected,
		Error:        res.ErrorText,
		Rejected:     res.Rejected,
	}
}

type outcomeView struct {
	Result   resultView `json:"result"`
	Index    int        `json:"index"`
	Credited bool       `json:"credited"`
	Advanced bool       `json:"advanced"`
	State    stateView  `json:"state"`
}

type uploadView struct {
	Path       string `json:"path"`
	StatusCode int    `json:"status_code"`
	Error      string `json:"error,omitempty"`
}

type receiptView struct {
	Name    string       `json:"name"`
	OK      bool         `json:"ok"`
	Uploads []uploadView `json:"uploads"`
}

func newReceiptView(r *submission.Receipt, mask func(string) string) receiptView {
	v := receiptView{Name: r.Name, OK: r.OK()}
	for _, u := range r.Uploads {
		uv := uploadView{Path: u.Path, StatusCode: u.StatusCode}
		if u.Err != nil {
			uv.Error = mask(u.Err.Error())
		}
		v.Uploads = append(v.Uploads, uv)
	}
	return v
}
