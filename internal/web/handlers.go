package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/jaminalder/fitz/internal/app"
	"github.com/jaminalder/fitz/internal/domain"
)

type handlers struct {
	svc          *app.Service
	tpl          *templates
	maxBoardSize int
}

type boardData struct {
	Match app.MatchState
	Error string
}

func (h *handlers) renderBoard(st app.MatchState, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", boardData{Match: st, Error: errMsg})
}

// renderEvent is the broadcast payload: the board fragment as SSE data lines.
func (h *handlers) renderEvent(st app.MatchState) []byte {
	var buf bytes.Buffer
	for _, line := range bytes.Split(bytes.TrimRight(h.renderBoard(st, ""), "\n"), []byte("\n")) {
		buf.WriteString("data: ")
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.index, "base", struct {
		Matches []app.MatchState
		Error   string
	}{Matches: h.svc.List()}))
}

func (h *handlers) simulate(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	p1, err1 := domain.ParsePlayerKind(r.Form.Get("p1"))
	p2, err2 := domain.ParsePlayerKind(r.Form.Get("p2"))
	height, err3 := strconv.Atoi(r.Form.Get("height"))
	width, err4 := strconv.Atoi(r.Form.Get("width"))
	var errMsg string
	switch {
	case err1 != nil || err2 != nil:
		errMsg = "Invalid player type"
	case err3 != nil || err4 != nil || height > h.maxBoardSize || width > h.maxBoardSize:
		errMsg = "Invalid dimensions"
	}
	if errMsg == "" {
		st, err := h.svc.Simulate(p1, p2, height, width)
		switch {
		case err == nil:
			http.Redirect(w, r, "/match/"+st.ID, http.StatusSeeOther)
			return
		case errors.Is(err, app.ErrHumanSeat):
			errMsg = "Simulated matches need automatic players"
		case errors.Is(err, domain.ErrInvalidDimensions):
			errMsg = "Invalid dimensions"
		default:
			http.Error(w, "failed to simulate", http.StatusInternalServerError)
			return
		}
	}
	writeHTML(w, http.StatusBadRequest, renderTemplate(h.tpl.index, "base", struct {
		Matches []app.MatchState
		Error   string
	}{Matches: h.svc.List(), Error: errMsg}))
}

func (h *handlers) match(w http.ResponseWriter, r *http.Request) (*app.MatchState, bool) {
	st, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
	}
	return st, ok
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	st, ok := h.match(w, r)
	if !ok {
		return
	}
	data := struct {
		ID        string
		BoardHTML template.HTML
	}{ID: st.ID, BoardHTML: template.HTML(h.renderBoard(*st, ""))}
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.match, "base", data))
}

func (h *handlers) board(w http.ResponseWriter, r *http.Request) {
	st, ok := h.match(w, r)
	if !ok {
		return
	}
	writeHTML(w, http.StatusOK, h.renderBoard(*st, ""))
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	st, ok := h.match(w, r)
	if !ok {
		return
	}
	writeJSON(w, st)
}

type tileView struct {
	Index     int        `json:"index"`
	Rotations [][]string `json:"rotations"`
}

func (h *handlers) tiles(w http.ResponseWriter, r *http.Request) {
	set := h.svc.Tiles()
	out := make([]tileView, 0, set.Len())
	for i, t := range set.Tiles() {
		v := tileView{Index: i}
		for _, rot := range domain.Rotations {
			v.Rotations = append(v.Rotations, domain.Rotate(t, rot).Lines())
		}
		out = append(out, v)
	}
	writeJSON(w, out)
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// Plain requests only get the headers
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "event: board\n%s\n", b)
			flusher.Flush()
		}
	}
}
