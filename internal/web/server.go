package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jaminalder/fitz/internal/app"
	"github.com/zeromicro/go-zero/core/logx"
)

// NewServer wires routes and returns an http.Handler. It also installs the
// board fragment as the service's broadcast payload. Simulated boards are
// limited to maxBoardSize on each side.
func NewServer(s *app.Service, maxBoardSize int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, requestLogger, middleware.Recoverer)

	h := &handlers{svc: s, tpl: loadTemplates(), maxBoardSize: maxBoardSize}
	s.SetRenderer(h.renderEvent)

	r.Get("/", h.index)
	r.Get("/tiles", h.tiles)
	r.Post("/match", h.simulate)
	r.Route("/match/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Get("/board", h.board)
		r.Get("/state", h.state)
		r.Get("/events", h.events)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logx.WithContext(r.Context()).WithDuration(time.Since(start)).Infow("http request",
			logx.Field("request_id", middleware.GetReqID(r.Context())),
			logx.Field("method", r.Method),
			logx.Field("path", r.URL.Path),
			logx.Field("status", ww.Status()),
		)
	})
}
