package web

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jaminalder/fitz/internal/app"
)

type templates struct {
	base  *template.Template
	match *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"cells": func(row string) []string {
			out := make([]string, len(row))
			for i := range row {
				out[i] = row[i : i+1]
			}
			return out
		},
		"cellClass": func(sym string) string {
			switch sym {
			case "*":
				return "p1"
			case "#":
				return "p2"
			default:
				return "empty"
			}
		},
		"status": func(st app.MatchState) string {
			if st.Over {
				return fmt.Sprintf("Player %s wins after %d moves", st.Winner, st.Moves)
			}
			if st.LastMove != "" {
				return fmt.Sprintf("Player %s to move, last %s", st.Turn(), st.LastMove)
			}
			return fmt.Sprintf("Player %s to move", st.Turn())
		},
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>fitz</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>.grid{font-size:1.5em;line-height:1}.p1{color:#c90}.p2{color:#09c}.empty{color:#999}</style>
</head><body>{{template "content" .}}</body></html>`))
	template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
	match := template.Must(template.Must(base.Clone()).New("content").Parse(`
<p><a href="/">All matches</a></p>
<div hx-ext="sse" sse-connect="/match/{{.ID}}/events">
  <div id="board-container" sse-swap="board">{{.BoardHTML}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{base: base, match: match, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const indexTemplate = `<h1>fitz</h1>
{{if .Error}}<div class="alert">{{.Error}}</div>{{end}}
<form action="/match" method="post">
  <label>Player * <select name="p1"><option value="1">type-1</option><option value="2">type-2</option></select></label>
  <label>Player # <select name="p2"><option value="1">type-1</option><option value="2" selected>type-2</option></select></label>
  <label>Height <input name="height" type="number" min="1" max="999" value="8"></label>
  <label>Width <input name="width" type="number" min="1" max="999" value="8"></label>
  <button>Simulate</button>
</form>
<ul id="matches">
{{range .Matches}}  <li><a href="/match/{{.ID}}">{{.Snapshot.Height}}x{{.Snapshot.Width}} {{index .Players 0}} vs {{index .Players 1}}</a>{{if .Over}} won by {{.Winner}}{{end}}</li>
{{end}}</ul>`

const boardTemplate = `<div id="board">
  {{if .Error}}<div class="alert">{{.Error}}</div>{{end}}
  <p class="status">{{status .Match}}</p>
  <pre class="grid">{{range .Match.Snapshot.Rows}}{{range cells .}}<span class="{{cellClass .}}">{{.}}</span>{{end}}
{{end}}</pre>
</div>
`
