package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/tictactoe-ai/internal/app"
	"github.com/jaminalder/tictactoe-ai/internal/domain"
	"github.com/jaminalder/tictactoe-ai/internal/engine"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"lower": func(d domain.Difficulty) string {
			switch d {
			case domain.Easy:
				return "easy"
			case domain.Medium:
				return "medium"
			default:
				return "hard"
			}
		},
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>TicTacToe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
.row{display:flex}
.cell button{width:4em;height:4em;font-size:1.5em}
.cell.win button{background:#8f8}
.alert{color:#b00}
</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>TicTacToe</h1>
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="board-live" hx-sse="swap:board">{{template "board" .}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
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

const indexTemplate = `<h1>TicTacToe</h1>
<form action="/game" method="post">
  <p>Select Difficulty:</p>
  {{range .Difficulties}}
  <label><input type="radio" name="difficulty" value="{{lower .}}"{{if eq . $.Selected}} checked{{end}}> {{.}}</label>
  {{end}}
  <button>Start Game</button>
</form>`

const boardTemplate = `
<div id="board">
  <p class="difficulty">Difficulty: {{.Difficulty}}</p>
  <p class="score">Score - X: {{.Score.X}} | O: {{.Score.O}}</p>
  <p class="status">{{.Status}}</p>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{range .Rows}}
  <div class="row">
    {{range .}}
    <form class="cell{{if .Winning}} win{{end}}" hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post" action="/game/{{$.ID}}/play">
      <input type="hidden" name="r" value="{{.Row}}">
      <input type="hidden" name="c" value="{{.Col}}">
      <button type="submit"{{if not .Playable}} disabled{{end}}>{{.Symbol}}</button>
    </form>
    {{end}}
  </div>
  {{end}}
  {{if .Owner}}
  <form hx-post="/game/{{.ID}}/restart" hx-target="#board" hx-swap="outerHTML" method="post" action="/game/{{.ID}}/restart">
    <button type="submit">Restart Game</button>
  </form>
  <form method="post" action="/game/{{.ID}}/quit">
    <button type="submit">Back to Menu</button>
  </form>
  {{end}}
</div>
`

type cellView struct {
	Row, Col int
	Symbol   string
	Winning  bool
	Playable bool
}

type boardView struct {
	ID         string
	Difficulty domain.Difficulty
	Score      engine.Score
	Status     string
	Error      string
	Owner      bool
	Rows       [3][3]cellView
}

func statusText(g engine.Snapshot) string {
	switch g.Outcome.Status {
	case domain.Win:
		return g.Outcome.Winner.String() + " Wins!"
	case domain.Draw:
		return "Draw"
	}
	return "Player: " + g.Turn.String()
}

func newBoardView(gs app.GameState, owner bool, errMsg string) boardView {
	g := gs.Game
	v := boardView{
		ID:         gs.ID,
		Difficulty: g.Difficulty,
		Score:      g.Score,
		Status:     statusText(g),
		Error:      errMsg,
		Owner:      owner,
	}
	humanToMove := owner && g.Phase == engine.AwaitingHumanMove
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			p := domain.Pos{Row: r, Col: c}
			cell := g.Board.At(p)
			v.Rows[r][c] = cellView{
				Row:      r,
				Col:      c,
				Symbol:   cell.String(),
				Winning:  g.Outcome.Contains(p),
				Playable: humanToMove && cell == domain.Empty,
			}
		}
	}
	return v
}
