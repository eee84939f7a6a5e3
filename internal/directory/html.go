package directory

import (
	"html/template"
	"io"
	"strings"
)

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Tharaday API</title>
    <style>
      body {
        margin: 0;
        font-family: "Segoe UI", Tahoma, Arial, sans-serif;
        background: #f7f7fb;
        color: #1c1c1c;
      }
      .wrap { max-width: 820px; margin: 40px auto; padding: 24px; }
      .card {
        background: #ffffff;
        border-radius: 12px;
        box-shadow: 0 8px 24px rgba(15, 23, 42, 0.08);
        padding: 24px;
      }
      h1 { margin: 0 0 8px 0; font-size: 24px; }
      p { margin: 0 0 16px 0; color: #475569; }
      ul { padding-left: 18px; margin: 0; }
      li { margin: 6px 0; }
      a { color: #2563eb; text-decoration: none; }
      a:hover { text-decoration: underline; }
      .status {
        display: inline-block;
        margin-top: 12px;
        padding: 6px 10px;
        border-radius: 999px;
        background: #e2e8f0;
        color: #1e293b;
        font-size: 12px;
      }
    </style>
  </head>
  <body>
    <div class="wrap">
      <div class="card">
        <h1>Tharaday API</h1>
        <p>Backend for the Tharaday webapp. Use the endpoints below.</p>
        <div class="status">Try: <a href="/health">/health</a></div>
        <h2>Endpoints</h2>
        <ul>
          {{- range .}}
          <li><strong>{{join .Methods ", "}}</strong> <a href="{{.Path}}">{{.Path}}</a> - {{.Description}}</li>
          {{- end}}
        </ul>
      </div>
    </div>
  </body>
</html>
`))

// RenderHTML writes the index page listing routes. Descriptions are escaped.
func RenderHTML(w io.Writer, routes []Route) error {
	return indexTemplate.Execute(w, routes)
}
