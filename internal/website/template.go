package website

import "html/template"

var page = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.6;
      color: #1d2433;
    }
    header { border-bottom: 1px solid #d8dde6; margin-bottom: 1.5rem; }
    dl.meta { display: grid; grid-template-columns: max-content auto; gap: 0.25rem 1rem; }
    dl.meta dt { font-weight: 600; }
    ul.tree { list-style: none; padding-left: 1.25rem; }
    ul.tree li.folder > span { font-weight: 600; }
    ul.tree img { vertical-align: middle; margin-right: 0.5rem; max-height: 100px; }
    address { font-style: normal; }
    footer { margin-top: 2rem; font-size: 0.85rem; color: #5b6475; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <dl class="meta">
      {{- if .Extent}}
      <dt>Extent</dt><dd>{{.Extent}}</dd>
      {{- end}}
      {{- if .Date}}
      <dt>Date of description</dt><dd>{{.Date}}</dd>
      {{- end}}
      {{- if .Languages}}
      <dt>Languages</dt><dd>{{range $i, $l := .Languages}}{{if $i}}, {{end}}{{$l}}{{end}}</dd>
      {{- end}}
    </dl>
  </header>
  {{- if .Biography}}
  <section id="biography">
    <h2>Biographical history</h2>
    {{.Biography}}
  </section>
  {{- end}}
  {{- if .Scope}}
  <section id="scope">
    <h2>Scope and content</h2>
    {{.Scope}}
  </section>
  {{- end}}
  {{- if .Tree}}
  <section id="contents">
    <h2>Contents</h2>
    {{template "nodes" .Tree}}
  </section>
  {{- end}}
  {{- if .Contact}}
  <section id="contact">
    <h2>Contact</h2>
    <address>{{range .Contact}}{{.}}<br>{{end}}</address>
  </section>
  {{- end}}
  <footer>
    <p>
      <a href="{{.Name}}.xml">EAD finding aid</a> |
      <a href="{{.Name}}.json">IIIF manifest</a>
    </p>
    {{- if .SiteKey}}
    <p>Site key: <code>{{.SiteKey}}</code></p>
    {{- end}}
  </footer>
</body>
</html>
{{define "nodes"}}<ul class="tree">
{{- range .}}
  {{- if .Folder}}
  <li class="folder"><span>{{.Title}}</span> <small>({{.Count}})</small>{{template "nodes" .Children}}</li>
  {{- else}}
  <li class="item" id="{{.ID}}">
    {{- if .Display}}<a href="{{.Display}}">{{end -}}
    {{- if .Thumbnail}}<img src="{{.Thumbnail}}" alt="" loading="lazy">{{end -}}
    {{- if .Display}}</a>{{end -}}
    <span>{{.Title}}</span>
    {{- if .Scope}}<p>{{.Scope}}</p>{{end}}
  </li>
  {{- end}}
{{- end}}
</ul>{{end}}`))
