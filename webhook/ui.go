package webhook

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed ui/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type page struct {
	Title string
	// Forwarding shows the Spline webhook URL field.
	Forwarding bool
	// Live connects the page to /ws for delivery events.
	Live bool
}

func (s *Server) page() page {
	return page{
		Title:      s.flavour.Title(),
		Forwarding: s.flavour == Enhanced,
		Live:       s.hub != nil,
	}
}

func renderIndex(w io.Writer, p page) error {
	return indexTemplate.Execute(w, p)
}
