package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

const (
	TemplateNewReservationAdmin      = "nueva-reserva-admin"
	TemplateReservationConfirmClient = "reserva-confirmada-cliente"
)

//go:embed templates/*.html
var templateFiles embed.FS

type renderer struct {
	tpl *template.Template
}

func newRenderer() (*renderer, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	}).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &renderer{tpl: tpl}, nil
}

func (r *renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
