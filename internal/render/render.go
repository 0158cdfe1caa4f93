// Package render turns translation reports into text, Markdown or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/osteele/liquid"

	"github.com/sqlc-dev/caseprose/internal/translate"
)

// Format names an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts text, markdown (or md) and json, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, markdown or json)", s)
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJSON:
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

const markdownTemplate = `{% for report in reports %}{% unless forloop.first %}
{% endunless %}### {{ report.header | escape_md }}

{% for line in report.lines %}{{ line.level | indent }}- {{ line.text | escape_md }}
{% endfor %}{% endfor %}`

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

// Renderer renders reports. It is safe for concurrent use.
type Renderer struct {
	markdown *liquid.Template
}

// New compiles the Markdown template.
func New() (*Renderer, error) {
	engine := liquid.NewEngine()

	// Nested list indentation: {{ line.level | indent }}
	engine.RegisterFilter("indent", func(level int) string {
		return strings.Repeat("  ", level)
	})
	// Markdown escaping for SQL text: {{ line.text | escape_md }}
	engine.RegisterFilter("escape_md", func(s string) string {
		return markdownEscaper.Replace(s)
	})

	tpl, err := engine.ParseString(markdownTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse markdown template: %w", err)
	}
	return &Renderer{markdown: tpl}, nil
}

type jsonDocument struct {
	Reports     []*translate.Report `json:"reports"`
	Explanation string              `json:"explanation"`
}

// Render encodes reports in format f.
func (r *Renderer) Render(reports []*translate.Report, f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return []byte(Text(reports)), nil
	case FormatMarkdown:
		return r.renderMarkdown(reports)
	case FormatJSON:
		return json.MarshalIndent(jsonDocument{Reports: reports, Explanation: Text(reports)}, "", "  ")
	}
	return nil, fmt.Errorf("unknown format %q", f)
}

// Text joins the plain-text reports with a blank line between them.
func Text(reports []*translate.Report) string {
	parts := make([]string, len(reports))
	for i, report := range reports {
		parts[i] = strings.TrimRight(report.String(), "\n")
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func (r *Renderer) renderMarkdown(reports []*translate.Report) ([]byte, error) {
	bindings := make([]map[string]interface{}, len(reports))
	for i, report := range reports {
		var lines []map[string]interface{}
		// The first two lines are the header and its blank separator.
		for _, l := range report.Lines()[2:] {
			if l.Text == "" {
				continue
			}
			lines = append(lines, map[string]interface{}{"level": l.Level, "text": l.Text})
		}
		bindings[i] = map[string]interface{}{
			"header": report.Header,
			"lines":  lines,
		}
	}

	out, err := r.markdown.Render(map[string]interface{}{"reports": bindings})
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
