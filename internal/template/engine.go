// Package template renders the playground screen with Go's text/template.
// A screen template has an optional header, an entry section executed once
// per result and an optional footer.
package template

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/agumy/intl-playground/internal/config"
	"github.com/agumy/intl-playground/internal/constants"
	"github.com/agumy/intl-playground/internal/formatter"
	"github.com/agumy/intl-playground/internal/options"
	"github.com/agumy/intl-playground/internal/playground"
	"github.com/agumy/intl-playground/internal/results"
)

// Classic is the built-in screen layout.
var Classic = config.TemplateConfig{
	Header: `Input:       {{.RawText}}{{if not .Valid}}  ({{.InvalidText}}){{end}}
{{if .ShowTargetDate}}Target date: {{.TargetDate}}
{{end}}Locale:      {{.Locale}} ({{.LocaleName}})
{{range .Options}}  {{pad .Field 11 "start"}}{{.Value}}
{{end}}Preview:     {{if .Valid}}{{.Preview}}{{else}}-{{end}}
{{repeat "-" .Width}}
`,
	Entry: `{{printf "%2d" .Index}} |{{.Padded}}| {{.Alignment}}
`,
	Footer: `{{if .Entries}}{{repeat "-" .Width}}
{{end}}{{.Count}} result(s){{if .Valid}}, Enter to output{{end}}
`,
}

// Renderer holds the parsed screen templates.
type Renderer struct {
	templates map[string]*template.Template
	config    *config.Config
}

// ScreenData is what header and footer sections see.
type ScreenData struct {
	RawText        string
	Valid          bool
	InvalidText    string
	TargetDate     string
	ShowTargetDate bool
	Locale         string
	LocaleName     string
	Options        []OptionRow
	Preview        string
	Entries        []EntryRow
	Count          int
	Width          int
}

// OptionRow is one option field and its current choice.
type OptionRow struct {
	Field string
	Value string
}

// EntryRow is what the entry section sees for each result.
type EntryRow struct {
	Index     int
	Text      string
	Alignment string
	// Padded is Text laid out in a column of the view width.
	Padded string
}

// NewRenderer creates a Renderer. Call LoadTemplates before rendering.
func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{
		templates: make(map[string]*template.Template),
		config:    cfg,
	}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"repeat": strings.Repeat,
		"upper":  strings.ToUpper,
		"lower":  strings.ToLower,
		"printf": fmt.Sprintf,
		"pad": func(s string, n int, align string) (string, error) {
			a, err := results.ParseAlignment(align)
			if err != nil {
				return "", err
			}
			return results.Pad(s, n, a), nil
		},
		"width": results.DisplayWidth,
		"join": func(sep string, items []string) string {
			return strings.Join(items, sep)
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}
}

// LoadTemplates parses the built-in classic template and every template in
// the configuration. A configured template named "classic" replaces the
// built-in one.
func (r *Renderer) LoadTemplates() error {
	if r.config == nil {
		return fmt.Errorf("config is nil")
	}

	r.templates = make(map[string]*template.Template)
	funcs := funcMap()

	if err := r.loadSingleTemplate(constants.DefaultTemplateName, Classic, funcs); err != nil {
		return fmt.Errorf("loading built-in template: %w", err)
	}
	for name, tc := range r.config.Templates.Templates {
		if err := r.loadSingleTemplate(name, tc, funcs); err != nil {
			return fmt.Errorf("loading template %s: %w", name, err)
		}
	}
	return nil
}

func (r *Renderer) loadSingleTemplate(name string, tc config.TemplateConfig, funcs template.FuncMap) error {
	var text strings.Builder

	if tc.Header != "" {
		text.WriteString(`{{define "header"}}`)
		text.WriteString(tc.Header)
		text.WriteString("{{end}}")
	}

	if tc.Entry == "" {
		return fmt.Errorf("entry template is required")
	}
	text.WriteString(`{{define "entry"}}`)
	text.WriteString(tc.Entry)
	text.WriteString("{{end}}")

	if tc.Footer != "" {
		text.WriteString(`{{define "footer"}}`)
		text.WriteString(tc.Footer)
		text.WriteString("{{end}}")
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(text.String())
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	r.templates[name] = tmpl
	return nil
}

// Screen builds the template data for a session snapshot using the view
// settings from the configuration.
func (r *Renderer) Screen(snap playground.Snapshot) ScreenData {
	width, showTarget := constants.DefaultViewWidth, true
	if r.config != nil {
		width, showTarget = r.config.View.Width, r.config.View.ShowTargetDate
	}
	return NewScreenData(snap, width, showTarget)
}

// NewScreenData converts a snapshot into template data. Entries are padded
// to width display columns.
func NewScreenData(snap playground.Snapshot, width int, showTarget bool) ScreenData {
	rows := make([]OptionRow, 0, len(options.Fields))
	for _, f := range options.Fields {
		rows = append(rows, OptionRow{Field: string(f), Value: string(snap.Options.Get(f))})
	}

	entries := make([]EntryRow, len(snap.Results))
	for i, e := range snap.Results {
		entries[i] = EntryRow{
			Index:     i,
			Text:      e.Text,
			Alignment: string(e.Alignment),
			Padded:    results.Pad(e.Text, width, e.Alignment),
		}
	}

	locale := string(snap.Options.Locale)
	return ScreenData{
		RawText:        snap.RawText,
		Valid:          snap.Valid,
		InvalidText:    formatter.FormatInvalid,
		TargetDate:     snap.TargetDate,
		ShowTargetDate: showTarget,
		Locale:         locale,
		LocaleName:     formatter.DisplayName(locale),
		Options:        rows,
		Preview:        snap.Preview,
		Entries:        entries,
		Count:          len(entries),
		Width:          width,
	}
}

// Render executes the named template: header, one entry section per
// result, then footer.
func (r *Renderer) Render(name string, data ScreenData) (string, error) {
	tmpl, exists := r.templates[name]
	if !exists {
		return "", fmt.Errorf("template %s not found", name)
	}

	var out bytes.Buffer

	if tmpl.Lookup("header") != nil {
		if err := tmpl.ExecuteTemplate(&out, "header", data); err != nil {
			return "", fmt.Errorf("executing header template: %w", err)
		}
	}

	for _, entry := range data.Entries {
		if err := tmpl.ExecuteTemplate(&out, "entry", entry); err != nil {
			return "", fmt.Errorf("executing entry template: %w", err)
		}
	}

	if tmpl.Lookup("footer") != nil {
		if err := tmpl.ExecuteTemplate(&out, "footer", data); err != nil {
			return "", fmt.Errorf("executing footer template: %w", err)
		}
	}

	return out.String(), nil
}

// RenderSnapshot renders snap with the default template.
func (r *Renderer) RenderSnapshot(snap playground.Snapshot) (string, error) {
	return r.Render(r.DefaultTemplateName(), r.Screen(snap))
}

// sampleScreen exercises every field a template can reference.
func sampleScreen() ScreenData {
	return ScreenData{
		RawText:        "Jan 15, 2024",
		Valid:          true,
		InvalidText:    formatter.FormatInvalid,
		TargetDate:     "1/15/2024",
		ShowTargetDate: true,
		Locale:         constants.LocaleEnUS,
		LocaleName:     "American English",
		Options:        []OptionRow{{Field: "weekday", Value: "short"}},
		Preview:        "Mon, Jan 15, 2024",
		Entries: []EntryRow{{
			Index:     0,
			Text:      "Mon, Jan 15, 2024",
			Alignment: string(results.AlignStart),
			Padded:    "Mon, Jan 15, 2024",
		}},
		Count: 1,
		Width: constants.DefaultViewWidth,
	}
}

// ValidateTemplate executes every section of the named template against
// sample data.
func (r *Renderer) ValidateTemplate(name string) error {
	tmpl, exists := r.templates[name]
	if !exists {
		return fmt.Errorf("template %s not found", name)
	}

	data := sampleScreen()
	var buf bytes.Buffer

	if headerTmpl := tmpl.Lookup("header"); headerTmpl != nil {
		if err := headerTmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("header template validation failed: %w", err)
		}
	}

	entryTmpl := tmpl.Lookup("entry")
	if entryTmpl == nil {
		return fmt.Errorf("entry template is required")
	}
	if err := entryTmpl.Execute(&buf, data.Entries[0]); err != nil {
		return fmt.Errorf("entry template validation failed: %w", err)
	}

	if footerTmpl := tmpl.Lookup("footer"); footerTmpl != nil {
		if err := footerTmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("footer template validation failed: %w", err)
		}
	}

	return nil
}

// ListTemplates returns the names of all loaded templates, sorted.
func (r *Renderer) ListTemplates() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasTemplate checks if a template with the given name exists
func (r *Renderer) HasTemplate(name string) bool {
	_, exists := r.templates[name]
	return exists
}

// DefaultTemplateName returns the configured default template name
func (r *Renderer) DefaultTemplateName() string {
	if r.config != nil && r.config.Templates.Default != "" {
		return r.config.Templates.Default
	}
	return constants.DefaultTemplateName
}
