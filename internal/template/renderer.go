package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// templateFuncMap provides custom functions available in all templates.
var templateFuncMap = template.FuncMap{
	// jsonEscape escapes a string for embedding inside a JSON string literal.
	"jsonEscape": func(s string) string {
		b, err := json.Marshal(s)
		if err != nil {
			return s
		}
		return string(b[1 : len(b)-1])
	},
	"join": strings.Join,
}

// unexpandedTokenPattern detects template actions that survived rendering,
// such as a literal "{{.Name}}" copied into content. JSX object literals like
// "{{ flex: 1 }}" are not actions and do not match.
var unexpandedTokenPattern = regexp.MustCompile(`\{\{-?\s*\.?[A-Za-z_][A-Za-z0-9_.]*\s*-?\}\}`)

// Renderer renders template content in strict mode.
type Renderer interface {
	// Render parses content as a Go text/template named name and executes
	// it with data. Returns ErrMissingTemplateKey if a key is missing and
	// ErrUnexpandedToken if an action remains after rendering.
	Render(name string, content []byte, data any) ([]byte, error)
}

type renderer struct{}

// NewRenderer creates a strict Renderer.
func NewRenderer() Renderer {
	return renderer{}
}

// Render parses and executes a template with missingkey=error.
func (renderer) Render(name string, content []byte, data any) ([]byte, error) {
	tmpl, err := template.New(name).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	result := buf.Bytes()
	if loc := unexpandedTokenPattern.Find(result); loc != nil {
		return nil, fmt.Errorf("%w: found %q in %s", ErrUnexpandedToken, string(loc), name)
	}
	return result, nil
}
