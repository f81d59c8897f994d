// Package render fills the markdown bodies of new task and project records.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"
)

// ErrUnknownKind indicates a template kind with no registered template.
var ErrUnknownKind = errors.New("unknown template kind")

const taskBody = `
# {{.title}}

↑ Part of [[../README|{{.project}} {{.project_name}}]]

## Context
{{.context}}

## Next Action
- [ ] {{.title}} #next

## Definition of Done
- [ ] Done

## Notes
{{.notes}}
`

const projectBody = `
# {{.title}}

## Overview
{{.overview}}

## Tasks

## Last Session
[{{.date}}] - Initial project creation

## Open Questions

## Related

## Resources
`

// Templates renders record bodies from named text/template sources.
type Templates struct {
	set map[string]*template.Template
}

// New parses the built-in task and project templates. Entries in overrides
// replace the built-in source for the same kind.
func New(overrides map[string]string) (*Templates, error) {
	sources := map[string]string{
		"task":    taskBody,
		"project": projectBody,
	}
	for kind, src := range overrides {
		sources[kind] = src
	}

	t := &Templates{set: make(map[string]*template.Template, len(sources))}
	for kind, src := range sources {
		tmpl, err := template.New(kind).Option("missingkey=zero").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", kind, err)
		}
		t.set[kind] = tmpl
	}
	return t, nil
}

// Render executes the template for kind with fields.
func (t *Templates) Render(kind string, fields map[string]string) (string, error) {
	tmpl, ok := t.set[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if fields == nil {
		fields = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, fields); err != nil {
		return "", fmt.Errorf("rendering %s: %w", kind, err)
	}
	return buf.String(), nil
}
