package api

import (
	"fmt"
	"html/template"
	"path/filepath"
)

// LoadTemplates parses the layout and page templates from web/templates.
// Each page defines a template named after its file.
func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	t := template.New("base").Funcs(funcs)
	for _, pattern := range []string{
		"web/templates/layouts/*.html",
		"web/templates/pages/*.html",
		"web/templates/partials/*.html",
	} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		// partials are optional
		if len(matches) == 0 {
			continue
		}
		if _, err := t.ParseFiles(matches...); err != nil {
			return nil, fmt.Errorf("parse %s: %w", pattern, err)
		}
	}
	return t, nil
}
