// internal/service/render.go
package service

import (
    "strings"
)

// RenderTemplate replaces every occurrence of each {{key}} in data.
// Tokens that are not in data pass through verbatim, and no escaping is
// applied: template bodies are trusted HTML.
func RenderTemplate(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        result = strings.ReplaceAll(result, "{{"+k+"}}", v)
    }
    return result
}

// RenderSubject personalizes a subject line. Only the recipient name is
// substituted in subjects; everything else is body-only.
func RenderSubject(subject, name string) string {
    return strings.ReplaceAll(subject, "{{name}}", name)
}
