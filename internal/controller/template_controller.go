// internal/controller/template_controller.go
package controller

import (
    "encoding/json"
    "net/http"
    "strconv"
    "time"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/unclebandit/morningpost-backend/internal/errors"
    "github.com/unclebandit/morningpost-backend/internal/model"
    "github.com/unclebandit/morningpost-backend/internal/repository"
    "github.com/unclebandit/morningpost-backend/internal/service"
)

type TemplateController struct {
    Repo repository.TemplateRepositoryInterface
}

type templatePayload struct {
    Name     string `json:"name"`
    Subject  string `json:"subject"`
    Body     string `json:"body"`
    IsActive *bool  `json:"is_active,omitempty"`
}

func (p *templatePayload) validate() error {
    if p.Name == "" || p.Subject == "" || p.Body == "" {
        return appErrors.NewValidation("name, subject and body are required")
    }
    return nil
}

func (c *TemplateController) ListTemplates(w http.ResponseWriter, r *http.Request) {
    templates, err := c.Repo.ListAll()
    if err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, templates)
}

func (c *TemplateController) getByID(w http.ResponseWriter, r *http.Request) (*model.EmailTemplate, bool) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondError(w, appErrors.NewValidation("invalid template id"))
        return nil, false
    }
    template, err := c.Repo.GetByID(id)
    if err != nil {
        respondError(w, err)
        return nil, false
    }
    return template, true
}

func (c *TemplateController) GetTemplate(w http.ResponseWriter, r *http.Request) {
    template, ok := c.getByID(w, r)
    if !ok {
        return
    }
    respondJSON(w, http.StatusOK, template)
}

func (c *TemplateController) CreateTemplate(w http.ResponseWriter, r *http.Request) {
    var body templatePayload
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondError(w, appErrors.NewValidation("invalid body"))
        return
    }
    if err := body.validate(); err != nil {
        respondError(w, err)
        return
    }

    template := &model.EmailTemplate{
        Name:    body.Name,
        Subject: body.Subject,
        Body:    body.Body,
    }
    if body.IsActive != nil {
        template.IsActive = *body.IsActive
    }
    if err := c.Repo.Create(template); err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusCreated, template)
}

func (c *TemplateController) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
    template, ok := c.getByID(w, r)
    if !ok {
        return
    }

    var body templatePayload
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondError(w, appErrors.NewValidation("invalid body"))
        return
    }

    if body.Name != "" {
        template.Name = body.Name
    }
    if body.Subject != "" {
        template.Subject = body.Subject
    }
    if body.Body != "" {
        template.Body = body.Body
    }
    if body.IsActive != nil {
        template.IsActive = *body.IsActive
    }

    if err := c.Repo.Update(template); err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, template)
}

func (c *TemplateController) ToggleTemplate(w http.ResponseWriter, r *http.Request) {
    template, ok := c.getByID(w, r)
    if !ok {
        return
    }

    template.IsActive = !template.IsActive
    if err := c.Repo.Update(template); err != nil {
        respondError(w, err)
        return
    }
    respondJSON(w, http.StatusOK, template)
}

func (c *TemplateController) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondError(w, appErrors.NewValidation("invalid template id"))
        return
    }
    if err := c.Repo.Delete(id); err != nil {
        respondError(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

// PreviewTemplate renders the body with sample data so the console can
// show what an email will look like before activating the template.
func (c *TemplateController) PreviewTemplate(w http.ResponseWriter, r *http.Request) {
    template, ok := c.getByID(w, r)
    if !ok {
        return
    }

    sample := service.Quote{
        Text:   "The only way to do great work is to love what you do.",
        Author: "Steve Jobs",
        Kind:   "quote",
    }

    body := service.RenderTemplate(template.Body, map[string]string{
        "name":         "John Doe",
        "email":        "john@example.com",
        "date":         time.Now().Format("January 2, 2006"),
        "quote":        service.QuoteHTML(sample),
        "quote_text":   sample.Text,
        "quote_author": sample.Author,
    })

    respondJSON(w, http.StatusOK, map[string]string{
        "subject": service.RenderSubject(template.Subject, "John Doe"),
        "body":    body,
    })
}
