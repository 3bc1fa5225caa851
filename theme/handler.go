package theme

import (
	"encoding/json"
	"net/http"
	"strings"

	"prismplane/model"
)

// Handler handles theme-related HTTP requests.
type Handler struct {
	manager  *Manager
	registry *model.Registry
}

// NewHandler creates a new theme handler. Variant rules are appended for
// every variant in registry.
func NewHandler(manager *Manager, registry *model.Registry) *Handler {
	return &Handler{
		manager:  manager,
		registry: registry,
	}
}

// HandleTheme serves the CSS for a template and scheme.
func (h *Handler) HandleTheme(w http.ResponseWriter, r *http.Request) {
	name := DefaultTemplate
	if q := r.URL.Query().Get("template"); q != "" && h.manager.Stylesheet(q) != nil {
		name = q
	}
	if h.manager.Stylesheet(name) == nil {
		http.NotFound(w, r)
		return
	}

	css := h.manager.CSS(name, r.URL.Query().Get("scheme")) + "\n" + VariantCSS(h.registry.Variants())

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(css))
}

// HandleTemplates lists the available stylesheet names, default first.
func (h *Handler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.manager.ListTemplates()); err != nil {
		http.Error(w, "failed to encode templates", http.StatusInternalServerError)
	}
}

// HandleSchemes returns the available schemes of a template.
func (h *Handler) HandleSchemes(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("template")
	if name == "" {
		name = DefaultTemplate
	}
	if h.manager.Stylesheet(name) == nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}

	type schemeResponse struct {
		Name    string `json:"name"`
		Display string `json:"display"`
		Accent  string `json:"accent"`
	}

	schemes := h.manager.Schemes(name)
	resp := make([]schemeResponse, 0, len(schemes))
	for _, s := range schemes {
		resp = append(resp, schemeResponse{
			Name:    s.Name,
			Display: DisplayName(s),
			Accent:  s.Accent,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode schemes", http.StatusInternalServerError)
	}
}

// DisplayName is the scheme's Display value, or its name title-cased
// ("high-contrast" -> "High Contrast").
func DisplayName(s Scheme) string {
	if s.Display != "" {
		return s.Display
	}
	parts := strings.Split(s.Name, "-")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
