package handlers

import (
	"encoding/json"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/dispatch"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/push"
)

type Handler struct {
	Dispatcher *dispatch.Dispatcher
	Push       *push.Registry
	Tmpl       *template.Template
	Version    string

	startedAt time.Time
}

func NewHandler(d *dispatch.Dispatcher, reg *push.Registry, tmpl *template.Template, version string) *Handler {
	return &Handler{
		Dispatcher: d,
		Push:       reg,
		Tmpl:       tmpl,
		Version:    version,
		startedAt:  time.Now(),
	}
}

// IndexHandler serves the landing page. The page is presentation only: its
// alert button posts to /api/trigger-emergency.
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if h.Tmpl == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	data := map[string]any{
		"VAPIDPublicKey": h.Push.PublicKey(),
	}
	if err := h.Tmpl.Execute(w, data); err != nil {
		log.Println("template error:", err)
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": h.Version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeXML always answers 200: the telephony gateway drops the call on
// anything else.
func writeXML(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc)
}
