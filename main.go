package main

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/config"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/dispatch"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/gateway"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/handlers"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/push"
)

const version = "1.0.0"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gw := gateway.NewTwilioGateway(cfg.AccountSID, cfg.AuthToken, cfg.SenderNumber)
	registry := push.NewRegistry(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushSubscriber)
	dispatcher := dispatch.New(cfg, gw, registry)

	// Parse landing page template
	tmplPath := filepath.Join("web", "templates", "index.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Fatalf("Failed to parse template: %v", err)
	}

	h := handlers.NewHandler(dispatcher, registry, tmpl, version)

	// Landing page
	http.HandleFunc("/", h.IndexHandler)

	// Telephony gateway webhooks
	http.HandleFunc("/api/emergency-call", h.VoiceWebhookHandler)
	http.HandleFunc("/api/sms-handler", h.SMSWebhookHandler)

	// Explicit trigger (landing page button)
	http.HandleFunc("/api/trigger-emergency", h.TriggerEmergencyHandler)

	// Web push
	http.HandleFunc("/api/push/key", h.GetVAPIDKeyHandler)
	http.HandleFunc("/api/push/subscribe", h.SubscribePushHandler)

	// Operational endpoints
	http.HandleFunc("/health", h.HealthHandler)
	http.Handle("/metrics", promhttp.Handler())

	// Serve static files
	fs := http.FileServer(http.Dir("web/static"))
	http.Handle("/static/", http.StripPrefix("/static/", fs))

	log.Printf("Emergency contacts: %d, sender: %s", len(cfg.Roster), cfg.SenderNumber)
	log.Println("Listening on :" + cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatal(err)
	}
}
