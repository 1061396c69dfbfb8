package main

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sms_composer/compose"
	"sms_composer/config"
	"sms_composer/form"
	"sms_composer/mail"
	"sms_composer/sms"
)

// app carries what the handlers share. Nothing in it is modified after
// startup.
type app struct {
	cfg      *config.AppConfig
	pipeline *compose.Pipeline
	queue    *sms.SMSQueue
	dialer   mail.MailDialer
}

type prepareResponse struct {
	Text            string               `json:"text"`
	CharacterSet    compose.CharacterSet `json:"characterSet"`
	Length          int                  `json:"length"`
	Segments        int                  `json:"segments"`
	PerSegmentLimit int                  `json:"perSegmentLimit"`
	UnitPrice       float64              `json:"unitPrice"`
	Cost            float64              `json:"cost"`
	Currency        string               `json:"currency"`
	WithinLimit     bool                 `json:"withinLimit"`
}

type variablesResponse struct {
	Variables []string `json:"variables"`
}

func newMux(a *app, rl *RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	protect := func(h http.HandlerFunc) http.Handler {
		return rl.LimitMiddleware(a.requireAPIKey(h))
	}
	mux.Handle("/prepare", protect(a.handlePrepare))
	mux.Handle("/variables", protect(a.handleVariables))
	mux.Handle("/send-sms", protect(a.handleSendSMS))
	mux.Handle("/quote-email", protect(func(w http.ResponseWriter, r *http.Request) {
		mail.HandleQuoteEmail(w, r, a.cfg, a.pipeline, a.dialer)
	}))
	return mux
}

func (a *app) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authenticate(r, a.cfg.APIKey) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

// authenticate fails closed: with no API key configured nothing gets in.
func authenticate(r *http.Request, apiKey string) bool {
	if apiKey == "" {
		return false
	}
	clientAPIKey := r.Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(clientAPIKey), []byte(apiKey)) == 1
}

func (a *app) handlePrepare(w http.ResponseWriter, r *http.Request) {
	message := r.FormValue("message")
	vars := form.Variables(r)
	if compose.IsBlank(message, vars) {
		http.Error(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}

	p := a.pipeline.Prepare(message, vars)
	writeJSON(w, http.StatusOK, prepareResponse{
		Text:            p.Text,
		CharacterSet:    p.Segmentation.CharacterSet,
		Length:          p.Segmentation.Length,
		Segments:        p.Segmentation.Segments,
		PerSegmentLimit: p.Segmentation.PerSegmentLimit,
		UnitPrice:       p.Quote.UnitPrice,
		Cost:            p.Quote.Total,
		Currency:        a.cfg.Currency,
		WithinLimit:     p.WithinLimit,
	})
}

func (a *app) handleVariables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, variablesResponse{
		Variables: compose.UniqueVariables(compose.Sanitize(r.FormValue("message"))),
	})
}

func (a *app) handleSendSMS(w http.ResponseWriter, r *http.Request) {
	phone := r.FormValue("phone")
	if !sms.ValidatePhone(phone) {
		http.Error(w, "Invalid phone number format", http.StatusBadRequest)
		return
	}

	prepared, err := sms.Prepare(a.pipeline, r.FormValue("message"), form.Variables(r))
	switch {
	case errors.Is(err, sms.ErrEmptyMessage):
		http.Error(w, "Message cannot be empty", http.StatusBadRequest)
		return
	case errors.Is(err, sms.ErrMessageTooLong):
		http.Error(w, "Message too long", http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("Failed to prepare SMS: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := sms.CheckProvider(a.queue.Provider(), prepared); err != nil {
		http.Error(w, "Message too long for a single SMS", http.StatusBadRequest)
		return
	}

	msg := sms.NewSMS(phone, prepared)
	if !a.queue.TrySend(msg) {
		http.Error(w, "SMS queue is full", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("X-Message-Id", msg.ID)
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte("SMS queued successfully\n"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
