package mail

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"sms_composer/compose"
	"sms_composer/config"
	"sms_composer/form"
)

// HandleQuoteEmail prepares the submitted message and mails its quote to the
// "to" address.
func HandleQuoteEmail(w http.ResponseWriter, r *http.Request, cfg *config.AppConfig, pipeline *compose.Pipeline, dialer MailDialer) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	to := r.FormValue("to")
	message := r.FormValue("message")

	// Check for missing required fields
	if strings.TrimSpace(to) == "" {
		http.Error(w, "Missing recipient email address", http.StatusBadRequest)
		return
	}
	vars := form.Variables(r)
	if compose.IsBlank(message, vars) {
		http.Error(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}

	prepared := pipeline.Prepare(message, vars)

	err := SendQuote(cfg, to, prepared, dialer)
	if err != nil {
		if errors.Is(err, ErrInvalidAddress) {
			http.Error(w, "Invalid email address format", http.StatusBadRequest)
		} else {
			http.Error(w, "Failed to send email due to an internal server issue", http.StatusInternalServerError)
		}
		log.Printf("Error while sending quote email: %v", err)
		return
	}

	// Successful response
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write([]byte("Quote sent successfully\n"))
	if err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
