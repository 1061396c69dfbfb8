package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"sms_composer/config"
	"sms_composer/mail"
	"sms_composer/sms"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.APIKey == "" {
		log.Println("Warning: API_KEY environment variable is not set; all protected endpoints will answer 401.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	smsQueue := sms.NewSMSQueue(cfg.MaxQueueSize)
	smsQueue.SetProvider(cfg.SMSProvider)

	// Hardware setup
	if cfg.SMSProvider == "hardware" {
		port, err := sms.OpenModem(cfg.DevicePath, cfg.SerialBaud)
		if err != nil {
			log.Println(err)
		} else {
			defer port.Close()
			smsQueue.SetHardwareSender(sms.NewModemSender(port).Send)
		}
	}

	// Twilio setup
	if cfg.HasTwilio() {
		smsQueue.SetTwilioSender(sms.NewTwilioSender(cfg.TwilioSID, cfg.TwilioAuth, cfg.TwilioNumber).Send)
	} else if cfg.SMSProvider == "twilio" {
		log.Println("Warning: SMS_PROVIDER is twilio but Twilio credentials are incomplete")
	}

	smsQueue.Start()
	defer smsQueue.Stop()

	rl := NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.BurstLimit)
	go rl.RunEviction(ctx, time.Minute, 10*time.Minute)

	a := &app{
		cfg:      cfg,
		pipeline: cfg.Pipeline(),
		queue:    smsQueue,
		dialer:   mail.NewDialer(cfg),
	}
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           newMux(a, rl),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Printf("Failed to listen on port %s: %v", cfg.ServerPort, err)
		return
	}

	log.Printf("Server is listening on port %s (provider %s, %.2f %s per segment, max %d segments)...",
		cfg.ServerPort, smsQueue.Provider(), cfg.UnitPrice, cfg.Currency, cfg.MaxSegments)
	if err := runServer(ctx, server, ln); err != nil {
		log.Printf("Server error: %v", err)
		return
	}
	log.Println("Server stopped, sending queued SMS")
}

// runServer serves on ln until ctx is done. It returns only after Shutdown
// has let every in-flight request finish, so nothing can be queued once the
// caller stops the SMS queue.
func runServer(ctx context.Context, server *http.Server, ln net.Listener) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
