package mail

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"regexp"

	"gopkg.in/gomail.v2"
	"sms_composer/compose"
	"sms_composer/config"
)

var ErrInvalidAddress = errors.New("invalid email address")

var emailPattern = regexp.MustCompile(`^[\w.+-]+@([\w-]+\.)+[\w-]{2,}$`)

var quoteTemplate = template.Must(template.New("quote").Parse(`<h2>SMS quote</h2>
<pre>{{.Text}}</pre>
<table>
<tr><td>Character set</td><td>{{.Segmentation.CharacterSet}}</td></tr>
<tr><td>Length</td><td>{{.Segmentation.Length}}</td></tr>
<tr><td>Segments</td><td>{{.Segmentation.Segments}} (up to {{.Segmentation.PerSegmentLimit}} characters each)</td></tr>
<tr><td>Price per segment</td><td>{{printf "%.2f" .Quote.UnitPrice}} {{.Currency}}</td></tr>
<tr><td>Total</td><td>{{printf "%.2f" .Quote.Total}} {{.Currency}}</td></tr>
<tr><td>Sendable</td><td>{{if .WithinLimit}}yes{{else}}no, limit is {{.MaxSegments}} segments{{end}}</td></tr>
</table>
`))

// MailDialer allows mocking gomail.Dialer
type MailDialer interface {
	DialAndSend(...*gomail.Message) error
}

// NewDialer constructs the real gomail dialer
func NewDialer(cfg *config.AppConfig) MailDialer {
	return gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
}

// SendQuote mails an HTML summary of a prepared SMS and its price to an
// operator before the message goes out.
func SendQuote(cfg *config.AppConfig, to string, prepared compose.Prepared, dialer MailDialer) error {
	if !validateEmail(to) {
		return fmt.Errorf("%w: %s", ErrInvalidAddress, to)
	}

	body, err := renderQuote(cfg, prepared)
	if err != nil {
		return err
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", cfg.SMTPUser)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", quoteSubject(cfg, prepared))
	mailer.SetBody("text/html", body)

	if err := dialer.DialAndSend(mailer); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Quote sent to %s: %d segment(s)", to, prepared.Segmentation.Segments)
	return nil
}

func quoteSubject(cfg *config.AppConfig, prepared compose.Prepared) string {
	return fmt.Sprintf("SMS quote: %d segment(s), %.2f %s", prepared.Quote.Segments, prepared.Quote.Total, cfg.Currency)
}

func renderQuote(cfg *config.AppConfig, prepared compose.Prepared) (string, error) {
	data := struct {
		compose.Prepared
		Currency    string
		MaxSegments int
	}{prepared, cfg.Currency, cfg.MaxSegments}

	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render quote: %w", err)
	}
	return buf.String(), nil
}

func validateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
