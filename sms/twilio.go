package sms

import (
	"fmt"
	"log"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the slice of the Twilio REST API the sender needs.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSender sends SMS using Twilio's API
type TwilioSender struct {
	api  messageCreator
	from string
}

func NewTwilioSender(accountSID, authToken, twilioNumber string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{api: client.Api, from: twilioNumber}
}

// Send implements Sender.
func (t *TwilioSender) Send(sms *SMS) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(sms.Recipient)
	params.SetFrom(t.from)
	params.SetBody(sms.Message)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}

	if resp != nil {
		log.Printf("Twilio SMS sent: SID=%s Status=%s", deref(resp.Sid), deref(resp.Status))
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
