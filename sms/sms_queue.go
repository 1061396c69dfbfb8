package sms

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"sms_composer/compose"
)

// SMS represents a single prepared SMS message
type SMS struct {
	ID           string
	Recipient    string
	Message      string
	Segments     int
	CharacterSet compose.CharacterSet
}

// NewSMS wraps a prepared message for the queue.
func NewSMS(recipient string, prepared compose.Prepared) *SMS {
	return &SMS{
		ID:           uuid.NewString(),
		Recipient:    recipient,
		Message:      prepared.Text,
		Segments:     prepared.Segmentation.Segments,
		CharacterSet: prepared.Segmentation.CharacterSet,
	}
}

// Sender delivers one SMS through a provider.
type Sender func(*SMS) error

// SMSQueue handles SMS sending in a queue with multiple sender options
type SMSQueue struct {
	queue        chan *SMS
	stopCh       chan struct{}
	wg           sync.WaitGroup
	hardwareSend Sender // Hardware-based sender
	twilioSend   Sender // Twilio-based sender
	provider     string // Selected provider ("hardware" or "twilio")
}

func NewSMSQueue(bufferSize int) *SMSQueue {
	return &SMSQueue{
		queue:  make(chan *SMS, bufferSize),
		stopCh: make(chan struct{}),
	}
}

// SetProvider sets the preferred SMS provider. Providers and senders must be
// configured before Start.
func (q *SMSQueue) SetProvider(provider string) {
	q.provider = provider
}

// Provider returns the selected provider.
func (q *SMSQueue) Provider() string {
	return q.provider
}

// SetHardwareSender configures the hardware SMS sender
func (q *SMSQueue) SetHardwareSender(send Sender) {
	q.hardwareSend = send
}

// SetTwilioSender configures the Twilio SMS sender
func (q *SMSQueue) SetTwilioSender(send Sender) {
	q.twilioSend = send
}

// Send queues an SMS message for sending, blocking while the queue is full
func (q *SMSQueue) Send(sms *SMS) {
	q.queue <- sms
}

// TrySend queues an SMS message unless the queue is full.
func (q *SMSQueue) TrySend(sms *SMS) bool {
	select {
	case q.queue <- sms:
		return true
	default:
		return false
	}
}

// Len returns the number of messages waiting to be sent.
func (q *SMSQueue) Len() int {
	return len(q.queue)
}

// Start begins processing the SMS queue
func (q *SMSQueue) Start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case sms := <-q.queue:
				q.dispatch(sms)
			case <-q.stopCh:
				q.drain()
				return
			}
		}
	}()
}

// drain sends whatever was queued before Stop.
func (q *SMSQueue) drain() {
	for {
		select {
		case sms := <-q.queue:
			q.dispatch(sms)
		default:
			return
		}
	}
}

func (q *SMSQueue) dispatch(sms *SMS) {
	var send Sender
	switch {
	case q.provider == "twilio" && q.twilioSend != nil:
		send = q.twilioSend
	case q.provider == "hardware" && q.hardwareSend != nil:
		send = q.hardwareSend
	default:
		log.Printf("No sender configured for provider %q, dropping SMS %s", q.provider, sms.ID)
		return
	}

	if err := send(sms); err != nil {
		log.Printf("Failed to send SMS %s to %s: %v", sms.ID, maskPhone(sms.Recipient), err)
		return
	}
	log.Printf("SMS %s sent to %s via %s (%d segment(s), %s)", sms.ID, maskPhone(sms.Recipient), q.provider, sms.Segments, sms.CharacterSet)
}

func (q *SMSQueue) Stop() {
	close(q.stopCh)
	q.wg.Wait()
}
