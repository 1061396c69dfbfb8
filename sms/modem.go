package sms

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/tarm/serial"
	"sms_composer/compose"
)

const ctrlZ = "\x1a"

// ModemMaxSegments is the longest message the modem sender accepts.
const ModemMaxSegments = 1

// commandDelay gives the modem time to answer between AT commands.
var commandDelay = 1 * time.Second

// OpenModem opens the serial device a GSM modem is attached to.
func OpenModem(devicePath string, baudRate int) (io.ReadWriteCloser, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        devicePath,
		Baud:        baudRate,
		ReadTimeout: 10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", devicePath, err)
	}
	return port, nil
}

// ModemSender serializes access to a modem shared by the queue.
type ModemSender struct {
	mu   sync.Mutex
	port io.ReadWriter
}

func NewModemSender(port io.ReadWriter) *ModemSender {
	return &ModemSender{port: port}
}

// Send implements Sender.
func (m *ModemSender) Send(s *SMS) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SendViaModem(m.port, s.Recipient, s.Message)
}

// SendViaModem sends an SMS in AT text mode. Wide messages switch the modem
// to the UCS2 character set, which hex-encodes both recipient and body.
// Text mode has no concatenation headers, so only single-segment messages
// are accepted.
func SendViaModem(port io.ReadWriter, recipient, message string) error {
	if !ValidatePhone(recipient) {
		return fmt.Errorf("%w: %s", ErrInvalidRecipient, maskPhone(recipient))
	}
	if message == "" {
		return ErrEmptyMessage
	}
	if n := compose.Segments(message); n > ModemMaxSegments {
		return fmt.Errorf("%w: %d segments", ErrMultipartUnsupported, n)
	}

	log.Printf("Sending SMS to %s", maskPhone(recipient))

	charset, dcs := "GSM", 0
	if compose.Classify(message) == compose.Wide {
		charset, dcs = "UCS2", 8
		recipient = ucs2Hex(recipient)
		message = ucs2Hex(message)
	}

	commands := []struct {
		cmd  string
		what string
	}{
		{"AT+CMGF=1\r", "set text mode"},
		{fmt.Sprintf(`AT+CSCS="%s"`+"\r", charset), "set character set"},
		{fmt.Sprintf("AT+CSMP=17,167,0,%d\r", dcs), "set data coding"},
		{fmt.Sprintf(`AT+CMGS="%s"`+"\r", recipient), "send phone number"},
	}
	for _, c := range commands {
		if _, err := port.Write([]byte(c.cmd)); err != nil {
			return fmt.Errorf("failed to %s: %w", c.what, err)
		}
		time.Sleep(commandDelay)
	}

	// Send message, followed by Ctrl+Z
	if _, err := port.Write([]byte(message + ctrlZ)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	// Read modem response
	response := make([]byte, 1024)
	n, _ := port.Read(response)
	reply := string(response[:n])
	if !strings.Contains(reply, "OK") || strings.Contains(reply, "ERROR") {
		return fmt.Errorf("failed to send SMS, modem response: %q", reply)
	}

	return nil
}

// ucs2Hex encodes s as uppercase hex UTF-16 code units, the form modems
// expect in UCS2 mode.
func ucs2Hex(s string) string {
	var b strings.Builder
	for _, unit := range utf16.Encode([]rune(s)) {
		fmt.Fprintf(&b, "%04X", unit)
	}
	return b.String()
}
