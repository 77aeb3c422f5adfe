package sms

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"work-diary/backend/config"
)

// Result is the structured outcome of one delivery attempt. Senders
// never return Go errors for provider failures; callers inspect the
// result and decide whether to surface a user-facing error.
type Result struct {
	Success      bool   `json:"success"`
	SID          string `json:"sid,omitempty"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Results groups the per-channel outcomes of a notification.
type Results struct {
	SMS  *Result `json:"sms,omitempty"`
	Call *Result `json:"call,omitempty"`
}

// Sender delivers SMS messages and voice calls through Twilio.
type Sender struct {
	client *twilio.RestClient
	from   string
	logger *zap.Logger
}

// NewSender creates a Sender. Without account credentials the client is
// left nil and every send reports a failed Result instead of panicking.
func NewSender(cfg *config.SMSConfig, logger *zap.Logger) *Sender {
	s := &Sender{from: cfg.FromNumber, logger: logger}
	if cfg.AccountSID != "" && cfg.AuthToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
		logger.Info("twilio client initialized")
	}
	return s
}

// formatPhoneNumber normalizes Indian numbers the way the carrier
// expects them ("+91" followed by a space).
func formatPhoneNumber(number string) string {
	if strings.HasPrefix(number, "+91") && !strings.HasPrefix(number, "+91 ") {
		return "+91 " + strings.TrimPrefix(number, "+91")
	}
	return number
}

func (s *Sender) notConfigured(reason string) *Result {
	s.logger.Warn("sms sending skipped", zap.String("reason", reason))
	return &Result{Success: false, Status: "failed", ErrorMessage: reason}
}

// SendSMS sends a text message.
func (s *Sender) SendSMS(to, body string) *Result {
	if s.client == nil {
		return s.notConfigured("twilio client not initialized")
	}
	if s.from == "" {
		return s.notConfigured("twilio phone number not configured")
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(formatPhoneNumber(to))
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		s.logger.Error("sms send failed", zap.String("to", to), zap.Error(err))
		return &Result{Success: false, Status: "failed", ErrorMessage: err.Error()}
	}

	res := &Result{Success: true}
	if msg.Sid != nil {
		res.SID = *msg.Sid
	}
	if msg.Status != nil {
		res.Status = *msg.Status
	}
	s.logger.Info("sms sent", zap.String("to", to), zap.String("sid", res.SID))
	return res
}

// MakeCall places a voice call that reads the message aloud.
func (s *Sender) MakeCall(to, message string) *Result {
	if s.client == nil {
		return s.notConfigured("twilio client not initialized")
	}
	if s.from == "" {
		return s.notConfigured("twilio phone number not configured")
	}

	twiml := fmt.Sprintf(`<Response>
  <Say voice="alice" language="en-US">Hello. This is an important message from Work Diary.</Say>
  <Pause length="1"/>
  <Say voice="alice" language="en-US">%s</Say>
  <Pause length="1"/>
  <Say voice="alice" language="en-US">Thank you.</Say>
</Response>`, escapeTwiML(message))

	params := &twilioapi.CreateCallParams{}
	params.SetTo(formatPhoneNumber(to))
	params.SetFrom(s.from)
	params.SetTwiml(twiml)

	call, err := s.client.Api.CreateCall(params)
	if err != nil {
		s.logger.Error("voice call failed", zap.String("to", to), zap.Error(err))
		return &Result{Success: false, Status: "failed", ErrorMessage: err.Error()}
	}

	res := &Result{Success: true}
	if call.Sid != nil {
		res.SID = *call.Sid
	}
	if call.Status != nil {
		res.Status = *call.Status
	}
	s.logger.Info("voice call placed", zap.String("to", to), zap.String("sid", res.SID))
	return res
}

// SendNotification delivers a message over the requested channels.
// method is "sms", "call" or "both".
func (s *Sender) SendNotification(to, message, method, title string) *Results {
	var results Results

	if method == "sms" || method == "both" {
		body := message
		if title != "" {
			body = title + ": " + message
		}
		results.SMS = s.SendSMS(to, body)
	}

	if method == "call" || method == "both" {
		body := message
		if title != "" {
			body = title + ". " + message
		}
		results.Call = s.MakeCall(to, body)
	}

	return &results
}

// escapeTwiML escapes the XML special characters of a spoken message.
func escapeTwiML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
