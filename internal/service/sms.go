package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lendahand-backend/internal/config"
	"lendahand-backend/internal/logger"

	"github.com/google/uuid"
)

// smsService talks to a Fast2SMS-style bulk gateway. The call is
// best-effort: every failure path produces a failed SMSResult, never an
// error, and the client timeout keeps it shorter than request deadlines.
type smsService struct {
	apiKey   string
	senderID string
	url      string
	client   *http.Client
}

// logSMSService replaces the gateway in dev and tests: it logs the
// message and fabricates a delivered result.
type logSMSService struct{}

func NewSMSService(cfg config.SMSConfig) SMSService {
	if cfg.Mode != "gateway" {
		return &logSMSService{}
	}
	return &smsService{
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
		url:      cfg.URL,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// CleanPhone strips everything but digits so slightly malformed numbers
// still reach the gateway.
func CleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type gatewayResponse struct {
	Return    bool `json:"return"`
	RequestID any  `json:"request_id"`
	Message   any  `json:"message"`
}

func (s *smsService) Send(ctx context.Context, phone, message string) SMSResult {
	cleaned := CleanPhone(phone)
	if cleaned == "" {
		return SMSResult{Success: false, Error: "no digits in phone number"}
	}

	form := url.Values{}
	form.Set("sender_id", s.senderID)
	form.Set("message", message)
	form.Set("language", "english")
	form.Set("route", "q")
	form.Set("numbers", cleaned)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, strings.NewReader(form.Encode()))
	if err != nil {
		return SMSResult{Success: false, Error: err.Error()}
	}
	req.Header.Set("authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("SMS gateway call failed", "error", err)
		return SMSResult{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return SMSResult{Success: false, Error: err.Error()}
	}

	var gw gatewayResponse
	if err := json.Unmarshal(body, &gw); err != nil {
		return SMSResult{Success: false, Error: fmt.Sprintf("unexpected gateway response: %s", body)}
	}
	if !gw.Return {
		return SMSResult{Success: false, Error: fmt.Sprint(gw.Message)}
	}
	return SMSResult{Success: true, MessageID: fmt.Sprint(gw.RequestID)}
}

func (s *logSMSService) Send(ctx context.Context, phone, message string) SMSResult {
	cleaned := CleanPhone(phone)
	if cleaned == "" {
		return SMSResult{Success: false, Error: "no digits in phone number"}
	}
	id := uuid.NewString()
	logger.Info("SMS (log mode)", "to", cleaned, "message", message, "message_id", id)
	return SMSResult{Success: true, MessageID: id}
}
