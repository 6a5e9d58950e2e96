package providers

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"dwd/internal/models"
	"dwd/internal/structures"
)

const solapiSendURL = "https://api.solapi.com/messages/v4/send"

type SmsProviderInterface interface {
	// Send attempts one SMS delivery, reporting only success or failure.
	// Transport errors are logged, never propagated.
	Send(phone string, text string) bool
	IsConfigured() bool
}

type SolapiProvider struct {
	apiKey    string
	apiSecret string
	sender    string
	apiURL    string
	client    *http.Client
	logger    Logger
}

func NewSmsProvider(conf *structures.Config, logger Logger) SmsProviderInterface {
	timeout := conf.Sms.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SolapiProvider{
		apiKey:    conf.Sms.ApiKey,
		apiSecret: conf.Sms.ApiSecret,
		sender:    conf.Sms.Sender,
		apiURL:    solapiSendURL,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

func (p *SolapiProvider) IsConfigured() bool {
	return p.apiKey != "" && p.apiSecret != "" && p.sender != ""
}

func (p *SolapiProvider) Send(phone string, text string) bool {
	to := models.NormalizePhone(phone)

	if !p.IsConfigured() {
		// Dev mode: no credentials, pretend the send worked so the
		// notification pipeline stays exercisable.
		p.logger.Infof(TypeSms, "[DEV-SMS] to=%s text=%s", models.MaskPhone(to), text)
		return true
	}

	payload := map[string]map[string]string{
		"message": {
			"to":   to,
			"from": p.sender,
			"text": text,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Errorf(TypeSms, "solapi payload: %s", err)
		return false
	}

	req, err := http.NewRequest(http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		p.logger.Errorf(TypeSms, "solapi request: %s", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", p.authHeader())

	res, err := p.client.Do(req)
	if err != nil {
		p.logger.Errorf(TypeSms, "solapi send to %s: %s", models.MaskPhone(to), err)
		return false
	}
	defer res.Body.Close()
	resBody, _ := io.ReadAll(io.LimitReader(res.Body, 512))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		p.logger.Errorf(TypeSms, "solapi send to %s: status %d body %s",
			models.MaskPhone(to), res.StatusCode, resBody)
		return false
	}

	p.logger.Infof(TypeSms, "solapi sent to %s", models.MaskPhone(to))
	return true
}

// authHeader builds the Solapi HMAC-SHA256 authorization header:
// signature = HMAC(secret, date+salt).
func (p *SolapiProvider) authHeader() string {
	date := time.Now().UTC().Format(time.RFC3339)
	salt := randomSalt()

	mac := hmac.New(sha256.New, []byte(p.apiSecret))
	mac.Write([]byte(date + salt))
	signature := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("HMAC-SHA256 apiKey=%s, date=%s, salt=%s, signature=%s",
		p.apiKey, date, salt, signature)
}

func randomSalt() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
