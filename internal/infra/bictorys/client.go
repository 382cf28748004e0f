package bictorys

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Bictorys has no Go SDK; checkout sessions are created over plain HTTPS and
// webhooks are authenticated with an HMAC-SHA256 signature header.

var (
	Mock          bool
	BaseURL       string
	APIKey        string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string

	httpClient = &http.Client{Timeout: 15 * time.Second}
)

func LoadConfig() {
	Mock = os.Getenv("BICTORYS_MOCK") == "true" || os.Getenv("BICTORYS_API_KEY") == ""
	BaseURL = getEnv("BICTORYS_BASE_URL", "https://api.bictorys.com/pay/v1")
	APIKey = os.Getenv("BICTORYS_API_KEY")
	WebhookSecret = os.Getenv("BICTORYS_WEBHOOK_SECRET")
	SuccessURL = getEnv("BICTORYS_SUCCESS_URL", "http://localhost:3000/paiement/succes")
	CancelURL = getEnv("BICTORYS_CANCEL_URL", "http://localhost:3000/paiement/annule")

	if Mock {
		log.Println("⚠️ Bictorys en mode mock (aucun appel réseau)")
	} else {
		log.Println("✅ Client Bictorys configuré:", BaseURL)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type CheckoutRequest struct {
	Amount      int    `json:"amount"`
	Currency    string `json:"currency"`
	Reference   string `json:"merchantReference"`
	Phone       string `json:"customerPhone,omitempty"`
	SuccessURL  string `json:"successRedirectUrl"`
	CancelURL   string `json:"errorRedirectUrl"`
	Description string `json:"description,omitempty"`
}

type CheckoutSession struct {
	CheckoutURL string `json:"link"`
	Reference   string `json:"merchantReference"`
}

// CreateCheckout opens a payment session for the given merchant reference.
// In mock mode no network call is made and the returned URL points straight
// at the success page, which lets the whole flow run locally.
func CreateCheckout(amount int, currency, reference, phone string) (*CheckoutSession, error) {
	if Mock {
		return &CheckoutSession{
			CheckoutURL: fmt.Sprintf("%s?ref=%s&mock=1", SuccessURL, reference),
			Reference:   reference,
		}, nil
	}

	body, err := json.Marshal(CheckoutRequest{
		Amount:      amount,
		Currency:    currency,
		Reference:   reference,
		Phone:       phone,
		SuccessURL:  SuccessURL,
		CancelURL:   CancelURL,
		Description: "Abonnement mensuel Teranga Pro",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, BaseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bictorys: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bictorys: status %d: %s", resp.StatusCode, raw)
	}

	var session CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("bictorys: invalid response: %w", err)
	}
	if session.Reference == "" {
		session.Reference = reference
	}
	return &session, nil
}

// VerifySignature checks the X-Signature header against the raw webhook body.
// An empty secret disables verification (local development only).
func VerifySignature(body []byte, signature string) bool {
	if WebhookSecret == "" {
		return true
	}
	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
