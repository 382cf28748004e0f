package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// OTP delivery over the Meta WhatsApp Cloud API. Without a token the code is
// only logged, which is how local development and tests run.

var (
	token       string
	phoneNumber string

	httpClient = &http.Client{Timeout: 10 * time.Second}
)

func LoadConfig() {
	token = os.Getenv("WHATSAPP_TOKEN")
	phoneNumber = os.Getenv("WHATSAPP_PHONE_NUMBER_ID")

	if token == "" {
		log.Println("⚠️ WhatsApp en mode mock (codes OTP affichés dans les logs)")
	} else {
		log.Println("✅ WhatsApp Cloud API configurée")
	}
}

type templatePayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Template         template `json:"template"`
}

type template struct {
	Name       string      `json:"name"`
	Language   language    `json:"language"`
	Components []component `json:"components"`
}

type language struct {
	Code string `json:"code"`
}

type component struct {
	Type       string      `json:"type"`
	SubType    string      `json:"sub_type,omitempty"`
	Index      string      `json:"index,omitempty"`
	Parameters []parameter `json:"parameters"`
}

type parameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendOTP delivers a verification code via the otp_verification template.
func SendOTP(phone, code string) error {
	if token == "" {
		log.Printf("📱 [MOCK] Code OTP pour %s: %s", phone, code)
		return nil
	}

	payload := templatePayload{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "template",
		Template: template{
			Name:     "otp_verification",
			Language: language{Code: "fr"},
			Components: []component{
				{
					Type:       "body",
					Parameters: []parameter{{Type: "text", Text: code}},
				},
				{
					Type:       "button",
					SubType:    "url",
					Index:      "0",
					Parameters: []parameter{{Type: "text", Text: code}},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://graph.facebook.com/v19.0/%s/messages", phoneNumber)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("whatsapp: status %d: %s", resp.StatusCode, raw)
	}
	return nil
}
