// LegalConnect Webhook Receiver Example
//
// This is a minimal example of how to receive and verify LegalConnect
// catalog-change webhooks (lawyer.created, lawyer.updated, lawyer.deleted).
//
// Usage:
//   export LEGALCONNECT_WEBHOOK_SECRET="your_secret_here"
//   go run main.go
//
// Then register a webhook pointing to https://your-server/webhook via
// POST /api/webhooks. The secret is returned once at registration time.

package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"
)

// CatalogEvent represents the webhook payload for catalog changes.
type CatalogEvent struct {
	EventType string     `json:"eventType"`
	EventID   string     `json:"eventId"`
	Timestamp string     `json:"timestamp"`
	Data      LawyerData `json:"data"`
}

type LawyerData struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Firm          string `json:"firm"`
	Tier          string `json:"tier"`
	PracticeArea  string `json:"practiceArea"`
	LocationState string `json:"locationState"`
}

func main() {
	secret := os.Getenv("LEGALCONNECT_WEBHOOK_SECRET")
	if secret == "" {
		log.Fatal("LEGALCONNECT_WEBHOOK_SECRET environment variable is required")
	}

	http.HandleFunc("/webhook", webhookHandler(secret))
	http.HandleFunc("/health", healthHandler)

	log.Println("Starting webhook receiver on :9000")
	log.Println("Endpoint: http://localhost:9000/webhook")
	log.Fatal(http.ListenAndServe(":9000", nil))
}

func webhookHandler(secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Printf("Error reading body: %v", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		signature := r.Header.Get("X-LegalConnect-Signature")
		timestamp := r.Header.Get("X-LegalConnect-Timestamp")
		if signature == "" || timestamp == "" {
			log.Println("Missing signature headers")
			http.Error(w, "Missing signature", http.StatusUnauthorized)
			return
		}

		if !verifySignature(signature, timestamp, body, secret) {
			log.Println("Invalid signature")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		var event CatalogEvent
		if err := json.Unmarshal(body, &event); err != nil {
			log.Printf("Error parsing JSON: %v", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		log.Printf("✓ Received %s event %s", event.EventType, event.EventID)
		log.Printf("  Delivery: %s", r.Header.Get("X-LegalConnect-Delivery-Id"))
		log.Printf("  Lawyer:   %s (%s)", event.Data.Name, event.Data.Firm)
		log.Printf("  Area:     %s / %s", event.Data.PracticeArea, event.Data.LocationState)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "received"})
	}
}

// verifySignature verifies the HMAC-SHA256 signature from LegalConnect.
//
// The signature header carries a hex digest of HMAC-SHA256 over the
// canonical string "{timestamp}.{body}", keyed with the webhook secret
// issued at registration.
func verifySignature(signature, timestamp string, body []byte, secret string) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	// Reject stale or future-dated deliveries (±5 min tolerance).
	if math.Abs(float64(time.Now().Unix()-ts)) > 300 {
		log.Println("Signature timestamp too old or in future")
		return false
	}

	signedPayload := timestamp + "." + string(body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signedPayload))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
