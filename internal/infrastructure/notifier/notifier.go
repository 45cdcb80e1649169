package notifier

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

// SendCallback posts the completion payload to the configured callback URL.
// Fire and forget: delivery failures are logged, never retried, and never
// surface to the injection pipeline.
func SendCallback(callbackURL string, payload CallbackPayload) {
	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			slog.Error("failed to marshal callback payload", "order_id", payload.OrderID, "error", err)
			return
		}

		req, err := http.NewRequest(http.MethodPost, callbackURL, bytes.NewBuffer(body))
		if err != nil {
			slog.Error("failed to create callback request", "order_id", payload.OrderID, "error", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			slog.Warn("order callback failed", "order_id", payload.OrderID, "error", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			slog.Info("order callback sent", "order_id", payload.OrderID, "url", callbackURL)
		} else {
			slog.Warn("order callback returned non-2xx", "order_id", payload.OrderID, "status", resp.StatusCode)
		}
	}()
}
