package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"venturelink/models"
)

// Pusher delivers notifications to browser push endpoints using VAPID keys.
type Pusher struct {
	store   PushStore
	subject string
	public  string
	private string
}

// NewPusher returns nil when the VAPID key pair is not configured, which
// disables web push entirely.
func NewPusher(store PushStore, subject, publicKey, privateKey string) *Pusher {
	if publicKey == "" || privateKey == "" {
		return nil
	}
	return &Pusher{store: store, subject: subject, public: publicKey, private: privateKey}
}

type pushPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	From    string `json:"from,omitempty"`
}

// Send pushes the notification to the recipient's subscribed browser, if
// any. Dead endpoints (404/410 from the push service) are pruned.
func (p *Pusher) Send(ctx context.Context, n *models.Notification) error {
	sub, err := p.store.FindPushSubscription(ctx, n.UserID)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil // user never subscribed
	}

	payload, err := json.Marshal(pushPayload{
		Type:    n.Type,
		Message: n.Message,
		From:    n.FromUserID.Hex(),
	})
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotification(payload, &sub.Sub, &webpush.Options{
		Subscriber:      p.subject,
		VAPIDPublicKey:  p.public,
		VAPIDPrivateKey: p.private,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		_ = p.store.DeletePushSubscription(ctx, n.UserID)
		return nil
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}
