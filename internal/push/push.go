// Package push broadcasts emergency notifications to browser subscribers via
// the Web Push protocol. Subscriptions live in memory only: a restart clears
// them and browsers re-subscribe on the next page load.
package push

import (
	"log"
	"sync"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/models"
)

type Registry struct {
	publicKey  string
	privateKey string
	subscriber string

	mu   sync.RWMutex
	subs map[string]models.PushSubscription // keyed by endpoint
}

func NewRegistry(publicKey, privateKey, subscriber string) *Registry {
	return &Registry{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
		subs:       make(map[string]models.PushSubscription),
	}
}

// PublicKey returns the VAPID public key browsers need to subscribe.
func (r *Registry) PublicKey() string { return r.publicKey }

// Subscribe registers a browser subscription, replacing any previous
// subscription for the same endpoint.
func (r *Registry) Subscribe(endpoint, p256dh, auth string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[endpoint] = models.PushSubscription{
		Endpoint:  endpoint,
		P256dh:    p256dh,
		Auth:      auth,
		CreatedAt: time.Now().UTC(),
	}
}

// Count returns the number of live subscriptions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// Broadcast sends message to every subscriber. Failures are logged and the
// dead subscription dropped; delivery is best-effort by design.
func (r *Registry) Broadcast(message string) (sent, failed int) {
	r.mu.RLock()
	subs := make([]models.PushSubscription, 0, len(r.subs))
	for _, sub := range r.subs {
		subs = append(subs, sub)
	}
	r.mu.RUnlock()

	var dead []string
	for _, sub := range subs {
		s := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256dh,
				Auth:   sub.Auth,
			},
		}
		resp, err := webpush.SendNotification([]byte(message), s, &webpush.Options{
			Subscriber:      r.subscriber,
			VAPIDPublicKey:  r.publicKey,
			VAPIDPrivateKey: r.privateKey,
			TTL:             30,
		})
		if err != nil {
			log.Printf("Failed to send push to %s: %v", sub.Endpoint, err)
			failed++
			dead = append(dead, sub.Endpoint)
			continue
		}
		resp.Body.Close()
		sent++
	}

	if len(dead) > 0 {
		r.mu.Lock()
		for _, endpoint := range dead {
			delete(r.subs, endpoint)
		}
		r.mu.Unlock()
	}
	return sent, failed
}
