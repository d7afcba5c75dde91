package gateway

import "context"

// Gateway is the boundary to the external telephony/SMS provider. Both
// operations are fire-and-forget: once the provider accepts a submission
// there is no way to take it back.
type Gateway interface {
	// SendMessage submits one SMS and returns the provider's message ID.
	SendMessage(ctx context.Context, to, body string) (string, error)
	// PlaceCall starts an outbound voice call that plays the given
	// voice-response markup, returning the provider's call ID.
	PlaceCall(ctx context.Context, to, voiceMarkup string) (string, error)
}
