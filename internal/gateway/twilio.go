package gateway

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioGateway sends real SMS and voice traffic through the Twilio REST API.
type TwilioGateway struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioGateway builds a gateway using the given account credentials and
// sender number. Credentials are validated lazily by the provider on first use.
func NewTwilioGateway(accountSID, authToken, from string) *TwilioGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioGateway{client: client, from: from}
}

func (g *TwilioGateway) SendMessage(ctx context.Context, to, body string) (string, error) {
	params := &api.CreateMessageParams{}
	params.SetFrom(g.from)
	params.SetTo(to)
	params.SetBody(body)

	msg, err := g.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("send sms to %s: %w", to, err)
	}
	if msg.Sid == nil {
		return "", fmt.Errorf("send sms to %s: provider returned no message sid", to)
	}
	return *msg.Sid, nil
}

func (g *TwilioGateway) PlaceCall(ctx context.Context, to, voiceMarkup string) (string, error) {
	params := &api.CreateCallParams{}
	params.SetFrom(g.from)
	params.SetTo(to)
	params.SetTwiml(voiceMarkup)

	call, err := g.client.Api.CreateCall(params)
	if err != nil {
		return "", fmt.Errorf("place call to %s: %w", to, err)
	}
	if call.Sid == nil {
		return "", fmt.Errorf("place call to %s: provider returned no call sid", to)
	}
	return *call.Sid, nil
}
