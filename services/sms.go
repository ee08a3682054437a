package services

import (
	"context"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioTexter sends SMS through Twilio's messages API.
type TwilioTexter struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioTexter returns nil unless TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and
// TWILIO_FROM_NUMBER are all set.
func NewTwilioTexter(cfg map[string]string) *TwilioTexter {
	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	if sid == "" || token == "" || from == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &TwilioTexter{client: client, from: from}
}

// Send texts body to the number to. The Twilio client does not take a context.
func (t *TwilioTexter) Send(ctx context.Context, to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return errs.NewExternalServiceError("twilio", err)
	}
	if resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}
