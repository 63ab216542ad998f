package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var smsInstance *SMSService

// SetSMSService sets the global SMS service instance (call from main.go)
func SetSMSService(s *SMSService) {
	smsInstance = s
}

// GetSMSService returns the global SMS service instance
func GetSMSService() *SMSService {
	return smsInstance
}

// SMSService delivers one-time codes over SMS via Twilio. It is an optional
// collaborator: when the credentials are absent the OTP endpoints fall back
// to echoing the code in the response (development only).
type SMSService struct {
	client *twilio.RestClient
	from   string
}

// NewSMSService creates a new Twilio-backed SMS service
func NewSMSService() (*SMSService, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")

	if accountSid == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &SMSService{
		client: client,
		from:   from,
	}, nil
}

// SendOTP sends a login code to the given mobile number
func (s *SMSService) SendOTP(to, code string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(fmt.Sprintf("Your login code is %s. It expires in 10 minutes.", code))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send OTP SMS: %v", err)
		return err
	}

	log.Printf("OTP SMS sent, SID: %s", *resp.Sid)
	return nil
}
