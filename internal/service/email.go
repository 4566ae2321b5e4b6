package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendMonthlyStatement(ctx context.Context, email, name string, balanceCents int64, period string, transactions []domain.CreditTransaction) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(name, email)

	subject := fmt.Sprintf("Your FabZClean store credit statement for %s", period)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nHere is your store credit activity for %s:\n\n", name, period)
	for _, t := range transactions {
		fmt.Fprintf(&b, "%s  %-10s  %+d.%02d  (balance %d.%02d)  %s\n",
			t.CreatedAt.Format("2006-01-02"), t.Type,
			t.SignedDeltaCents/100, abs64(t.SignedDeltaCents%100),
			t.BalanceAfter/100, abs64(t.BalanceAfter%100),
			t.Description)
	}
	fmt.Fprintf(&b, "\nCurrent balance: %d.%02d\n\nBest regards,\nThe FabZClean Team\n",
		balanceCents/100, abs64(balanceCents%100))

	message := mail.NewSingleEmail(from, subject, recipient, b.String(), "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send statement email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
