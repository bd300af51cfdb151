package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"storefront-backend/internal/domains/order/model"
)

type EmailService interface {
	// SendOrderConfirmation mails the customer their order summary and
	// copies the store admin when one is configured.
	SendOrderConfirmation(ctx context.Context, order *model.Order) error
}

type smtpEmailService struct {
	smtpAddr   string
	from       string
	adminEmail string
}

func NewSMTPEmailService(smtpHost, smtpPort, from, adminEmail string) EmailService {
	return &smtpEmailService{
		smtpAddr:   smtpHost + ":" + smtpPort,
		from:       from,
		adminEmail: adminEmail,
	}
}

func (s *smtpEmailService) SendOrderConfirmation(ctx context.Context, order *model.Order) error {
	subject := fmt.Sprintf("Order confirmation - %s", order.OrderNumber)
	body := orderConfirmationBody(order)

	recipients := []string{order.Customer.Email}
	if s.adminEmail != "" {
		recipients = append(recipients, s.adminEmail)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, order.Customer.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.from, recipients, msg); err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	return nil
}

func orderConfirmationBody(order *model.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s,\n\n", order.Customer.FullName)
	fmt.Fprintf(&b, "Thank you for your order! Your order number is %s.\n\n", order.OrderNumber)

	for _, item := range order.Items {
		selection := ""
		if item.Color != "" || item.Size != "" {
			selection = fmt.Sprintf(" (%s)", strings.TrimSpace(strings.Join([]string{item.Color, item.Size}, " ")))
		}
		fmt.Fprintf(&b, "  %dx %s%s - %s %s\n",
			item.Quantity, item.ProductName, selection, item.Subtotal.StringFixed(2), order.Currency)
	}

	fmt.Fprintf(&b, "\nSubtotal: %s %s\n", order.Subtotal.StringFixed(2), order.Currency)
	fmt.Fprintf(&b, "Delivery: %s %s\n", order.DeliveryFee.StringFixed(2), order.Currency)
	fmt.Fprintf(&b, "Total: %s %s\n\n", order.Total.StringFixed(2), order.Currency)
	fmt.Fprintf(&b, "Delivery address: %s\n", order.Customer.FullAddress)

	return b.String()
}
