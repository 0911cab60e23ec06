package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrental-backend/internal/logger"
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

func (s *emailService) SendBookingReceived(ctx context.Context, to, name, carLabel string, bookingID, totalCents int32) error {
	subject := "Booking Request Received"
	body := fmt.Sprintf("Hello %s,\n\nWe received your booking request #%d for the %s.\nTotal rental price: %s.\n\nYou will be notified once an administrator reviews it.\n\nBest regards,\nThe Rentals Team",
		name, bookingID, carLabel, formatCents(totalCents))
	return s.send(to, name, subject, body)
}

func (s *emailService) SendBookingApproved(ctx context.Context, to, name, carLabel, startDate, endDate string) error {
	subject := "Booking Approved"
	body := fmt.Sprintf("Hello %s,\n\nYour booking for the %s has been approved.\nRental period: %s to %s.\n\nBest regards,\nThe Rentals Team",
		name, carLabel, startDate, endDate)
	return s.send(to, name, subject, body)
}

func (s *emailService) SendBookingRejected(ctx context.Context, to, name, carLabel string) error {
	subject := "Booking Rejected"
	body := fmt.Sprintf("Hello %s,\n\nUnfortunately your booking for the %s was rejected.\n\nBest regards,\nThe Rentals Team",
		name, carLabel)
	return s.send(to, name, subject, body)
}

func (s *emailService) SendReturnReceipt(ctx context.Context, to, name, carLabel string, totalCents, lateFeeCents, lateDays int32) error {
	subject := "Return Processed"
	body := fmt.Sprintf("Hello %s,\n\nYour return of the %s has been processed.\nRental price: %s.", name, carLabel, formatCents(totalCents))
	if lateDays > 0 {
		body += fmt.Sprintf("\nLate by %d day(s), late fee: %s.", lateDays, formatCents(lateFeeCents))
	} else {
		body += "\nReturned on time."
	}
	body += fmt.Sprintf("\nAmount charged: %s.\n\nBest regards,\nThe Rentals Team", formatCents(totalCents+lateFeeCents))
	return s.send(to, name, subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, to, name, carLabel, endDate string) error {
	subject := "Rental Overdue"
	body := fmt.Sprintf("Hello %s,\n\nYour rental of the %s was due back on %s.\nA late fee accrues for every additional day, so please return the car as soon as possible.\n\nBest regards,\nThe Rentals Team",
		name, carLabel, endDate)
	return s.send(to, name, subject, body)
}

func (s *emailService) SendPasswordReset(ctx context.Context, to, name, code string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Hello %s,\n\nUse the following code to reset your password:\n\n%s\n\nIf you did not request a reset, you can ignore this message.\n\nBest regards,\nThe Rentals Team",
		name, code)
	return s.send(to, name, subject, body)
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.Debug("Email sent", "to", to, "subject", subject)
	return nil
}

func formatCents(cents int32) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
