// Package services содержит отправку писем-напоминаний по сообщениям из очереди.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/smtp"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

// SenderService превращает сообщение очереди в письмо клиенту.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendExpiringMembershipReminder отправляет напоминание об истекающем
// абонементе. Сообщение без email пропускается без ошибки, чтобы оно
// не возвращалось в очередь бесконечно.
func (s *SenderService) SendExpiringMembershipReminder(body []byte) error {
	var message models.ReminderInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if message.Email == "" {
		s.log.Warn("reminder has no email, skipping",
			slog.String("member_id", message.MemberID),
			slog.String("message_id", message.MessageID))
		return nil
	}

	to := []string{message.Email}
	subject := "Your Ultra Fitness membership is expiring soon"
	bodyText := fmt.Sprintf(
		"Hello, %s!\n\nYour %s membership (member id %s) expires on %s.\n\nPlease renew it at the front desk or in the app to keep your access.",
		message.Name, message.Plan, message.MemberID, message.Validity.Format("02 Jan 2006"))

	if err := s.sendEmail(to, subject, bodyText); err != nil {
		return err
	}
	s.log.Info("reminder sent",
		slog.String("member_id", message.MemberID),
		slog.String("message_id", message.MessageID))
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
