package services

import (
	"context"
	"fmt"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// Per-recipient outcome strings. These are surfaced verbatim to the
// admin so they read as plain sentences, not error codes.
const (
	EmailSentResult          = "Email sent"
	EmailNotConfiguredResult = "Email not sent: SMTP not configured."
	SMSSentResult            = "SMS sent"
	SMSNotConfiguredResult   = "SMS not sent: Twilio not configured."
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type NotificationService interface {
	// DispatchStatusChange notifies every owner of the service's property
	// about a status update. Transport failures and missing credentials
	// are reported in the results, never as an error.
	DispatchStatusChange(ctx context.Context, prop *models.Property, svc *models.PropertyService, newStatus string, sendEmail, sendSMS bool) ([]dtos.DispatchResult, error)

	// SendEventReminder emails and texts the provider assigned to a
	// scheduled event. Both sends are best-effort.
	SendEventReminder(ctx context.Context, event *models.ServiceEvent) (emailResult, smsResult string)

	// SendQuoteEmail delivers a prepared quote to the customer with the
	// quote workbook attached.
	SendQuoteEmail(ctx context.Context, quote *models.Quote, workbook EmailAttachment) string
}

type notificationService struct {
	email EmailSender
	sms   SMSSender
	users repositories.UserRepository
}

func NewNotificationService(email EmailSender, sms SMSSender, users repositories.UserRepository) NotificationService {
	return &notificationService{email: email, sms: sms, users: users}
}

/* ------------------------------------------------------------------
   Status change fan-out
------------------------------------------------------------------ */

func (s *notificationService) DispatchStatusChange(ctx context.Context, prop *models.Property, svc *models.PropertyService, newStatus string, sendEmail, sendSMS bool) ([]dtos.DispatchResult, error) {
	owners, err := s.users.ListOwnersForProperty(ctx, prop.ID)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("[Landscaping] Service status updated for %s", prop.Name)
	serviceDesc := fmt.Sprintf("%s (%s)", svc.Category, svc.Frequency)
	body := statusChangeEmailBody(prop.Name, serviceDesc, newStatus, svc)
	smsText := fmt.Sprintf("%s: %s status -> %s. Check your dashboard for details.",
		prop.Name, serviceDesc, newStatus)

	results := make([]dtos.DispatchResult, 0, len(owners))
	for _, owner := range owners {
		res := dtos.DispatchResult{OwnerID: owner.ID, Username: owner.Username}
		if sendEmail && owner.Email != "" {
			res.Email = s.sendEmail(ctx, owner.Email, ownerDisplayName(owner), subject, body)
		}
		if sendSMS && owner.Phone != "" {
			res.SMS = s.sendSMS(ctx, owner.Phone, smsText)
		}
		results = append(results, res)
	}
	return results, nil
}

func statusChangeEmailBody(propName, serviceDesc, newStatus string, svc *models.PropertyService) string {
	return fmt.Sprintf(
		"Hello,\n\n"+
			"The status of a landscaping service for your property has been updated.\n\n"+
			"Property: %s\n"+
			"Service: %s\n"+
			"New Status: %s\n\n"+
			"Times per year: %d\n"+
			"Each time cost: $%s\n"+
			"Total annual cost (for this service): $%s\n\n"+
			"Best regards,\n"+
			"Landscaping & Mowing Admin\n",
		propName,
		serviceDesc,
		newStatus,
		svc.TimesPerYear,
		svc.EachTimeCost.StringFixed(2),
		svc.TotalAnnualCost().StringFixed(2),
	)
}

/* ------------------------------------------------------------------
   Provider reminders
------------------------------------------------------------------ */

func (s *notificationService) SendEventReminder(ctx context.Context, event *models.ServiceEvent) (string, string) {
	subject := fmt.Sprintf("Reminder: %s at %s on %s",
		event.ServiceCategory, event.PropertyName, event.ScheduledDate)
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"This is a friendly reminder to complete the following scheduled activity:\n\n"+
			"- Property: %s\n"+
			"- Activity: %s\n"+
			"- Scheduled date: %s\n\n"+
			"Please update the status once completed.\n\n"+
			"Regards,\nLandscaping Admin",
		event.ProviderName,
		event.PropertyName,
		event.ServiceCategory,
		event.ScheduledDate,
	)

	var emailResult, smsResult string
	if event.ProviderEmail != "" {
		emailResult = s.sendEmail(ctx, event.ProviderEmail, event.ProviderName, subject, body)
	}
	if event.ProviderPhone != "" {
		smsResult = s.sendSMS(ctx, event.ProviderPhone, body)
	}
	return emailResult, smsResult
}

/* ------------------------------------------------------------------
   Quote delivery
------------------------------------------------------------------ */

func (s *notificationService) SendQuoteEmail(ctx context.Context, quote *models.Quote, workbook EmailAttachment) string {
	if quote.CustomerEmail == "" {
		return ""
	}
	propName := quote.PropertyName
	if propName == "" {
		propName = "your property"
	}
	subject := fmt.Sprintf("Landscaping Quote for %s", propName)
	return s.sendEmail(ctx, quote.CustomerEmail, quote.CustomerName, subject, quoteEmailBody(quote), workbook)
}

func quoteEmailBody(quote *models.Quote) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Attached is your landscaping quote based on the agreed service package.\n"+
			"Region: %s\n"+
			"Annual total: $%s\n\n"+
			"Please review and let us know if you have any questions.\n\n"+
			"Thank you,\nYour Landscaping Team",
		quote.CustomerName, quote.RegionLabel, quote.AnnualTotal.StringFixed(2),
	)
}

/* ------------------------------------------------------------------
   Transport wrappers
------------------------------------------------------------------ */

func (s *notificationService) sendEmail(ctx context.Context, toEmail, toName, subject, body string, attachments ...EmailAttachment) string {
	if s.email == nil {
		return EmailNotConfiguredResult
	}
	if err := s.email.Send(ctx, toEmail, toName, subject, body, attachments...); err != nil {
		utils.Logger.WithError(err).Warnf("Email to %s failed", toEmail)
		return fmt.Sprintf("Email error: %v", err)
	}
	return EmailSentResult
}

func (s *notificationService) sendSMS(ctx context.Context, toPhone, body string) string {
	if s.sms == nil {
		return SMSNotConfiguredResult
	}
	if err := s.sms.Send(ctx, toPhone, body); err != nil {
		utils.Logger.WithError(err).Warnf("SMS to %s failed", toPhone)
		return fmt.Sprintf("SMS error: %v", err)
	}
	return SMSSentResult
}

func ownerDisplayName(u *models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
