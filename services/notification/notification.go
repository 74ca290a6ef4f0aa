package notification

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	userRepo "voyago/database/repository/user"
	"voyago/models"
	"voyago/services/tasks"
	"voyago/utils"
)

// NotificationService defines methods for sending FCM pushes and
// scheduling deferred trip reminders.
type NotificationService interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyBookingConfirmed(ctx context.Context, booking *models.Booking) error
	ScheduleTripReminder(ctx context.Context, booking *models.Booking) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	Tasks  *asynq.Client
	Logger *zap.Logger
}

func NewDefaultNotificationService(users userRepo.UserRepository, tasks *asynq.Client, logger *zap.Logger) *DefaultNotificationService {
	return &DefaultNotificationService{Users: users, Tasks: tasks, Logger: logger}
}

// SendUserPush looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("SendUserPush: could not find user %s: %w", userID, err)
	}
	if u == nil || u.FCMToken == "" {
		// No push target registered; nothing to deliver.
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPush: failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyBookingConfirmed pushes the booking reference to the traveler.
func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, booking *models.Booking) error {
	title := "Booking confirmed"
	body := fmt.Sprintf("Your trip is booked. Reference %s, starting %s.", booking.Reference, booking.StartDate)
	return s.SendUserPush(ctx, booking.UserID, title, body, map[string]string{
		"type":      "booking_confirmed",
		"bookingId": booking.ID,
		"reference": booking.Reference,
	})
}

// ScheduleTripReminder enqueues a reminder push for the morning before the
// trip starts. Bookings starting within a day get no reminder.
func (s *DefaultNotificationService) ScheduleTripReminder(ctx context.Context, booking *models.Booking) error {
	start, ok := utils.ParseDate(booking.StartDate)
	if !ok {
		return fmt.Errorf("ScheduleTripReminder: booking %s has invalid start date %q", booking.ID, booking.StartDate)
	}
	fireAt := start.AddDate(0, 0, -1).Add(8 * time.Hour)
	if !fireAt.After(time.Now()) {
		return nil
	}

	task, opts, err := tasks.NewTripReminderTask(models.TripReminderPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Reference: booking.Reference,
		StartDate: booking.StartDate,
	}, fireAt)
	if err != nil {
		return err
	}

	info, err := s.Tasks.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("ScheduleTripReminder: failed to enqueue: %w", err)
	}
	s.Logger.Debug("trip reminder scheduled",
		zap.String("taskID", info.ID),
		zap.String("bookingID", booking.ID),
		zap.Time("fireAt", fireAt))
	return nil
}
