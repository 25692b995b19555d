package service

import "context"

// NotificationService sends push notifications to a customer's device, used to
// announce order status changes. Optional: a nil service disables pushes.
type NotificationService interface {
	// SendSingleNotification sends a push notification to a single device token.
	SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error
}
