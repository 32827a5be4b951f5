package notify

import "go.uber.org/zap"

// Notification is the payload handed to the delivery collaborator.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Notifier delivers user-facing notifications. Delivery is best-effort:
// callers log failures and never let them affect session state.
type Notifier interface {
	Send(n Notification) error
}

// LogNotifier writes notifications to the structured log instead of a real
// transport. Used by the CLI and as the default when no transport is wired.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(notification Notification) error {
	n.logger.Info("notification",
		zap.String("title", notification.Title),
		zap.String("body", notification.Body),
		zap.Any("data", notification.Data),
	)
	return nil
}
