package notification

import "context"

// NoopNotifier drops every message. Used when no Postmark credentials are
// configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (NoopNotifier) SendWelcome(ctx context.Context, to, name string) error {
	return nil
}

func (NoopNotifier) SendCancellation(ctx context.Context, to, name string) error {
	return nil
}
