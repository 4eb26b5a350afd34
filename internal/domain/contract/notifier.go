package contract

import "context"

// Notifier delivers a rendered reminder to a destination channel. Errors are
// classified through the domain.DeliveryError taxonomy: permanent errors mean
// the destination is unusable (the schedule gets disabled), anything else is
// retried on a later poll tick.
type Notifier interface {
	Send(ctx context.Context, channelID, message string) error
}

// Authorizer answers whether a caller may edit schedules for a guild. How the
// identity was established (OAuth, session, token) is outside the core.
type Authorizer interface {
	CanManage(ctx context.Context, userID, guildID string) (bool, error)
}
