// Package notification fans ticket events out to subscriber feeds and
// queues the corresponding emails.
package notification

import (
	"context"

	"trackd/internal/domain/notification"
	"trackd/internal/domain/ticket"
	"trackd/internal/shared/logger"
)

// FanoutService materializes one EventNotification per recipient for a
// freshly appended event. Recipients are the union of tracker-level and
// ticket-level subscribers, deduplicated; the acting participant gets a feed
// entry like everyone else but is excluded from the email recipients.
type FanoutService struct {
	subscriptionRepo ticket.SubscriptionRepository
	notificationRepo notification.EventNotificationRepository
	logger           logger.Interface
}

func NewFanoutService(
	subscriptionRepo ticket.SubscriptionRepository,
	notificationRepo notification.EventNotificationRepository,
	logger logger.Interface,
) *FanoutService {
	return &FanoutService{
		subscriptionRepo: subscriptionRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Fanout writes the feed rows for the event inside the caller's transaction
// and returns the user ids that should receive an email, i.e. every
// recipient except the acting participant. The (user, event) insert is
// idempotent, so replaying fan-out for an event never duplicates feed rows.
func (s *FanoutService) Fanout(ctx context.Context, ev *ticket.Event, trackerID uint) ([]uint, error) {
	trackerSubs, err := s.subscriptionRepo.ListByTracker(ctx, trackerID)
	if err != nil {
		return nil, err
	}
	ticketSubs, err := s.subscriptionRepo.ListByTicket(ctx, ev.TicketID())
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	recipients := make([]uint, 0, len(trackerSubs)+len(ticketSubs))
	for _, sub := range append(trackerSubs, ticketSubs...) {
		if seen[sub.UserID()] {
			continue
		}
		seen[sub.UserID()] = true
		recipients = append(recipients, sub.UserID())
	}

	mailTo := make([]uint, 0, len(recipients))
	for _, userID := range recipients {
		n, err := notification.NewEventNotification(userID, ev.ID())
		if err != nil {
			return nil, err
		}
		if err := s.notificationRepo.SaveIgnoreDuplicate(ctx, n); err != nil {
			return nil, err
		}
		if userID != ev.UserID() {
			mailTo = append(mailTo, userID)
		}
	}

	s.logger.Debugw("event fanned out",
		"event_id", ev.ID(),
		"ticket_id", ev.TicketID(),
		"recipients", len(recipients),
	)
	return mailTo, nil
}
