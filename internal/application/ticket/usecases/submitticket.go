package usecases

import (
	"context"

	appnotification "trackd/internal/application/notification"
	appwebhook "trackd/internal/application/webhook"
	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/user"
	"trackd/internal/domain/webhook"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/goroutine"
	"trackd/internal/shared/logger"
)

type SubmitTicketCommand struct {
	TrackerID   uint
	SubmitterID uint
	Title       string
	Description string
}

type SubmitTicketResult struct {
	TicketID uint
	ScopedID uint
	Ref      string
	Title    string
	Status   string
}

// SubmitTicketUseCase creates a ticket. The tracker row is locked for the
// duration of the transaction so scoped id allocation is serialized: two
// concurrent submissions get distinct consecutive numbers and neither is
// lost. Everything downstream of the insert, the created event, the
// submitter's auto-subscription, notification rows, and webhook outbox rows,
// commits atomically with it.
type SubmitTicketUseCase struct {
	trackerRepo      tracker.TrackerRepository
	ticketRepo       ticket.TicketRepository
	eventRepo        ticket.EventRepository
	subscriptionRepo ticket.SubscriptionRepository
	userRepo         user.UserRepository
	resolver         AccessResolver
	fanout           Fanout
	dispatcher       Dispatcher
	mailer           appnotification.EventMailer
	unreadCache      appnotification.UnreadCounterCache
	txManager        db.TxManager
	logger           logger.Interface
}

func NewSubmitTicketUseCase(
	trackerRepo tracker.TrackerRepository,
	ticketRepo ticket.TicketRepository,
	eventRepo ticket.EventRepository,
	subscriptionRepo ticket.SubscriptionRepository,
	userRepo user.UserRepository,
	resolver AccessResolver,
	fanout Fanout,
	dispatcher Dispatcher,
	mailer appnotification.EventMailer,
	unreadCache appnotification.UnreadCounterCache,
	txManager db.TxManager,
	logger logger.Interface,
) *SubmitTicketUseCase {
	return &SubmitTicketUseCase{
		trackerRepo:      trackerRepo,
		ticketRepo:       ticketRepo,
		eventRepo:        eventRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		resolver:         resolver,
		fanout:           fanout,
		dispatcher:       dispatcher,
		mailer:           mailer,
		unreadCache:      unreadCache,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *SubmitTicketUseCase) Execute(ctx context.Context, cmd SubmitTicketCommand) (*SubmitTicketResult, error) {
	if cmd.TrackerID == 0 {
		return nil, errors.NewValidationError("tracker ID is required")
	}
	if cmd.SubmitterID == 0 {
		return nil, errors.NewValidationError("submitter ID is required")
	}

	var (
		tr     *tracker.Tracker
		tk     *ticket.Ticket
		ev     *ticket.Event
		mailTo []uint
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		tr, err = uc.trackerRepo.GetByIDForUpdate(txCtx, cmd.TrackerID)
		if err != nil {
			return err
		}

		actor := tracker.UserActor(cmd.SubmitterID)
		mask, err := uc.resolver.ForTracker(txCtx, tr, actor)
		if err != nil {
			return err
		}
		if !mask.Contains(tracker.AccessBrowse) {
			return errors.NewNotFoundError("tracker not found")
		}
		if !mask.Contains(tracker.AccessSubmit) {
			return errors.NewForbiddenError("submit access is required to create tickets")
		}

		scopedID := tr.AllocateScopedID()
		tk, err = ticket.NewTicket(cmd.TrackerID, scopedID, cmd.SubmitterID, cmd.Title, cmd.Description)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.ticketRepo.Save(txCtx, tk); err != nil {
			if errors.IsDuplicateError(err) {
				return errors.NewConflictError("ticket number collision, retry the submission")
			}
			return err
		}
		if err := uc.trackerRepo.Update(txCtx, tr); err != nil {
			return err
		}

		ev, err = ticket.NewCreatedEvent(tk.ID(), cmd.SubmitterID)
		if err != nil {
			return err
		}
		if err := uc.eventRepo.Append(txCtx, ev); err != nil {
			return err
		}

		sub, err := ticket.NewTicketSubscription(tk.ID(), cmd.SubmitterID)
		if err != nil {
			return err
		}
		if err := uc.subscriptionRepo.Save(txCtx, sub); err != nil {
			return err
		}

		mailTo, err = uc.fanout.Fanout(txCtx, ev, tr.ID())
		if err != nil {
			return err
		}

		ticketPayload := appwebhook.BuildTicketPayload(tr, tk, nil)
		eventPayload := appwebhook.BuildEventPayload(ev, ticketPayload, nil, "")
		scopes := []appwebhook.ScopeRef{
			{Scope: webhook.ScopeTracker, ID: tr.ID()},
			{Scope: webhook.ScopeUser, ID: cmd.SubmitterID},
		}
		if err := uc.dispatcher.Dispatch(txCtx, webhook.EventTicketCreate, scopes, ticketPayload); err != nil {
			return err
		}
		return uc.dispatcher.Dispatch(txCtx, webhook.EventEventCreate, scopes, eventPayload)
	})
	if err != nil {
		uc.logger.Errorw("failed to submit ticket", "tracker_id", cmd.TrackerID, "submitter_id", cmd.SubmitterID, "error", err)
		return nil, err
	}

	uc.notifyAsync(tr, tk, ev, nil, mailTo)

	uc.logger.Infow("ticket submitted", "ticket_id", tk.ID(), "tracker_id", tr.ID(), "scoped_id", tk.ScopedID())
	return &SubmitTicketResult{
		TicketID: tk.ID(),
		ScopedID: tk.ScopedID(),
		Ref:      ticketRef(tr, tk),
		Title:    tk.Title(),
		Status:   tk.Status().String(),
	}, nil
}

// notifyAsync runs the post-commit side effects: notification email to
// every recipient except the actor, and unread-counter invalidation. Both
// are best effort; failures are logged and never surface to the request.
func (uc *SubmitTicketUseCase) notifyAsync(tr *tracker.Tracker, tk *ticket.Ticket, ev *ticket.Event, comment *ticket.Comment, mailTo []uint) {
	notifyAsync(uc.logger, uc.userRepo, uc.mailer, uc.unreadCache, tr, tk, ev, comment, mailTo)
}

func notifyAsync(
	log logger.Interface,
	userRepo user.UserRepository,
	mailer appnotification.EventMailer,
	unreadCache appnotification.UnreadCounterCache,
	tr *tracker.Tracker,
	tk *ticket.Ticket,
	ev *ticket.Event,
	comment *ticket.Comment,
	mailTo []uint,
) {
	if len(mailTo) == 0 {
		return
	}
	goroutine.SafeGo(log, "event-notify", func() {
		ctx := context.Background()
		for _, userID := range mailTo {
			if err := unreadCache.Invalidate(ctx, userID); err != nil {
				log.Warnw("failed to invalidate unread counter", "user_id", userID, "error", err)
			}
		}
		recipients, err := userRepo.ListByIDs(ctx, mailTo)
		if err != nil {
			log.Errorw("failed to load notification recipients", "event_id", ev.ID(), "error", err)
			return
		}
		if err := mailer.SendEventNotification(ctx, recipients, tr, tk, ev, comment); err != nil {
			log.Errorw("failed to send notification email", "event_id", ev.ID(), "error", err)
		}
	})
}
