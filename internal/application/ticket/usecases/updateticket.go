package usecases

import (
	"context"
	"strings"

	appnotification "trackd/internal/application/notification"
	appwebhook "trackd/internal/application/webhook"
	"trackd/internal/domain/ticket"
	vo "trackd/internal/domain/ticket/valueobjects"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/user"
	"trackd/internal/domain/webhook"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

// UpdateTicketCommand is the unified mutation: a single request may carry a
// comment, a status transition, and label changes in any combination. Nil
// fields are left untouched.
type UpdateTicketCommand struct {
	TrackerID uint
	ScopedID  uint
	ActorID   uint

	Comment        *string
	Status         *string
	Resolution     *string
	AddLabelIDs    []uint
	RemoveLabelIDs []uint
}

type UpdateTicketResult struct {
	TicketID   uint
	Ref        string
	Status     string
	Resolution string
	CommentID  *uint
	EventIDs   []uint
}

// UpdateTicketUseCase applies the unified mutation atomically. The required
// capability bits for everything the request touches are unioned and checked
// once: a request the actor cannot fully perform is rejected outright, no
// partial application. Validation is likewise batched so the caller sees
// every problem in one response. A comment submitted together with a status
// change yields a single event carrying both.
type UpdateTicketUseCase struct {
	trackerRepo      tracker.TrackerRepository
	ticketRepo       ticket.TicketRepository
	commentRepo      ticket.CommentRepository
	eventRepo        ticket.EventRepository
	subscriptionRepo ticket.SubscriptionRepository
	labelRepo        tracker.LabelRepository
	userRepo         user.UserRepository
	resolver         AccessResolver
	fanout           Fanout
	dispatcher       Dispatcher
	mailer           appnotification.EventMailer
	unreadCache      appnotification.UnreadCounterCache
	txManager        db.TxManager
	logger           logger.Interface
}

func NewUpdateTicketUseCase(
	trackerRepo tracker.TrackerRepository,
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	eventRepo ticket.EventRepository,
	subscriptionRepo ticket.SubscriptionRepository,
	labelRepo tracker.LabelRepository,
	userRepo user.UserRepository,
	resolver AccessResolver,
	fanout Fanout,
	dispatcher Dispatcher,
	mailer appnotification.EventMailer,
	unreadCache appnotification.UnreadCounterCache,
	txManager db.TxManager,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		trackerRepo:      trackerRepo,
		ticketRepo:       ticketRepo,
		commentRepo:      commentRepo,
		eventRepo:        eventRepo,
		subscriptionRepo: subscriptionRepo,
		labelRepo:        labelRepo,
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

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	if cmd.TrackerID == 0 || cmd.ScopedID == 0 {
		return nil, errors.NewValidationError("tracker ID and ticket number are required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	if err := uc.validate(cmd); err != nil {
		return nil, err
	}
	if cmd.Comment == nil && cmd.Status == nil && len(cmd.AddLabelIDs) == 0 && len(cmd.RemoveLabelIDs) == 0 {
		return nil, errors.NewValidationError("the update carries no changes")
	}

	var (
		tr        *tracker.Tracker
		tk        *ticket.Ticket
		comment   *ticket.Comment
		events    []*ticket.Event
		primary   *ticket.Event
		mailTo    []uint
		commentID *uint
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		tr, err = uc.trackerRepo.GetByID(txCtx, cmd.TrackerID)
		if err != nil {
			return err
		}
		tk, err = uc.ticketRepo.GetByScopedID(txCtx, cmd.TrackerID, cmd.ScopedID)
		if err != nil {
			return err
		}

		actor := tracker.UserActor(cmd.ActorID)
		mask, err := uc.resolver.ForTicket(txCtx, tr, tk, actor)
		if err != nil {
			return err
		}
		if !mask.Contains(tracker.AccessBrowse) {
			return errors.NewNotFoundError("ticket not found")
		}
		if required := requiredBits(cmd); !mask.Contains(required) {
			missing := required &^ mask
			return errors.NewForbiddenError("missing access: " + strings.Join(missing.Names(), ", "))
		}

		labels, err := uc.resolveLabels(txCtx, cmd)
		if err != nil {
			return err
		}

		if cmd.Comment != nil {
			comment, err = ticket.NewComment(tk.ID(), cmd.ActorID, *cmd.Comment)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.commentRepo.Save(txCtx, comment); err != nil {
				return err
			}
			id := comment.ID()
			commentID = &id

			// Commenting implicitly subscribes the commenter to the ticket,
			// unless they already hold a ticket-level subscription.
			if err := uc.subscribeCommenter(txCtx, tk.ID(), cmd.ActorID); err != nil {
				return err
			}
		}

		primary, err = uc.applyPrimary(tk, cmd, commentID)
		if err != nil {
			return err
		}
		if primary != nil {
			events = append(events, primary)
		}

		for _, labelID := range cmd.AddLabelIDs {
			ev, err := tk.AddLabel(labelID, cmd.ActorID)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if ev == nil {
				continue
			}
			if err := uc.ticketRepo.AddLabel(txCtx, tk.ID(), labelID, cmd.ActorID); err != nil {
				return err
			}
			events = append(events, ev)
		}
		for _, labelID := range cmd.RemoveLabelIDs {
			ev, err := tk.RemoveLabel(labelID, cmd.ActorID)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if ev == nil {
				continue
			}
			if err := uc.ticketRepo.RemoveLabel(txCtx, tk.ID(), labelID); err != nil {
				return err
			}
			events = append(events, ev)
		}

		if err := uc.ticketRepo.Update(txCtx, tk); err != nil {
			return err
		}

		labelNames := uc.labelNames(txCtx, tk)
		ticketPayload := appwebhook.BuildTicketPayload(tr, tk, labelNames)
		scopes := []appwebhook.ScopeRef{
			{Scope: webhook.ScopeTracker, ID: tr.ID()},
			{Scope: webhook.ScopeTicket, ID: tk.ID()},
			{Scope: webhook.ScopeUser, ID: cmd.ActorID},
		}

		for _, ev := range events {
			if err := uc.eventRepo.Append(txCtx, ev); err != nil {
				return err
			}
			recipients, err := uc.fanout.Fanout(txCtx, ev, tr.ID())
			if err != nil {
				return err
			}
			// Email only the primary event; label shuffles stay feed-only.
			if ev == primary {
				mailTo = recipients
			}

			var evComment *ticket.Comment
			if ev.CommentID() != nil {
				evComment = comment
			}
			payload := appwebhook.BuildEventPayload(ev, ticketPayload, evComment, labels[labelIDOf(ev)])
			if err := uc.dispatcher.Dispatch(txCtx, webhook.EventEventCreate, scopes, payload); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket",
			"tracker_id", cmd.TrackerID,
			"scoped_id", cmd.ScopedID,
			"actor_id", cmd.ActorID,
			"error", err,
		)
		return nil, err
	}

	if primary != nil {
		notifyAsync(uc.logger, uc.userRepo, uc.mailer, uc.unreadCache, tr, tk, primary, comment, mailTo)
	}

	eventIDs := make([]uint, 0, len(events))
	for _, ev := range events {
		eventIDs = append(eventIDs, ev.ID())
	}
	uc.logger.Infow("ticket updated", "ticket_id", tk.ID(), "events", len(events))

	resolution := ""
	if tk.Status().IsResolved() {
		resolution = tk.Resolution().String()
	}
	return &UpdateTicketResult{
		TicketID:   tk.ID(),
		Ref:        ticketRef(tr, tk),
		Status:     tk.Status().String(),
		Resolution: resolution,
		CommentID:  commentID,
		EventIDs:   eventIDs,
	}, nil
}

// validate batches every field-level problem into one response.
func (uc *UpdateTicketUseCase) validate(cmd UpdateTicketCommand) error {
	v := errors.NewValidation()
	if cmd.Comment != nil {
		v.Expect(len(*cmd.Comment) >= 3 && len(*cmd.Comment) <= 16384,
			"comment", "must be between 3 and 16384 characters")
	}
	if cmd.Status != nil {
		status, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			v.Errorf("status", "must be one of: open, resolved")
		} else if status.IsResolved() {
			if cmd.Resolution == nil {
				v.Errorf("resolution", "a resolution reason is required to resolve a ticket")
			}
		} else if cmd.Resolution != nil && *cmd.Resolution != vo.ResolutionUnresolved.String() {
			v.Errorf("resolution", "cannot set a resolution on an open ticket")
		}
	} else if cmd.Resolution != nil {
		v.Errorf("status", "resolution changes require a status")
	}
	if cmd.Resolution != nil {
		if res, err := vo.NewTicketResolution(*cmd.Resolution); err != nil {
			v.Errorf("resolution", "unknown resolution: %s", *cmd.Resolution)
		} else if cmd.Status != nil && *cmd.Status == vo.StatusResolved.String() && !res.IsReason() {
			v.Errorf("resolution", "a resolution reason is required to resolve a ticket")
		}
	}
	return v.Result()
}

func (uc *UpdateTicketUseCase) applyPrimary(tk *ticket.Ticket, cmd UpdateTicketCommand, commentID *uint) (*ticket.Event, error) {
	// An absent status, or one matching the current open state, is not a
	// transition; the comment (if any) still lands on its own.
	noTransition := cmd.Status == nil ||
		(!vo.TicketStatus(*cmd.Status).IsResolved() && !tk.Status().IsResolved())
	if noTransition {
		if commentID == nil {
			return nil, nil
		}
		return tk.RecordComment(cmd.ActorID, *commentID)
	}

	status := vo.TicketStatus(*cmd.Status)
	if status.IsResolved() {
		ev, err := tk.Resolve(cmd.ActorID, vo.TicketResolution(*cmd.Resolution), commentID)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		return ev, nil
	}
	ev, err := tk.Reopen(cmd.ActorID, commentID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return ev, nil
}

// subscribeCommenter is idempotent: an existing ticket-level subscription is
// left untouched.
func (uc *UpdateTicketUseCase) subscribeCommenter(ctx context.Context, ticketID, userID uint) error {
	existing, err := uc.subscriptionRepo.GetTicketSubscription(ctx, ticketID, userID)
	if err != nil && !errors.IsNotFoundError(err) {
		return err
	}
	if existing != nil {
		return nil
	}
	sub, err := ticket.NewTicketSubscription(ticketID, userID)
	if err != nil {
		return err
	}
	return uc.subscriptionRepo.Save(ctx, sub)
}

// resolveLabels loads every referenced label, confirming each belongs to the
// tracker, and returns an id-to-name map for webhook payloads.
func (uc *UpdateTicketUseCase) resolveLabels(ctx context.Context, cmd UpdateTicketCommand) (map[uint]string, error) {
	names := make(map[uint]string)
	for _, labelID := range append(append([]uint{}, cmd.AddLabelIDs...), cmd.RemoveLabelIDs...) {
		if _, ok := names[labelID]; ok {
			continue
		}
		label, err := uc.labelRepo.GetByID(ctx, labelID)
		if err != nil {
			return nil, err
		}
		if label.TrackerID() != cmd.TrackerID {
			return nil, errors.NewNotFoundError("label not found on this tracker")
		}
		names[labelID] = label.Name()
	}
	return names, nil
}

func (uc *UpdateTicketUseCase) labelNames(ctx context.Context, tk *ticket.Ticket) []string {
	labels, err := uc.labelRepo.ListByTracker(ctx, tk.TrackerID())
	if err != nil {
		uc.logger.Warnw("failed to resolve label names for payload", "ticket_id", tk.ID(), "error", err)
		return nil
	}
	byID := make(map[uint]string, len(labels))
	for _, l := range labels {
		byID[l.ID()] = l.Name()
	}
	names := make([]string, 0, len(tk.LabelIDs()))
	for _, id := range tk.LabelIDs() {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

func requiredBits(cmd UpdateTicketCommand) tracker.AccessMask {
	required := tracker.AccessBrowse
	if cmd.Comment != nil {
		required = required.Union(tracker.AccessComment)
	}
	if cmd.Status != nil || cmd.Resolution != nil {
		required = required.Union(tracker.AccessTriage)
	}
	if len(cmd.AddLabelIDs) > 0 || len(cmd.RemoveLabelIDs) > 0 {
		required = required.Union(tracker.AccessTriage)
	}
	return required
}

func labelIDOf(ev *ticket.Event) uint {
	if ev.LabelID() != nil {
		return *ev.LabelID()
	}
	return 0
}
