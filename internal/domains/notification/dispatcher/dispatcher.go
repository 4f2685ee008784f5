// Package dispatcher turns committed booking events into notifications, job
// inbox updates and system chat messages. A failed side effect is logged and
// never undoes the booking change that caused it.
package dispatcher

import (
	"context"
	"fmt"
	"lendahand/infras/otel"
	bookingModel "lendahand/internal/domains/booking/model"
	bookingService "lendahand/internal/domains/booking/service"
	chatService "lendahand/internal/domains/chat/service"
	jobService "lendahand/internal/domains/job/service"
	"lendahand/internal/domains/notification/model"
	"lendahand/internal/domains/notification/model/dto"
	notificationService "lendahand/internal/domains/notification/service"
	"lendahand/shared"
	"lendahand/shared/constant"
	"lendahand/shared/timezone"

	"github.com/rs/zerolog/log"
)

const displayDateFormat = "Monday, 2 January"

type dispatcherImpl struct {
	notifier notificationService.Notifier
	jobs     jobService.Queue
	chats    chatService.Messenger
	otel     otel.Otel
}

func New(
	notifier notificationService.Notifier,
	jobs jobService.Queue,
	chats chatService.Messenger,
	otel otel.Otel,
) bookingService.EventSink {
	return &dispatcherImpl{
		notifier: notifier,
		jobs:     jobs,
		chats:    chats,
		otel:     otel,
	}
}

// message is what one party is told about an event.
type message struct {
	title string
	body  string
}

// outcome lists the side effects of one event. Nil messages and an empty chat
// line are skipped.
type outcome struct {
	customer *message
	provider *message
	chat     string
}

func (d *dispatcherImpl) Publish(ctx context.Context, event bookingModel.Event) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+string(event.Type))
	defer scope.End()

	booking := event.Booking
	scope.SetAttribute("booking_id", booking.ID)

	out := describe(event)

	if out.customer != nil {
		d.notify(ctx, booking, booking.CustomerID, *out.customer)
	}

	if out.provider != nil {
		d.notify(ctx, booking, booking.ProviderID, *out.provider)
	}

	d.updateInbox(ctx, event)

	if out.chat != "" {
		d.postToChat(ctx, booking, out.chat)
	}
}

func describe(event bookingModel.Event) outcome {
	booking := event.Booking
	title := booking.Service.Title
	when := displayDate(booking.Date) + " at " + booking.Time

	switch event.Type {
	case bookingModel.EventCreated:
		return outcome{
			customer: &message{
				title: "Booking Requested!",
				body:  fmt.Sprintf("Your booking for %q on %s has been sent to the provider.", title, displayDate(booking.Date)),
			},
			provider: &message{
				title: "New job request",
				body:  fmt.Sprintf("New request for %q on %s.", title, when),
			},
		}
	case bookingModel.EventRescheduled:
		return outcome{
			customer: &message{
				title: "Booking Rescheduled",
				body:  fmt.Sprintf("Your booking for %q moved to %s and is awaiting provider approval.", title, when),
			},
			provider: &message{
				title: "Booking rescheduled",
				body:  fmt.Sprintf("%q was moved to %s. Please accept or reject it.", title, when),
			},
			chat: fmt.Sprintf("Booking rescheduled to %s.", when),
		}
	case bookingModel.EventPaid:
		txn := ""
		if booking.TransactionID != nil {
			txn = *booking.TransactionID
		}

		return outcome{
			customer: &message{
				title: "Payment Successful",
				body:  fmt.Sprintf("%s paid for %q. Transaction ID: %s", shared.FormatMoney(booking.Price.Total), title, txn),
			},
		}
	case bookingModel.EventReviewed:
		return outcome{
			customer: &message{
				title: "Review Submitted",
				body:  fmt.Sprintf("Your review for %q was submitted. Thank you!", title),
			},
		}
	case bookingModel.EventStatusChanged:
		return describeStatus(event, title, when)
	}

	return outcome{}
}

func describeStatus(event bookingModel.Event, title, when string) outcome {
	switch event.To {
	case bookingModel.StatusConfirmed:
		return outcome{
			customer: &message{
				title: "Booking Confirmed",
				body:  fmt.Sprintf("%s accepted your booking for %q on %s.", event.Booking.ProviderName, title, when),
			},
			provider: &message{
				title: "Job accepted",
				body:  fmt.Sprintf("You accepted %q on %s.", title, when),
			},
			chat: fmt.Sprintf("Booking confirmed for %s.", when),
		}
	case bookingModel.StatusInProgress:
		return outcome{
			customer: &message{
				title: "Service Started",
				body:  fmt.Sprintf("%s has started working on %q.", event.Booking.ProviderName, title),
			},
			chat: "Service is now in progress.",
		}
	case bookingModel.StatusCompleted:
		return outcome{
			customer: &message{
				title: "Service Completed",
				body:  fmt.Sprintf("%q is complete. Leave a review to help others.", title),
			},
			provider: &message{
				title: "Job completed",
				body:  fmt.Sprintf("%q on %s was marked completed.", title, when),
			},
			chat: "Service completed. Thank you!",
		}
	case bookingModel.StatusCancelled:
		reason := ""
		if event.Reason != "" {
			reason = " Reason: " + event.Reason
		}

		return outcome{
			customer: &message{
				title: "Booking Cancelled",
				body:  fmt.Sprintf("Your booking for %q on %s was cancelled.%s", title, when, reason),
			},
			provider: &message{
				title: "Booking cancelled",
				body:  fmt.Sprintf("%q on %s was cancelled.%s", title, when, reason),
			},
			chat: "Booking cancelled." + reason,
		}
	}

	return outcome{}
}

func (d *dispatcherImpl) notify(ctx context.Context, booking bookingModel.Booking, userID string, m message) {
	_, err := d.notifier.Add(ctx, dto.AddRequest{
		UserID:    userID,
		Type:      model.TypeBookingUpdate,
		Title:     m.title,
		Body:      m.body,
		BookingID: booking.ID,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("user_id", userID).Msg("failed to dispatch notification")
	}
}

// updateInbox keeps the provider's inbox equal to their Requested bookings.
func (d *dispatcherImpl) updateInbox(ctx context.Context, event bookingModel.Event) {
	booking := event.Booking

	var err error

	switch {
	case event.Type == bookingModel.EventPaid || event.Type == bookingModel.EventReviewed:
		return
	case booking.Status == bookingModel.StatusRequested:
		err = d.jobs.Enqueue(ctx, booking.ProviderID, booking.ID)
	default:
		err = d.jobs.Dequeue(ctx, booking.ProviderID, booking.ID)
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("provider_id", booking.ProviderID).Msg("failed to update job inbox")
	}
}

// postToChat writes to the customer/provider chat only when one already exists.
func (d *dispatcherImpl) postToChat(ctx context.Context, booking bookingModel.Booking, text string) {
	chat, found, err := d.chats.Find(ctx, booking.CustomerID, booking.ProviderID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to look up booking chat")

		return
	}

	if !found {
		return
	}

	if _, err = d.chats.SendSystemMessage(ctx, chat.ID, text); err != nil {
		log.Error().Err(err).Str("chat_id", chat.ID).Msg("failed to post booking update to chat")
	}
}

func displayDate(date string) string {
	day, err := timezone.ParseDate(date)
	if err != nil {
		return date
	}

	return day.Format(displayDateFormat)
}
