package app

import (
	"context"
	"fmt"
	accountDto "lendahand/internal/domains/account/model/dto"
	bookingModel "lendahand/internal/domains/booking/model"
	bookingDto "lendahand/internal/domains/booking/model/dto"
	catalogDto "lendahand/internal/domains/catalog/model/dto"
	chatDto "lendahand/internal/domains/chat/model/dto"
	paymentModel "lendahand/internal/domains/payment/model"
	paymentDto "lendahand/internal/domains/payment/model/dto"
	reviewModel "lendahand/internal/domains/review/model"
	reviewDto "lendahand/internal/domains/review/model/dto"
	"lendahand/shared/constant"
	"lendahand/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	demoPassword       = "password"
	demoCoupon         = "FIRST10"
	demoAddress        = "12 MG Road, Bengaluru 560001"
	demoLeadDays       = 2
	maxPaymentAttempts = 3
)

// DemoResult is what one scripted session leaves behind.
type DemoResult struct {
	Booking       bookingModel.Booking
	Invoice       paymentModel.Invoice
	Review        reviewModel.Review
	ChatID        string
	UnreadNotices int
}

// RunDemo plays a customer session from login to review, with the provider
// accepting and completing the job in between.
func (a *App) RunDemo(ctx context.Context) (res DemoResult, err error) {
	customer, err := a.login(ctx)
	if err != nil {
		return res, err
	}

	customerCtx := context.WithValue(ctx, constant.ContextKeyUserID, customer.ID)

	booking, err := a.book(customerCtx, customer)
	if err != nil {
		return res, err
	}

	receipt, err := a.pay(customerCtx, booking)
	if err != nil {
		return res, err
	}

	res.Invoice = receipt.Invoice

	chat, err := a.Chats.GetOrCreate(customerCtx, chatDto.OpenRequest{
		CustomerID:   customer.ID,
		ProviderID:   booking.ProviderID,
		ProviderName: booking.ProviderName,
	})
	if err != nil {
		return res, fmt.Errorf("failed to open chat: %w", err)
	}

	res.ChatID = chat.ID

	if _, err = a.Chats.SendMessage(customerCtx, chatDto.SendRequest{
		ChatID: chat.ID,
		Text:   "Hi! Please bring eco-friendly supplies if possible.",
	}); err != nil {
		return res, fmt.Errorf("failed to send message: %w", err)
	}

	if err = a.work(ctx, booking); err != nil {
		return res, err
	}

	res.Review, err = a.Reviews.Submit(customerCtx, reviewDto.ReviewRequest{
		BookingID:  booking.ID,
		CustomerID: customer.ID,
		Rating:     5,
		Categories: map[string]int{"quality": 5, "punctuality": 5},
		Comment:    "Spotless work and right on time.",
	})
	if err != nil {
		return res, fmt.Errorf("failed to submit review: %w", err)
	}

	if res.Booking, err = a.Bookings.Get(customerCtx, booking.ID); err != nil {
		return res, fmt.Errorf("failed to reload booking: %w", err)
	}

	if res.UnreadNotices, err = a.Notifications.UnreadCount(customerCtx, customer.ID); err != nil {
		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	log.Info().
		Str("booking_id", res.Booking.ID).
		Str("status", string(res.Booking.Status)).
		Str("invoice", res.Invoice.Number).
		Int("unread_notifications", res.UnreadNotices).
		Msg("demo session finished")

	return res, nil
}

func (a *App) login(ctx context.Context) (accountDto.UserResponse, error) {
	customer, err := a.Accounts.Get(ctx, a.Config.App.DemoCustomerID)
	if err != nil {
		return customer, fmt.Errorf("failed to find demo customer: %w", err)
	}

	customer, err = a.Accounts.Login(ctx, accountDto.LoginRequest{
		Email:    customer.Email,
		Password: demoPassword,
		Role:     constant.RoleCustomer,
	})
	if err != nil {
		return customer, fmt.Errorf("failed to log in: %w", err)
	}

	log.Info().Str("user_id", customer.ID).Msg("demo customer logged in")

	return customer, nil
}

// book walks the wizard through every step for the first catalog service and its
// own provider.
func (a *App) book(ctx context.Context, customer accountDto.UserResponse) (bookingModel.Booking, error) {
	services, err := a.Catalog.ListServices(ctx, catalogDto.ServiceFilter{})
	if err != nil {
		return bookingModel.Booking{}, fmt.Errorf("failed to browse services: %w", err)
	}

	if len(services) == 0 {
		return bookingModel.Booking{}, failure.NotFound("no services to book") //nolint:wrapcheck
	}

	svc := services[0]

	provider, err := a.Catalog.GetProvider(ctx, svc.ProviderID)
	if err != nil {
		return bookingModel.Booking{}, fmt.Errorf("failed to find provider: %w", err)
	}

	slots := svc.OpenSlots()
	if len(slots) == 0 {
		return bookingModel.Booking{}, failure.Validation("service has no open slots") //nolint:wrapcheck
	}

	address := demoAddress
	if len(customer.SavedAddresses) > 0 {
		address = customer.SavedAddresses[0].Address
	}

	a.Wizard.Start(svc)

	steps := []bookingModel.StepData{
		{},
		{Provider: &provider},
		{Date: a.clock().AddDate(0, 0, demoLeadDays).Format(constant.DateFormat), Time: slots[0]},
		{Address: address, Recurrence: bookingModel.RecurrenceNone},
		{PaymentMethod: bookingModel.PaymentMethodCard},
	}

	for _, step := range steps {
		if !a.Wizard.Advance(step) {
			return bookingModel.Booking{}, a.Wizard.CanAdvance() //nolint:wrapcheck
		}
	}

	if coupon, err := a.Wizard.ApplyCoupon(ctx, demoCoupon); err != nil {
		log.Warn().Err(err).Str("code", demoCoupon).Msg("coupon rejected")
	} else {
		log.Info().Str("code", coupon.Code).Msg("coupon applied")
	}

	if quote, ok := a.Wizard.Quote(); ok {
		log.Info().Str("service", svc.Title).Float64("total", quote.Total).Msg("booking quoted")
	}

	booking, err := a.Wizard.Submit(ctx, customer.ID)
	if err != nil {
		return booking, fmt.Errorf("failed to submit booking: %w", err)
	}

	return booking, nil
}

// pay retries declined payments a few times, like a customer pressing "Pay" again.
func (a *App) pay(ctx context.Context, booking bookingModel.Booking) (res paymentModel.Receipt, err error) {
	for attempt := 1; attempt <= maxPaymentAttempts; attempt++ {
		res, err = a.Payments.Pay(ctx, paymentDto.PayRequest{
			BookingID:  booking.ID,
			CustomerID: booking.CustomerID,
			Method:     booking.PaymentMethod,
		})
		if err == nil || !failure.Retryable(err) {
			break
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("payment declined, retrying")
	}

	if err != nil {
		return res, fmt.Errorf("failed to pay booking: %w", err)
	}

	return res, nil
}

// work plays the provider side: pick the job from the inbox, do it, finish it.
func (a *App) work(ctx context.Context, booking bookingModel.Booking) error {
	providerCtx := context.WithValue(ctx, constant.ContextKeyUserID, booking.ProviderID)

	jobs, err := a.Jobs.Inbox(providerCtx, booking.ProviderID)
	if err != nil {
		return fmt.Errorf("failed to read job inbox: %w", err)
	}

	if !containsBooking(jobs, booking.ID) {
		return failure.NotFound("job request not found in provider inbox") //nolint:wrapcheck
	}

	steps := []func(context.Context, string) (bookingModel.Booking, error){
		a.Bookings.Accept,
		a.Bookings.MarkInProgress,
		a.Bookings.MarkCompleted,
	}

	for _, step := range steps {
		if _, err = step(providerCtx, booking.ID); err != nil {
			return fmt.Errorf("failed to advance job: %w", err)
		}
	}

	upcoming, err := a.Bookings.ListForProvider(providerCtx, booking.ProviderID, bookingDto.ListFilter{Tab: bookingDto.TabUpcoming})
	if err != nil {
		return fmt.Errorf("failed to list provider bookings: %w", err)
	}

	log.Info().Str("provider_id", booking.ProviderID).Int("upcoming", len(upcoming)).Msg("provider finished job")

	return nil
}

func containsBooking(bookings []bookingModel.Booking, id string) bool {
	for _, b := range bookings {
		if b.ID == id {
			return true
		}
	}

	return false
}
