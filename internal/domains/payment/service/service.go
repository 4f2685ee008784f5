package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"lendahand/config"
	"lendahand/infras/otel"
	accountDto "lendahand/internal/domains/account/model/dto"
	accountService "lendahand/internal/domains/account/service"
	bookingModel "lendahand/internal/domains/booking/model"
	bookingDto "lendahand/internal/domains/booking/model/dto"
	bookingService "lendahand/internal/domains/booking/service"
	"lendahand/internal/domains/payment/model"
	"lendahand/internal/domains/payment/model/dto"
	"lendahand/internal/domains/pricing"
	"lendahand/internal/domains/simulator"
	"lendahand/shared"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/validator"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	// Pay charges the booking's frozen total. On any failure the booking stays unpaid.
	Pay(ctx context.Context, req dto.PayRequest) (model.Receipt, error)
	// Invoice rebuilds the invoice of a paid booking.
	Invoice(ctx context.Context, bookingID string) (model.Invoice, error)
}

type serviceImpl struct {
	bookings  bookingService.Lifecycle
	accounts  accountService.Account
	simulator simulator.Simulator
	pricing   pricing.Calculator
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	bookings bookingService.Lifecycle,
	accounts accountService.Account,
	sim simulator.Simulator,
	calc pricing.Calculator,
	cfg *config.Config,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		bookings:  bookings,
		accounts:  accounts,
		simulator: sim,
		pricing:   calc,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) Pay(ctx context.Context, req dto.PayRequest) (res model.Receipt, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	booking, err := s.payable(ctx, req)
	if err != nil {
		return res, err
	}

	total := booking.Price.Total
	scope.SetAttribute("booking_id", booking.ID)
	scope.SetAttribute("total", total)

	if req.Method == bookingModel.PaymentMethodWallet {
		balance, err := s.accounts.Balance(ctx, req.CustomerID)
		if err != nil {
			return res, err //nolint:wrapcheck
		}

		if balance < total {
			return res, failure.InsufficientBalance(balance, total) // nolint:wrapcheck
		}
	}

	opts := simulator.FromConfig(s.cfg.Simulator.Payment, failure.PaymentDeclined)
	if err = s.simulator.Simulate(ctx, "payment.charge", opts); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Str("method", req.Method).Msg("payment failed")

		return res, err //nolint:wrapcheck
	}

	if req.Method == bookingModel.PaymentMethodWallet {
		if _, err = s.accounts.Deduct(ctx, accountDto.WalletRequest{UserID: req.CustomerID, Amount: total}); err != nil {
			return res, err //nolint:wrapcheck
		}
	}

	txn := shared.NewReference(model.TransactionPrefix, model.TransactionDigits)

	paid, err := s.bookings.RecordPayment(ctx, bookingDto.PaymentRecord{
		BookingID:     booking.ID,
		Method:        req.Method,
		TransactionID: txn,
	})
	if err != nil {
		s.refund(ctx, req, total)

		return res, err //nolint:wrapcheck
	}

	log.Info().
		Str("booking_id", booking.ID).
		Str("transaction_id", txn).
		Str("method", req.Method).
		Float64("total", total).
		Msg("payment captured")

	res.Booking = paid
	res.Invoice = s.build(paid, s.billedTo(ctx, paid.CustomerID))

	return res, nil
}

// payable loads the booking and checks that req's customer may pay for it now.
func (s *serviceImpl) payable(ctx context.Context, req dto.PayRequest) (bookingModel.Booking, error) {
	booking, err := s.bookings.Get(ctx, req.BookingID)
	if err != nil {
		return booking, err //nolint:wrapcheck
	}

	switch {
	case booking.CustomerID != req.CustomerID:
		return booking, failure.NotFound(bookingModel.EntityName + " not found") // nolint:wrapcheck
	case booking.IsPaid():
		return booking, failure.Conflict("booking is already paid") // nolint:wrapcheck
	case booking.Status == bookingModel.StatusCancelled:
		return booking, failure.Conflict("cannot pay for a cancelled booking") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) refund(ctx context.Context, req dto.PayRequest, amount float64) {
	if req.Method != bookingModel.PaymentMethodWallet {
		return
	}

	if _, err := s.accounts.TopUp(ctx, accountDto.WalletRequest{UserID: req.CustomerID, Amount: amount}); err != nil {
		log.Error().Err(err).Str("user_id", req.CustomerID).Float64("amount", amount).Msg("failed to refund wallet")
	}
}

func (s *serviceImpl) Invoice(ctx context.Context, bookingID string) (res model.Invoice, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !booking.IsPaid() {
		return res, failure.Validation("booking has not been paid") // nolint:wrapcheck
	}

	return s.build(booking, s.billedTo(ctx, booking.CustomerID)), nil
}

func (s *serviceImpl) billedTo(ctx context.Context, customerID string) string {
	user, err := s.accounts.Get(ctx, customerID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", customerID).Msg("invoice customer not found")

		return "Customer"
	}

	return user.Name
}

func (s *serviceImpl) build(booking bookingModel.Booking, billedTo string) model.Invoice {
	invoice := model.Invoice{
		BookingID:    booking.ID,
		BilledTo:     billedTo,
		ServiceTitle: booking.Service.Title,
		ProviderName: booking.ProviderName,
		Date:         booking.Date,
		Time:         booking.Time,
		Method:       booking.PaymentMethod,
		Price:        booking.Price,
		Consistent:   s.pricing.Matches(booking.Price),
	}

	if booking.TransactionID != nil {
		invoice.TransactionID = *booking.TransactionID
		invoice.Number = model.InvoiceNumber(invoice.TransactionID)
	}

	if booking.PaidAt != nil {
		invoice.IssuedAt = *booking.PaidAt
	}

	if booking.Coupon != nil {
		coupon := *booking.Coupon
		invoice.Coupon = &coupon
	}

	return invoice
}
