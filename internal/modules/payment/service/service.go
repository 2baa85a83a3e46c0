package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/payment/dto"
	"anoa.com/freshwash/internal/modules/payment/repository"
	"anoa.com/freshwash/pkg/apperror"
	"anoa.com/freshwash/pkg/dateutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService interface {
	MakePayment(ctx context.Context, customerID uuid.UUID, req dto.MakePaymentRequest) (*dto.MakePaymentResponse, error)
	ListPayments(ctx context.Context, memberID uuid.UUID, isAdmin bool) ([]dto.PaymentResponse, error)
}

type paymentService struct {
	repo         repository.PaymentRepository
	businessName string
	now          func() time.Time
}

func NewPaymentService(repo repository.PaymentRepository, businessName string, now func() time.Time) PaymentService {
	return &paymentService{
		repo:         repo,
		businessName: businessName,
		now:          now,
	}
}

// MakePayment settles an order in full. An order can be paid once; the
// unique order_id on payment_applications rejects a second attempt.
func (s *paymentService) MakePayment(ctx context.Context, customerID uuid.UUID, req dto.MakePaymentRequest) (*dto.MakePaymentResponse, error) {
	paidOn := dateutil.Today(s.now())
	if req.Date != "" {
		d, err := dateutil.ParseDate(req.Date)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, err.Error(), apperror.ErrInvalidInput)
		}
		paidOn = d
	}

	var res *dto.MakePaymentResponse
	err := s.repo.WithinTransaction(ctx, func(tx repository.PaymentRepository) error {
		order, err := tx.FindOwnedOrder(ctx, req.OrderID, customerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "order not found", apperror.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if order.TotalAmount < entity.MinimumPaymentAmount {
			return apperror.New(http.StatusBadRequest, "order total is below the minimum payment amount of 50.00", apperror.ErrInvalidInput)
		}

		sender, err := tx.CustomerName(ctx, customerID)
		if err != nil {
			return err
		}
		if sender == "" {
			sender = customerID.String()
		}

		payment := &entity.Payment{
			TransactionID: uuid.NewString(),
			Sender:        sender,
			Receiver:      s.businessName,
			Date:          paidOn,
		}
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}

		err = tx.CreateApplication(ctx, &entity.PaymentApplication{
			CustomerID:    customerID,
			TransactionID: payment.TransactionID,
			Mode:          req.PaymentMode,
			Amount:        order.TotalAmount,
			OrderID:       order.ID,
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.New(http.StatusConflict, "order has already been paid", apperror.ErrConflict)
		}
		if err != nil {
			return err
		}

		res = &dto.MakePaymentResponse{
			Message:       "payment successful",
			TransactionID: payment.TransactionID,
			OrderID:       order.ID,
			Amount:        order.TotalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *paymentService) ListPayments(ctx context.Context, memberID uuid.UUID, isAdmin bool) ([]dto.PaymentResponse, error) {
	var filter *uuid.UUID
	if !isAdmin {
		filter = &memberID
	}

	applications, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]dto.PaymentResponse, 0, len(applications))
	for _, a := range applications {
		res = append(res, ToPaymentResponse(a))
	}
	return res, nil
}

func ToPaymentResponse(a entity.PaymentApplication) dto.PaymentResponse {
	res := dto.PaymentResponse{
		TransactionID: a.TransactionID,
		OrderID:       a.OrderID,
		CustomerID:    a.CustomerID,
		PaymentMode:   a.Mode,
		Amount:        a.Amount,
	}
	if a.Payment != nil {
		res.Sender = a.Payment.Sender
		res.Receiver = a.Payment.Receiver
		res.PaymentDate = dateutil.FormatOptional(&a.Payment.Date)
	}
	return res
}
