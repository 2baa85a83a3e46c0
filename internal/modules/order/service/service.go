package service

import (
	"context"
	"math"
	"net/http"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/order/dto"
	"anoa.com/freshwash/internal/modules/order/repository"
	"anoa.com/freshwash/pkg/apperror"
	"anoa.com/freshwash/pkg/dateutil"
	"github.com/google/uuid"
)

type OrderService interface {
	ListItems(ctx context.Context) ([]dto.ItemResponse, error)
	PlaceOrder(ctx context.Context, customerID uuid.UUID, req dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error)
	ListOrders(ctx context.Context, memberID uuid.UUID, isAdmin bool) ([]dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, orderID uint, req dto.UpdateStatusRequest) error
}

type orderService struct {
	repo repository.OrderRepository
	now  func() time.Time
}

func NewOrderService(repo repository.OrderRepository, now func() time.Time) OrderService {
	return &orderService{repo: repo, now: now}
}

func (s *orderService) ListItems(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, dto.ItemResponse{ItemID: item.ID, ItemType: item.ItemType, Price: item.Price})
	}
	return res, nil
}

// PlaceOrder prices the requested items from the catalog and writes the order,
// its lines and the placement record in one transaction.
func (s *orderService) PlaceOrder(ctx context.Context, customerID uuid.UUID, req dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	pickup, err := dateutil.ParseDate(req.PickupDate)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, err.Error(), apperror.ErrInvalidInput)
	}

	quantities := make(map[uint]int, len(req.Items))
	ids := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, apperror.New(http.StatusBadRequest, "quantity must be positive", apperror.ErrInvalidInput)
		}
		if _, seen := quantities[it.ItemID]; !seen {
			ids = append(ids, it.ItemID)
		}
		quantities[it.ItemID] += it.Quantity
	}

	order := &entity.Order{
		CustomerID: customerID,
		Status:     entity.OrderStatusPending,
		PickupDate: pickup,
	}

	err = s.repo.WithinTransaction(ctx, func(tx repository.OrderRepository) error {
		items, err := tx.FindItems(ctx, ids)
		if err != nil {
			return err
		}
		if len(items) != len(ids) {
			return apperror.New(http.StatusBadRequest, "invalid item(s)", apperror.ErrInvalidInput)
		}

		lines := make([]entity.OrderLine, 0, len(items))
		total := 0.0
		for _, item := range items {
			qty := quantities[item.ID]
			total += item.Price * float64(qty)
			lines = append(lines, entity.OrderLine{ItemID: item.ID, Quantity: qty})
		}
		order.TotalAmount = math.Round(total*100) / 100

		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.CreateLines(ctx, lines); err != nil {
			return err
		}
		return tx.CreatePlacement(ctx, &entity.Placement{
			CustomerID: customerID,
			OrderID:    order.ID,
			Date:       dateutil.Today(s.now()),
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.PlaceOrderResponse{
		Message:     "order placed successfully",
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
	}, nil
}

// ListOrders returns every order for admins and the caller's own orders otherwise.
func (s *orderService) ListOrders(ctx context.Context, memberID uuid.UUID, isAdmin bool) ([]dto.OrderResponse, error) {
	var filter *uuid.UUID
	if !isAdmin {
		filter = &memberID
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, ToOrderResponse(o))
	}
	return res, nil
}

// UpdateStatus moves an order to a new state. Delivery is stamped with the
// server's current date.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uint, req dto.UpdateStatusRequest) error {
	if !entity.IsValidOrderStatus(req.Status) {
		return apperror.New(http.StatusBadRequest, "invalid status", apperror.ErrInvalidInput)
	}

	var deliveredOn *time.Time
	if req.Status == entity.OrderStatusDelivered {
		today := dateutil.Today(s.now())
		deliveredOn = &today
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, req.Status, deliveredOn)
	if err != nil {
		return err
	}
	if updated == 0 {
		return apperror.New(http.StatusNotFound, "order not found", apperror.ErrNotFound)
	}
	return nil
}

func ToOrderResponse(o entity.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		line := dto.OrderLineResponse{ItemID: l.ItemID, Quantity: l.Quantity}
		if l.Item != nil {
			line.ItemType = l.Item.ItemType
			line.Price = l.Item.Price
		}
		lines = append(lines, line)
	}

	return dto.OrderResponse{
		OrderID:      o.ID,
		CustomerID:   o.CustomerID,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		PickupDate:   o.PickupDate.Format(dateutil.DateLayout),
		DeliveryDate: dateutil.FormatOptional(o.DeliveryDate),
		Items:        lines,
	}
}
