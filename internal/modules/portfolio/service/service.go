package service

import (
	"context"
	"errors"
	"math"

	"anoa.com/freshwash/internal/entity"
	complaintDto "anoa.com/freshwash/internal/modules/complaint/dto"
	complaint "anoa.com/freshwash/internal/modules/complaint/service"
	order "anoa.com/freshwash/internal/modules/order/service"
	payment "anoa.com/freshwash/internal/modules/payment/service"
	"anoa.com/freshwash/internal/modules/portfolio/dto"
	"anoa.com/freshwash/internal/modules/portfolio/repository"
	profileRepo "anoa.com/freshwash/internal/modules/profile/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PortfolioService interface {
	GetOwn(ctx context.Context, customerID uuid.UUID) (*dto.PortfolioResponse, error)
	GetAll(ctx context.Context) ([]dto.PortfolioResponse, error)
}

type portfolioService struct {
	repo     repository.PortfolioRepository
	profiles profileRepo.ProfileRepository
}

func NewPortfolioService(repo repository.PortfolioRepository, profiles profileRepo.ProfileRepository) PortfolioService {
	return &portfolioService{
		repo:     repo,
		profiles: profiles,
	}
}

func (s *portfolioService) GetOwn(ctx context.Context, customerID uuid.UUID) (*dto.PortfolioResponse, error) {
	orders, err := s.repo.ListOrders(ctx, &customerID)
	if err != nil {
		return nil, err
	}

	res := buildPortfolio(customerID, orders)
	customer, err := s.profiles.FindCustomer(ctx, customerID)
	switch {
	case err == nil:
		res.CustomerName = customer.Name
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return &res, nil
}

// GetAll returns one portfolio per customer profile, followed by any
// orders whose customer has no profile row.
func (s *portfolioService) GetAll(ctx context.Context) ([]dto.PortfolioResponse, error) {
	orders, err := s.repo.ListOrders(ctx, nil)
	if err != nil {
		return nil, err
	}
	customers, err := s.profiles.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[uuid.UUID][]entity.Order)
	var orphans []uuid.UUID
	for _, o := range orders {
		if _, seen := byCustomer[o.CustomerID]; !seen {
			orphans = append(orphans, o.CustomerID)
		}
		byCustomer[o.CustomerID] = append(byCustomer[o.CustomerID], o)
	}

	res := make([]dto.PortfolioResponse, 0, len(customers)+len(orphans))
	known := make(map[uuid.UUID]bool, len(customers))
	for _, c := range customers {
		known[c.ID] = true
		p := buildPortfolio(c.ID, byCustomer[c.ID])
		p.CustomerName = c.Name
		res = append(res, p)
	}
	for _, id := range orphans {
		if !known[id] {
			res = append(res, buildPortfolio(id, byCustomer[id]))
		}
	}
	return res, nil
}

func buildPortfolio(customerID uuid.UUID, orders []entity.Order) dto.PortfolioResponse {
	res := dto.PortfolioResponse{
		CustomerID: customerID,
		Orders:     make([]dto.PortfolioOrder, 0, len(orders)),
	}

	for _, o := range orders {
		entry := dto.PortfolioOrder{
			OrderResponse: order.ToOrderResponse(o),
			Complaints:    make([]complaintDto.ComplaintResponse, 0, len(o.Complaints)),
		}
		if o.Payment != nil {
			p := payment.ToPaymentResponse(*o.Payment)
			entry.Payment = &p
			res.TotalSpent += o.Payment.Amount
		}
		for _, c := range o.Complaints {
			entry.Complaints = append(entry.Complaints, complaint.ToComplaintResponse(c))
		}
		res.Orders = append(res.Orders, entry)
	}

	res.TotalSpent = math.Round(res.TotalSpent*100) / 100
	return res
}
