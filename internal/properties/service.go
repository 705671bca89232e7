package properties

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
	"aqarshare/admin-portal/admin-portal-backend/pkg/workflows"
)

type CreatePropertyRequest struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	CategoryID     uuid.UUID      `json:"category_id"`
	LocationString string         `json:"location_string"`
	Images         datatypes.JSON `json:"images"`

	PurchasePrice      float64 `json:"purchase_price"`
	PropertyPriceTotal float64 `json:"property_price_total"`
	PropertyPrice      string  `json:"property_price"`
	Discount           string  `json:"discount"`

	RentalIncome float64 `json:"rental_income"`
	CurrentRent  float64 `json:"current_rent"`
	Percent      float64 `json:"percent"`

	FundedDate        *time.Time `json:"funded_date"`
	FunderCount       int        `json:"funder_count"`
	CurrentEvaluation string     `json:"current_evaluation"`
	ServiceCharge     float64    `json:"service_charge"`

	EstimatedAnnualisedReturn    string `json:"estimated_annualised_return"`
	EstimatedAnnualAppreciation  string `json:"estimated_annual_appreciation"`
	EstimatedProjectedGrossYield string `json:"estimated_projected_gross_yield"`

	Status Status `json:"status"`
}

type Service interface {
	Create(ctx context.Context, req CreatePropertyRequest) (*Property, error)
	Get(ctx context.Context, id uuid.UUID) (*Property, error)
	List(ctx context.Context, status *Status) ([]Property, error)
	MarkSoldOut(ctx context.Context, id uuid.UUID) (*Property, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

type propertyService struct {
	repo         Repository
	stateMachine *workflows.StateMachine
}

func NewService(repo Repository) Service {
	return &propertyService{
		repo: repo,
		stateMachine: workflows.NewStateMachine(map[string][]string{
			string(StatusFunded): {string(StatusRented), string(StatusSoldOut)},
			string(StatusRented): {string(StatusSoldOut)},
		}),
	}
}

func (s *propertyService) Create(ctx context.Context, req CreatePropertyRequest) (*Property, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.FunderCount < 0 {
		return nil, errors.New("funder_count must be non-negative")
	}
	status := req.Status
	if status == "" {
		status = StatusFunded
	}

	property := &Property{
		Name:           req.Name,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		LocationString: req.LocationString,
		Images:         req.Images,

		PurchasePrice:      req.PurchasePrice,
		PropertyPriceTotal: req.PropertyPriceTotal,
		PropertyPrice:      req.PropertyPrice,
		Discount:           req.Discount,

		RentalIncome: req.RentalIncome,
		CurrentRent:  req.CurrentRent,
		Percent:      req.Percent,

		FundedDate:        req.FundedDate,
		FunderCount:       req.FunderCount,
		CurrentEvaluation: req.CurrentEvaluation,
		ServiceCharge:     req.ServiceCharge,

		EstimatedAnnualisedReturn:    req.EstimatedAnnualisedReturn,
		EstimatedAnnualAppreciation:  req.EstimatedAnnualAppreciation,
		EstimatedProjectedGrossYield: req.EstimatedProjectedGrossYield,

		Status: status,
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Get(ctx context.Context, id uuid.UUID) (*Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("property %s: %w", id, apperrors.ErrNotFound)
	}
	return property, nil
}

func (s *propertyService) List(ctx context.Context, status *Status) ([]Property, error) {
	return s.repo.List(ctx, status)
}

// MarkSoldOut closes a property for further funding.
func (s *propertyService) MarkSoldOut(ctx context.Context, id uuid.UUID) (*Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("property %s: %w", id, apperrors.ErrNotFound)
	}
	if !s.stateMachine.CanTransition(string(property.Status), string(StatusSoldOut)) {
		return nil, fmt.Errorf("property %s is %s: %w", id, property.Status, apperrors.ErrInvalidStateTransition)
	}

	property.Status = StatusSoldOut
	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	category := &Category{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *propertyService) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}
