package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
	"aqarshare/admin-portal/admin-portal-backend/internal/funding"
	"aqarshare/admin-portal/admin-portal-backend/internal/properties"
	"aqarshare/admin-portal/admin-portal-backend/internal/users"
)

type Service interface {
	// ExportRoster writes a property's share-unit roster as an xlsx workbook.
	ExportRoster(ctx context.Context, propertyID uuid.UUID, w io.Writer) error
	// FundingCertificate writes a PDF certifying a user's confirmed units in
	// a property. The user must hold at least one confirmed unit.
	FundingCertificate(ctx context.Context, userID, propertyID uuid.UUID, w io.Writer) error
}

type reportService struct {
	funders    funding.Repository
	properties properties.Repository
	users      users.Repository
}

func NewService(funders funding.Repository, propertyRepo properties.Repository, userRepo users.Repository) Service {
	return &reportService{
		funders:    funders,
		properties: propertyRepo,
		users:      userRepo,
	}
}

func (s *reportService) ExportRoster(ctx context.Context, propertyID uuid.UUID, w io.Writer) error {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property == nil {
		return fmt.Errorf("property %s: %w", propertyID, apperrors.ErrNotFound)
	}

	units, err := s.funders.ListByProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	// Users repeat across units; resolve each once.
	resolved := make(map[uuid.UUID]*users.User)
	rows := make([]rosterRow, 0, len(units))
	for _, unit := range units {
		user, ok := resolved[unit.UserID]
		if !ok {
			user, err = s.users.GetByID(ctx, unit.UserID)
			if err != nil {
				return err
			}
			resolved[unit.UserID] = user
		}

		row := rosterRow{
			UnitID:      unit.ID.String(),
			Status:      string(unit.Status),
			AllocatedAt: unit.CreatedAt.Format("2006-01-02 15:04"),
		}
		if user != nil {
			row.UserName = user.Name
			row.UserEmail = user.Email
		}
		rows = append(rows, row)
	}

	return writeRosterWorkbook(w, "Roster", rows)
}

func (s *reportService) FundingCertificate(ctx context.Context, userID, propertyID uuid.UUID, w io.Writer) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property == nil {
		return fmt.Errorf("property %s: %w", propertyID, apperrors.ErrNotFound)
	}

	units, err := s.funders.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	confirmed := 0
	for _, unit := range units {
		if unit.PropertyID == propertyID && unit.Status == funding.StatusFunder {
			confirmed++
		}
	}
	if confirmed == 0 {
		return fmt.Errorf("user %s has no confirmed units in property %s: %w", userID, propertyID, apperrors.ErrNotFound)
	}

	return writeCertificate(w, certificateData{
		UserName:       user.Name,
		PropertyName:   property.Name,
		ConfirmedUnits: confirmed,
		IssuedAt:       time.Now(),
	})
}
