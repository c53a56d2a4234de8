package holiday

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirin/hadirin-backend-go/internal/domain/audit"
	"github.com/hadirin/hadirin-backend-go/internal/domain/holiday"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	recorder audit.Recorder
}

func NewHolidayService(holidayRepo holiday.HolidayRepository, recorder audit.Recorder) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepo,
		recorder:          recorder,
	}
}

func claimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", errors.New("company_id claim is missing or invalid")
	}
	userID, _ = claims["user_id"].(string)
	return companyID, userID, nil
}

// CreateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		CompanyID: companyID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:      userID,
		Action:       "holiday.create",
		ResourceType: "holiday",
		ResourceID:   created.ID,
		Details: map[string]interface{}{
			"name": created.Name,
		},
	})

	return holiday.MapHolidayToResponse(created), nil
}

// ListHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context) ([]holiday.HolidayResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	holidays, err := s.HolidayRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.MapHolidayToResponse(h))
	}
	return responses, nil
}
