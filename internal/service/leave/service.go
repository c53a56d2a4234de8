package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirin/hadirin-backend-go/internal/domain/audit"
	"github.com/hadirin/hadirin-backend-go/internal/domain/employee"
	"github.com/hadirin/hadirin-backend-go/internal/domain/leave"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	employee.EmployeeRepository
	recorder audit.Recorder
}

func NewLeaveService(leaveRepo leave.LeaveRepository, employeeRepo employee.EmployeeRepository, recorder audit.Recorder) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository:    leaveRepo,
		EmployeeRepository: employeeRepo,
		recorder:           recorder,
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

// CreateGrant implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateGrant(ctx context.Context, req leave.CreateGrantRequest) (leave.GrantResponse, error) {
	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.GrantResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.GrantResponse{}, err
	}
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.GrantResponse{}, employee.ErrEmployeeNotFound
		}
		return leave.GrantResponse{}, fmt.Errorf("failed to load employee: %w", err)
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Grant{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Type:       leave.Type(req.Type),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.GrantResponse{}, fmt.Errorf("failed to create leave grant: %w", err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:      userID,
		Action:       "leave.grant",
		ResourceType: "leave_grant",
		ResourceID:   created.ID,
		Details: map[string]interface{}{
			"employee_id": created.EmployeeID,
			"type":        string(created.Type),
		},
	})

	return leave.MapGrantToResponse(created), nil
}

// ListGrants implements leave.LeaveService.
func (s *LeaveServiceImpl) ListGrants(ctx context.Context) ([]leave.GrantResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	grants, err := s.LeaveRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}

	responses := make([]leave.GrantResponse, 0, len(grants))
	for _, g := range grants {
		responses = append(responses, leave.MapGrantToResponse(g))
	}
	return responses, nil
}
