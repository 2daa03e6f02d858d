package company

import (
	"context"
	"fmt"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service handles company use cases
type Service struct {
	companyRepo company.Repository
	eventBus    shared.EventPublisher
}

// NewService creates a new company Service
func NewService(companyRepo company.Repository, eventBus shared.EventPublisher) *Service {
	return &Service{
		companyRepo: companyRepo,
		eventBus:    eventBus,
	}
}

// CreateCompanyRequest represents a request to register a company
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	ReportPrefix string `json:"report_prefix" binding:"omitempty,report_prefix"`
}

// UpdateCompanyRequest represents a request to update a company
type UpdateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	ReportPrefix string `json:"report_prefix" binding:"omitempty,report_prefix"`
}

// CreateCompany registers a new company
func (s *Service) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*company.Company, error) {
	c, err := company.NewCompany(req.Name)
	if err != nil {
		return nil, err
	}
	if req.ReportPrefix != "" {
		if err := c.SetReportPrefix(req.ReportPrefix); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	s.publishEvents(ctx, c)
	return c, nil
}

// GetCompany returns a company by id
func (s *Service) GetCompany(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	c, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if c == nil {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

// ListCompanies returns companies matching the filter
func (s *Service) ListCompanies(ctx context.Context, filter shared.Filter) ([]company.Company, int64, error) {
	companies, err := s.companyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	total, err := s.companyRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return companies, total, nil
}

// ListActiveCompanies returns all active companies
func (s *Service) ListActiveCompanies(ctx context.Context) ([]company.Company, error) {
	companies, err := s.companyRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active companies: %w", err)
	}
	return companies, nil
}

// UpdateCompany renames a company and updates its report prefix
func (s *Service) UpdateCompany(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*company.Company, error) {
	c, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := c.SetReportPrefix(req.ReportPrefix); err != nil {
		return nil, err
	}

	if err := s.companyRepo.SaveWithLock(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return c, nil
}

// ActivateCompany marks a company as active
func (s *Service) ActivateCompany(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	c, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Activate(); err != nil {
		return nil, err
	}
	if err := s.companyRepo.SaveWithLock(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to activate company: %w", err)
	}
	return c, nil
}

// DeactivateCompany marks a company as inactive
func (s *Service) DeactivateCompany(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	c, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.companyRepo.SaveWithLock(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to deactivate company: %w", err)
	}
	return c, nil
}

// DeleteCompany removes a company
func (s *Service) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	c, err := s.GetCompany(ctx, id)
	if err != nil {
		return err
	}
	if err := s.companyRepo.Delete(ctx, c.GetID()); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

func (s *Service) publishEvents(ctx context.Context, c *company.Company) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, c.GetDomainEvents()...)
	c.ClearDomainEvents()
}
