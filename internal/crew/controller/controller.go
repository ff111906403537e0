// Package controller implements the core business logic (service layer) for
// the crew start-form system, orchestrating repository operations and sending
// crew member mutation events.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	e "github.com/gartstein/crewstart/internal/crew/errors"
	"github.com/gartstein/crewstart/internal/crew/events"
	"github.com/gartstein/crewstart/internal/crew/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(eventType events.EventType, member *models.CrewMember)
}

// Repository defines the storage interface the service runs against.
type Repository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompanyByName(ctx context.Context, name string) (*models.Company, error)
	ListCompanyNames(ctx context.Context) ([]string, error)
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	ListCrewMembers(ctx context.Context, companyID uuid.UUID, jobID *uuid.UUID) ([]*models.CrewMember, error)
	GetCrewMember(ctx context.Context, id uuid.UUID) (*models.CrewMember, error)
	CreateCrewMember(ctx context.Context, member *models.CrewMember) error
	UpdateCrewMember(ctx context.Context, id uuid.UUID, member *models.CrewMember) (*models.CrewMember, error)
	DeleteCrewMember(ctx context.Context, id uuid.UUID) error
	CreateProfile(ctx context.Context, profile *models.Profile) error
	Close() error
}

// StarterService provides the operations behind the start-form application:
// company and job management, the crew member lifecycle, and signup profiles.
type StarterService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

// NewStarterService constructs a StarterService with a repository, an event
// producer, and a logger.
func NewStarterService(repo Repository, producer EventProducer, logger *zap.Logger) *StarterService {
	return &StarterService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("starter_service"),
	}
}

// CreateCompany adds a new company after validating the name. Uniqueness is
// enforced by the backend constraint and surfaces as ErrDuplicateName.
func (s *StarterService) CreateCompany(ctx context.Context, name string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name required", e.ErrInvalidInput)
	}

	company := &models.Company{ID: uuid.New(), Name: name}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, e.ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// GetCompanyByName retrieves a company by its (case-insensitive) name.
// A name matching several stored rows surfaces as ErrAmbiguousName.
func (s *StarterService) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	company, err := s.repo.GetCompanyByName(ctx, name)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrAmbiguousName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListCompanyNames returns all company names in alphabetical order.
func (s *StarterService) ListCompanyNames(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListCompanyNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return names, nil
}

// CreateJob adds a job under a company. Creating a company and then its first
// job is two independent writes with no shared transaction; a failure here
// leaves the company in place.
func (s *StarterService) CreateJob(ctx context.Context, name string, companyID uuid.UUID) (*models.Job, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: job name required", e.ErrInvalidInput)
	}
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("%w: company ID required", e.ErrInvalidInput)
	}

	job := &models.Job{ID: uuid.New(), Name: name, CompanyID: companyID}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJob retrieves a job by ID, returning ErrNotFound when it doesn't exist.
func (s *StarterService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a job. Crew members referencing it are left as-is.
func (s *StarterService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// ListCrewMembers returns a company's crew members, optionally narrowed to a
// job, newest first.
func (s *StarterService) ListCrewMembers(ctx context.Context, companyID uuid.UUID, jobID *uuid.UUID) ([]*models.CrewMember, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("%w: company ID required", e.ErrInvalidInput)
	}
	members, err := s.repo.ListCrewMembers(ctx, companyID, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list crew members: %w", err)
	}
	return members, nil
}

// GetCrewMember retrieves a single crew member by ID.
func (s *StarterService) GetCrewMember(ctx context.Context, id uuid.UUID) (*models.CrewMember, error) {
	member, err := s.repo.GetCrewMember(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get crew member: %w", err)
	}
	return member, nil
}

// CreateCrewMember inserts a new starter-form record and fires a creation
// event.
func (s *StarterService) CreateCrewMember(ctx context.Context, member *models.CrewMember) (*models.CrewMember, error) {
	if member.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("%w: company ID required", e.ErrInvalidInput)
	}

	member.ID = uuid.New()
	if err := s.repo.CreateCrewMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create crew member: %w", err)
	}
	go func() {
		s.producer.Produce(events.CrewMemberCreated, member)
	}()
	return member, nil
}

// CreateStarterForm is an alias for CreateCrewMember, kept for call sites
// that speak in form terms.
func (s *StarterService) CreateStarterForm(ctx context.Context, member *models.CrewMember) (*models.CrewMember, error) {
	return s.CreateCrewMember(ctx, member)
}

// UpdateCrewMember replaces the form-backed fields of an existing record and
// fires an update event with the stored result.
func (s *StarterService) UpdateCrewMember(ctx context.Context, id uuid.UUID, member *models.CrewMember) (*models.CrewMember, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid crew member ID", e.ErrInvalidInput)
	}

	updated, err := s.repo.UpdateCrewMember(ctx, id, member)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update crew member: %w", err)
	}
	go func() {
		s.producer.Produce(events.CrewMemberUpdated, updated)
	}()
	return updated, nil
}

// DeleteCrewMember removes a record by ID and fires a deletion event.
func (s *StarterService) DeleteCrewMember(ctx context.Context, id uuid.UUID) error {
	member, err := s.repo.GetCrewMember(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get crew member for deletion: %w", err)
	}

	if err := s.repo.DeleteCrewMember(ctx, id); err != nil {
		return fmt.Errorf("failed to delete crew member: %w", err)
	}

	go func() {
		s.producer.Produce(events.CrewMemberDeleted, member)
	}()

	return nil
}

// RegisterProfile records a signed-up user's profile row. Authentication
// itself lives with the external provider; this is the one write the core
// makes at signup.
func (s *StarterService) RegisterProfile(ctx context.Context, email string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email required", e.ErrInvalidInput)
	}

	profile := &models.Profile{ID: uuid.New(), Email: email}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, e.ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}
