// Package db is the persistence gateway: a thin typed wrapper issuing CRUD
// queries against the relational backend for companies, jobs, crew members
// and profiles. One method per logical operation, no caching, no retries;
// backend errors are surfaced to the caller, mapped onto the package error
// taxonomy only for not-found and duplicate-name conditions.
package db

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/crewstart/internal/crew/errors"
	"github.com/gartstein/crewstart/internal/crew/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Company{},
		&models.Job{},
		&models.CrewMember{},
		&models.Profile{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// CreateCompany inserts a new company. Name uniqueness is enforced by the
// backend's unique index, not re-checked here.
func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	result := r.db.WithContext(ctx).Create(company)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicateName
		}
		return result.Error
	}
	return nil
}

// GetCompanyByName looks a company up by name, case-insensitively.
// The stored data has mixed-case names entered by hand; matching is uniform
// across all call sites. The unique index on name is case-sensitive, so two
// rows can differ only in casing; a lookup matching more than one row fails
// with ErrAmbiguousName rather than picking one arbitrarily.
func (r *Repository) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	var companies []models.Company
	result := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Limit(2).
		Find(&companies)
	if result.Error != nil {
		return nil, result.Error
	}
	switch len(companies) {
	case 0:
		return nil, e.ErrNotFound
	case 1:
		return &companies[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", e.ErrAmbiguousName, name)
	}
}

// ListCompanyNames returns every company name in alphabetical order.
func (r *Repository) ListCompanyNames(ctx context.Context) ([]string, error) {
	var names []string
	result := r.db.WithContext(ctx).Model(&models.Company{}).
		Order("name").
		Pluck("name", &names)
	if result.Error != nil {
		return nil, result.Error
	}
	return names, nil
}

func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	result := r.db.WithContext(ctx).Create(job)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	result := r.db.WithContext(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &job, nil
}

// DeleteJob removes a job. Crew members referencing the job keep their
// dangling job_id; whether orphans should be cleaned up is an open product
// decision and deliberately not guessed at here.
func (r *Repository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// ListCrewMembers returns the crew members of a company, optionally narrowed
// to a single job, most recently created first.
func (r *Repository) ListCrewMembers(ctx context.Context, companyID uuid.UUID, jobID *uuid.UUID) ([]*models.CrewMember, error) {
	query := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC")
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	}

	var members []*models.CrewMember
	result := query.Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}
	return members, nil
}

func (r *Repository) GetCrewMember(ctx context.Context, id uuid.UUID) (*models.CrewMember, error) {
	var member models.CrewMember
	result := r.db.WithContext(ctx).First(&member, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &member, nil
}

func (r *Repository) CreateCrewMember(ctx context.Context, member *models.CrewMember) error {
	result := r.db.WithContext(ctx).Create(member)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// UpdateCrewMember replaces the form-backed columns of a stored record with
// the values carried by member. The starter form always submits its complete
// payload, so every column is written, including explicit NULLs for monetary
// fields that failed numeric cleaning. Updates go through a column map
// (rather than a struct) so that set-to-NULL survives the write.
func (r *Repository) UpdateCrewMember(ctx context.Context, id uuid.UUID, member *models.CrewMember) (*models.CrewMember, error) {
	result := r.db.WithContext(ctx).Model(&models.CrewMember{}).
		Where("id = ?", id).
		Updates(crewColumns(member))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, e.ErrNotFound
	}
	return r.GetCrewMember(ctx, id)
}

// crewColumns flattens a crew member into the column map written on update.
// id and created_at are never touched.
func crewColumns(m *models.CrewMember) map[string]interface{} {
	return map[string]interface{}{
		"company_id":          m.CompanyID,
		"job_id":              m.JobID,
		"project_title":       m.ProjectTitle,
		"first_name":          m.FirstName,
		"last_name":           m.LastName,
		"date_of_birth":       m.DateOfBirth,
		"id_card_number":      m.IDCardNumber,
		"patent_number":       m.PatentNumber,
		"address":             m.Address,
		"phone":               m.Phone,
		"mobile":              m.Mobile,
		"position":            m.Position,
		"department":          m.Department,
		"start_date":          m.StartDate,
		"end_date":            m.EndDate,
		"rate":                m.Rate,
		"daily_rate":          m.DailyRate,
		"day_worked":          m.DayWorked,
		"per_week":            m.PerWeek,
		"holiday_worked":      m.HolidayWorked,
		"travel_day":          m.TravelDay,
		"living_allowance":    m.LivingAllowance,
		"per_diem":            m.PerDiem,
		"accommodation":       m.Accommodation,
		"payment_method":      m.PaymentMethod,
		"bank_account_number": m.BankAccountNumber,
		"bank_name":           m.BankName,
		"account_code":        m.AccountCode,
		"ice":                 m.ICE,
		"if_number":           m.IFNumber,
		"travel_date":         m.TravelDate,
		"notes":               m.Notes,
	}
}

func (r *Repository) DeleteCrewMember(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CrewMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// CreateProfile records a signed-up user. Called once at signup.
func (r *Repository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	result := r.db.WithContext(ctx).Create(profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicateName
		}
		return result.Error
	}
	return nil
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
