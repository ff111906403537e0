// Package models defines the core domain models for the crew start-form
// service: Company, Job, CrewMember and Profile, plus the PerWeek enumeration.
// The structs are configured to work using GORM as the ORM; column tags pin
// the persisted names to the backend schema.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PerWeek indicates whether a crew member's rate is quoted per day or per week.
type PerWeek string

const (
	// PerDay means the rate covers a single working day.
	PerDay    PerWeek = "DAY"
	PerWeekly PerWeek = "WEEK"
)

// Company is the top-level tenant scope for all jobs and crew members.
type Company struct {
	// ID is the unique identifier for the company.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Name is the company's name, unique across companies.
	Name string `gorm:"size:255;uniqueIndex"`
	// CreatedAt records the timestamp when the company was created.
	CreatedAt time.Time
	// UpdatedAt records the timestamp when the company was last updated.
	UpdatedAt time.Time
}

// Job is a named production grouping crew members within a company.
type Job struct {
	// ID is the unique identifier for the job.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Name is the job's display name.
	Name string `gorm:"size:255"`
	// CompanyID references the owning company.
	CompanyID uuid.UUID `gorm:"type:uuid;index"`
	// CreatedAt records the timestamp when the job was created.
	CreatedAt time.Time
}

// Profile records a signed-up user. Written once at signup and otherwise
// unused by the core.
type Profile struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string    `gorm:"size:255;uniqueIndex"`
}

// CrewMember is the central record captured by the starter form.
// Monetary fields are pointers: nil means "not set", which is distinct from
// zero in the stored schema. All free-text fields default to the empty string.
type CrewMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;column:company_id"`
	// JobID is optional; a crew member may exist outside any job.
	JobID        *uuid.UUID `gorm:"type:uuid;index;column:job_id"`
	ProjectTitle string     `gorm:"column:project_title"`

	// Identity.
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	DateOfBirth  string `gorm:"column:date_of_birth"`
	IDCardNumber string `gorm:"column:id_card_number"`
	PatentNumber string `gorm:"column:patent_number"`

	// Contact.
	Address string `gorm:"column:address"`
	Phone   string `gorm:"column:phone"`
	Mobile  string `gorm:"column:mobile"`

	// Employment.
	Position   string `gorm:"column:position"`
	Department string `gorm:"column:department"`
	StartDate  string `gorm:"column:start_date"`
	EndDate    string `gorm:"column:end_date"`

	// Compensation. Rate drives DailyRate (rate/6) and DayWorked (daily*2);
	// the derived fields are never independently editable.
	Rate            *float64 `gorm:"column:rate"`
	DailyRate       *float64 `gorm:"column:daily_rate"`
	DayWorked       *float64 `gorm:"column:day_worked"`
	PerWeek         PerWeek  `gorm:"column:per_week"`
	HolidayWorked   string   `gorm:"column:holiday_worked"`
	TravelDay       string   `gorm:"column:travel_day"`
	LivingAllowance string   `gorm:"column:living_allowance"`
	PerDiem         string   `gorm:"column:per_diem"`
	Accommodation   string   `gorm:"column:accommodation"`

	// Banking.
	PaymentMethod     string `gorm:"column:payment_method"`
	BankAccountNumber string `gorm:"column:bank_account_number;size:24"`
	BankName          string `gorm:"column:bank_name"`
	AccountCode       string `gorm:"column:account_code"`
	ICE               string `gorm:"column:ice"`
	IFNumber          string `gorm:"column:if_number;size:15"`

	// Logistics.
	TravelDate string `gorm:"column:travel_date"`
	Notes      string `gorm:"column:notes"`

	CreatedAt time.Time `gorm:"column:created_at"`
}
