package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	e "github.com/gartstein/crewstart/internal/crew/errors"
	"github.com/gartstein/crewstart/internal/crew/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type createCompanyRequest struct {
	Name string `json:"name"`
}

type companyListResponse struct {
	Companies []string `json:"companies"`
}

type companyDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createJobRequest struct {
	Name      string `json:"name"`
	CompanyID string `json:"company_id"`
}

type jobDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CompanyID string `json:"company_id"`
}

type signupRequest struct {
	Email string `json:"email"`
}

type profileDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type exportCrewListRequest struct {
	CompanyID   string   `json:"company_id"`
	CompanyName string   `json:"company_name"`
	JobID       *string  `json:"job_id,omitempty"`
	IDs         []string `json:"ids"`
}

type crewMemberListResponse struct {
	CrewMembers []*crewMemberDTO `json:"crew_members"`
}

// crewMemberDTO is the wire shape of a crew member; field names follow the
// backend schema columns.
type crewMemberDTO struct {
	ID           string  `json:"id,omitempty"`
	CompanyID    string  `json:"company_id"`
	JobID        *string `json:"job_id,omitempty"`
	ProjectTitle string  `json:"project_title"`

	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DateOfBirth  string `json:"date_of_birth"`
	IDCardNumber string `json:"id_card_number"`
	PatentNumber string `json:"patent_number"`

	Address string `json:"address"`
	Phone   string `json:"phone"`
	Mobile  string `json:"mobile"`

	Position   string `json:"position"`
	Department string `json:"department"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	Rate            *float64 `json:"rate"`
	DailyRate       *float64 `json:"daily_rate"`
	DayWorked       *float64 `json:"day_worked"`
	PerWeek         string   `json:"per_week"`
	HolidayWorked   string   `json:"holiday_worked"`
	TravelDay       string   `json:"travel_day"`
	LivingAllowance string   `json:"living_allowance"`
	PerDiem         string   `json:"per_diem"`
	Accommodation   string   `json:"accommodation"`

	PaymentMethod     string `json:"payment_method"`
	BankAccountNumber string `json:"bank_account_number"`
	BankName          string `json:"bank_name"`
	AccountCode       string `json:"account_code"`
	ICE               string `json:"ice"`
	IFNumber          string `json:"if_number"`

	TravelDate string `json:"travel_date"`
	Notes      string `json:"notes"`

	CreatedAt string `json:"created_at,omitempty"`
}

func companyToDTO(c *models.Company) *companyDTO {
	return &companyDTO{
		ID:   c.ID.String(),
		Name: c.Name,
	}
}

func profileToDTO(p *models.Profile) *profileDTO {
	return &profileDTO{
		ID:    p.ID.String(),
		Email: p.Email,
	}
}

func jobToDTO(j *models.Job) *jobDTO {
	return &jobDTO{
		ID:        j.ID.String(),
		Name:      j.Name,
		CompanyID: j.CompanyID.String(),
	}
}

// dtoToMember converts a wire payload into the internal CrewMember model.
func dtoToMember(dto *crewMemberDTO) (*models.CrewMember, error) {
	companyID, err := uuid.Parse(dto.CompanyID)
	if err != nil {
		return nil, errors.New("invalid company ID")
	}

	var jobID *uuid.UUID
	if dto.JobID != nil && *dto.JobID != "" {
		id, err := uuid.Parse(*dto.JobID)
		if err != nil {
			return nil, errors.New("invalid job ID")
		}
		jobID = &id
	}

	return &models.CrewMember{
		CompanyID:    companyID,
		JobID:        jobID,
		ProjectTitle: dto.ProjectTitle,

		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		DateOfBirth:  dto.DateOfBirth,
		IDCardNumber: dto.IDCardNumber,
		PatentNumber: dto.PatentNumber,

		Address: dto.Address,
		Phone:   dto.Phone,
		Mobile:  dto.Mobile,

		Position:   dto.Position,
		Department: dto.Department,
		StartDate:  dto.StartDate,
		EndDate:    dto.EndDate,

		Rate:            dto.Rate,
		DailyRate:       dto.DailyRate,
		DayWorked:       dto.DayWorked,
		PerWeek:         models.PerWeek(dto.PerWeek),
		HolidayWorked:   dto.HolidayWorked,
		TravelDay:       dto.TravelDay,
		LivingAllowance: dto.LivingAllowance,
		PerDiem:         dto.PerDiem,
		Accommodation:   dto.Accommodation,

		PaymentMethod:     dto.PaymentMethod,
		BankAccountNumber: dto.BankAccountNumber,
		BankName:          dto.BankName,
		AccountCode:       dto.AccountCode,
		ICE:               dto.ICE,
		IFNumber:          dto.IFNumber,

		TravelDate: dto.TravelDate,
		Notes:      dto.Notes,
	}, nil
}

// memberToDTO converts an internal CrewMember model into its wire shape.
func memberToDTO(m *models.CrewMember) *crewMemberDTO {
	var jobID *string
	if m.JobID != nil {
		s := m.JobID.String()
		jobID = &s
	}
	createdAt := ""
	if !m.CreatedAt.IsZero() {
		createdAt = m.CreatedAt.Format(time.RFC3339)
	}

	return &crewMemberDTO{
		ID:           m.ID.String(),
		CompanyID:    m.CompanyID.String(),
		JobID:        jobID,
		ProjectTitle: m.ProjectTitle,

		FirstName:    m.FirstName,
		LastName:     m.LastName,
		DateOfBirth:  m.DateOfBirth,
		IDCardNumber: m.IDCardNumber,
		PatentNumber: m.PatentNumber,

		Address: m.Address,
		Phone:   m.Phone,
		Mobile:  m.Mobile,

		Position:   m.Position,
		Department: m.Department,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,

		Rate:            m.Rate,
		DailyRate:       m.DailyRate,
		DayWorked:       m.DayWorked,
		PerWeek:         string(m.PerWeek),
		HolidayWorked:   m.HolidayWorked,
		TravelDay:       m.TravelDay,
		LivingAllowance: m.LivingAllowance,
		PerDiem:         m.PerDiem,
		Accommodation:   m.Accommodation,

		PaymentMethod:     m.PaymentMethod,
		BankAccountNumber: m.BankAccountNumber,
		BankName:          m.BankName,
		AccountCode:       m.AccountCode,
		ICE:               m.ICE,
		IFNumber:          m.IFNumber,

		TravelDate: m.TravelDate,
		Notes:      m.Notes,

		CreatedAt: createdAt,
	}
}

// writeJSON serializes a response body with the given status.
func (h *StarterHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors to HTTP status codes. Backend errors pass
// through with their message intact.
func (h *StarterHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, e.ErrDuplicateName), errors.Is(err, e.ErrAmbiguousName):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, e.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, fmt.Sprintf("internal error: %v", err), http.StatusInternalServerError)
	}
}
