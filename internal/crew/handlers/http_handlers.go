// Package handlers provides the HTTP JSON API for the start-form service,
// bridging the transport layer and business logic and translating between
// wire payloads and domain models.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gartstein/crewstart/internal/crew/export"
	"github.com/gartstein/crewstart/internal/crew/models"
	"github.com/gartstein/crewstart/internal/crew/transform"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// StarterController defines the business logic interface the HTTP handlers
// invoke.
type StarterController interface {
	CreateCompany(ctx context.Context, name string) (*models.Company, error)
	GetCompanyByName(ctx context.Context, name string) (*models.Company, error)
	ListCompanyNames(ctx context.Context) ([]string, error)
	CreateJob(ctx context.Context, name string, companyID uuid.UUID) (*models.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	ListCrewMembers(ctx context.Context, companyID uuid.UUID, jobID *uuid.UUID) ([]*models.CrewMember, error)
	GetCrewMember(ctx context.Context, id uuid.UUID) (*models.CrewMember, error)
	CreateCrewMember(ctx context.Context, member *models.CrewMember) (*models.CrewMember, error)
	UpdateCrewMember(ctx context.Context, id uuid.UUID, member *models.CrewMember) (*models.CrewMember, error)
	DeleteCrewMember(ctx context.Context, id uuid.UUID) error
	RegisterProfile(ctx context.Context, email string) (*models.Profile, error)
}

// StarterHandler maps HTTP requests onto a StarterController.
type StarterHandler struct {
	service StarterController
	logger  *zap.Logger
}

// NewStarterHandler constructs a new StarterHandler with the given service
// and logger.
func NewStarterHandler(service StarterController, logger *zap.Logger) *StarterHandler {
	return &StarterHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

// Register wires every route onto the mux.
func (h *StarterHandler) Register(mux *runtime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodGet, "/v1/companies", h.listCompanies},
		{http.MethodPost, "/v1/companies", h.createCompany},
		{http.MethodGet, "/v1/companies/{name}", h.getCompanyByName},
		{http.MethodPost, "/v1/jobs", h.createJob},
		{http.MethodGet, "/v1/jobs/{id}", h.getJob},
		{http.MethodDelete, "/v1/jobs/{id}", h.deleteJob},
		{http.MethodGet, "/v1/crew-members", h.listCrewMembers},
		{http.MethodPost, "/v1/crew-members", h.createCrewMember},
		{http.MethodGet, "/v1/crew-members/{id}", h.getCrewMember},
		{http.MethodPatch, "/v1/crew-members/{id}", h.updateCrewMember},
		{http.MethodDelete, "/v1/crew-members/{id}", h.deleteCrewMember},
		{http.MethodGet, "/v1/crew-members/{id}/start-form", h.startFormPDF},
		{http.MethodPost, "/v1/exports/crew-list", h.exportCrewList},
		{http.MethodPost, "/v1/signup", h.signup},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return fmt.Errorf("failed to register %s %s: %w", r.method, r.pattern, err)
		}
	}
	return nil
}

func (h *StarterHandler) listCompanies(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	names, err := h.service.ListCompanyNames(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, companyListResponse{Companies: names})
}

func (h *StarterHandler) createCompany(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req createCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	company, err := h.service.CreateCompany(r.Context(), req.Name)
	if err != nil {
		h.logger.Error("Create company failed", zap.Error(err))
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, companyToDTO(company))
}

func (h *StarterHandler) getCompanyByName(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	company, err := h.service.GetCompanyByName(r.Context(), pathParams["name"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, companyToDTO(company))
}

func (h *StarterHandler) createJob(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		http.Error(w, "invalid company ID", http.StatusBadRequest)
		return
	}

	job, err := h.service.CreateJob(r.Context(), req.Name, companyID)
	if err != nil {
		h.logger.Error("Create job failed", zap.Error(err))
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, jobToDTO(job))
}

func (h *StarterHandler) getJob(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := uuid.Parse(pathParams["id"])
	if err != nil {
		http.Error(w, "invalid job ID", http.StatusBadRequest)
		return
	}

	job, err := h.service.GetJob(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jobToDTO(job))
}

func (h *StarterHandler) deleteJob(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := uuid.Parse(pathParams["id"])
	if err != nil {
		http.Error(w, "invalid job ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteJob(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StarterHandler) listCrewMembers(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	companyID, err := uuid.Parse(r.URL.Query().Get("company_id"))
	if err != nil {
		http.Error(w, "invalid company ID", http.StatusBadRequest)
		return
	}
	var jobID *uuid.UUID
	if raw := r.URL.Query().Get("job_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid job ID", http.StatusBadRequest)
			return
		}
		jobID = &id
	}

	members, err := h.service.ListCrewMembers(r.Context(), companyID, jobID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	dtos := make([]*crewMemberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, memberToDTO(m))
	}
	h.writeJSON(w, http.StatusOK, crewMemberListResponse{CrewMembers: dtos})
}

func (h *StarterHandler) getCrewMember(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := uuid.Parse(pathParams["id"])
	if err != nil {
		http.Error(w, "invalid crew member ID", http.StatusBadRequest)
		return
	}

	member, err := h.service.GetCrewMember(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, memberToDTO(member))
}

func (h *StarterHandler) createCrewMember(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var dto crewMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	member, err := dtoToMember(&dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateCrewMember(r.Context(), member)
	if err != nil {
		h.logger.Error("Create crew member failed", zap.Error(err))
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, memberToDTO(created))
}

func (h *StarterHandler) updateCrewMember(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := uuid.Parse(pathParams["id"])
	if err != nil {
		http.Error(w, "invalid crew member ID", http.StatusBadRequest)
		return
	}
	var dto crewMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	member, err := dtoToMember(&dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateCrewMember(r.Context(), id, member)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, memberToDTO(updated))
}

func (h *StarterHandler) deleteCrewMember(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := uuid.Parse(pathParams["id"])
	if err != nil {
		http.Error(w, "invalid crew member ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteCrewMember(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// signup records the profile row written once when a user registers with
// the external auth provider.
func (h *StarterHandler) signup(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.service.RegisterProfile(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("Signup failed", zap.Error(err))
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, profileToDTO(profile))
}

// startFormPDF streams the single-page starter form for one crew member.
// The company display name comes from the query string, the same way the
// form screen carries it in its route.
func (h *StarterHandler) startFormPDF(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := uuid.Parse(pathParams["id"])
	if err != nil {
		http.Error(w, "invalid crew member ID", http.StatusBadRequest)
		return
	}

	member, err := h.service.GetCrewMember(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	companyName := r.URL.Query().Get("company")
	form := transform.Hydrate(member)
	doc, err := export.StartFormPDF(&form, companyName)
	if err != nil {
		h.logger.Error("Start form render failed", zap.Error(err))
		http.Error(w, "failed to generate document", http.StatusInternalServerError)
		return
	}

	filename := export.StarterFilename(member.FirstName, member.LastName)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(doc); err != nil {
		h.logger.Error("Failed to write PDF response", zap.Error(err))
	}
}

// exportCrewList streams the spreadsheet for the selected crew members.
// An empty selection produces no file.
func (h *StarterHandler) exportCrewList(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req exportCrewListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		http.Error(w, "invalid company ID", http.StatusBadRequest)
		return
	}
	var jobID *uuid.UUID
	if req.JobID != nil {
		id, err := uuid.Parse(*req.JobID)
		if err != nil {
			http.Error(w, "invalid job ID", http.StatusBadRequest)
			return
		}
		jobID = &id
	}

	selected := make(map[uuid.UUID]bool, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid crew member ID in selection", http.StatusBadRequest)
			return
		}
		selected[id] = true
	}

	members, err := h.service.ListCrewMembers(r.Context(), companyID, jobID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	book, err := export.CrewListXLSX(members, selected)
	if err != nil {
		h.logger.Error("Crew list export failed", zap.Error(err))
		http.Error(w, "failed to generate spreadsheet", http.StatusInternalServerError)
		return
	}
	if book == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	filename := export.CrewListFilename(req.CompanyName, time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(book); err != nil {
		h.logger.Error("Failed to write spreadsheet response", zap.Error(err))
	}
}
