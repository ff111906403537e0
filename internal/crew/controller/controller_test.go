package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	e "github.com/gartstein/crewstart/internal/crew/errors"
	"github.com/gartstein/crewstart/internal/crew/events"
	"github.com/gartstein/crewstart/internal/crew/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockRepository implements the Repository interface for testing
type MockRepository struct {
	createCompany    func(context.Context, *models.Company) error
	getCompanyByName func(context.Context, string) (*models.Company, error)
	listCompanyNames func(context.Context) ([]string, error)
	createJob        func(context.Context, *models.Job) error
	getJob           func(context.Context, uuid.UUID) (*models.Job, error)
	deleteJob        func(context.Context, uuid.UUID) error
	listCrewMembers  func(context.Context, uuid.UUID, *uuid.UUID) ([]*models.CrewMember, error)
	getCrewMember    func(context.Context, uuid.UUID) (*models.CrewMember, error)
	createCrewMember func(context.Context, *models.CrewMember) error
	updateCrewMember func(context.Context, uuid.UUID, *models.CrewMember) (*models.CrewMember, error)
	deleteCrewMember func(context.Context, uuid.UUID) error
	createProfile    func(context.Context, *models.Profile) error
}

func (m *MockRepository) CreateCompany(ctx context.Context, c *models.Company) error {
	return m.createCompany(ctx, c)
}

func (m *MockRepository) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	return m.getCompanyByName(ctx, name)
}

func (m *MockRepository) ListCompanyNames(ctx context.Context) ([]string, error) {
	return m.listCompanyNames(ctx)
}

func (m *MockRepository) CreateJob(ctx context.Context, j *models.Job) error {
	return m.createJob(ctx, j)
}

func (m *MockRepository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return m.getJob(ctx, id)
}

func (m *MockRepository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return m.deleteJob(ctx, id)
}

func (m *MockRepository) ListCrewMembers(ctx context.Context, companyID uuid.UUID, jobID *uuid.UUID) ([]*models.CrewMember, error) {
	return m.listCrewMembers(ctx, companyID, jobID)
}

func (m *MockRepository) GetCrewMember(ctx context.Context, id uuid.UUID) (*models.CrewMember, error) {
	return m.getCrewMember(ctx, id)
}

func (m *MockRepository) CreateCrewMember(ctx context.Context, member *models.CrewMember) error {
	return m.createCrewMember(ctx, member)
}

func (m *MockRepository) UpdateCrewMember(ctx context.Context, id uuid.UUID, member *models.CrewMember) (*models.CrewMember, error) {
	return m.updateCrewMember(ctx, id, member)
}

func (m *MockRepository) DeleteCrewMember(ctx context.Context, id uuid.UUID) error {
	return m.deleteCrewMember(ctx, id)
}

func (m *MockRepository) CreateProfile(ctx context.Context, p *models.Profile) error {
	return m.createProfile(ctx, p)
}

func (m *MockRepository) Close() error {
	return nil
}

// MockProducer is a test double for the Kafka producer.
type MockProducer struct {
	mu             sync.Mutex
	producedEvents []events.EventType
	wg             *sync.WaitGroup
}

// Produce records the event type and signals the wait group.
func (m *MockProducer) Produce(eventType events.EventType, _ *models.CrewMember) {
	m.mu.Lock()
	m.producedEvents = append(m.producedEvents, eventType)
	m.mu.Unlock()
	if m.wg != nil {
		m.wg.Done()
	}
}

func (m *MockProducer) produced() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.EventType(nil), m.producedEvents...)
}

func TestStarterService_CreateCompany(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		mockSetup     func(*MockRepository)
		expectedError error
	}{
		{
			name:  "successful creation",
			input: "Atlas Films",
			mockSetup: func(mr *MockRepository) {
				mr.createCompany = func(_ context.Context, c *models.Company) error {
					return nil
				}
			},
		},
		{
			name:          "empty name rejected",
			input:         "   ",
			mockSetup:     func(_ *MockRepository) {},
			expectedError: e.ErrInvalidInput,
		},
		{
			name:  "duplicate name surfaces",
			input: "Atlas Films",
			mockSetup: func(mr *MockRepository) {
				mr.createCompany = func(_ context.Context, _ *models.Company) error {
					return e.ErrDuplicateName
				}
			},
			expectedError: e.ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{}
			tt.mockSetup(repo)
			svc := NewStarterService(repo, &MockProducer{}, zaptest.NewLogger(t))

			company, err := svc.CreateCompany(context.Background(), tt.input)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, company.ID, "service assigns the ID")
			assert.Equal(t, "Atlas Films", company.Name)
		})
	}
}

func TestStarterService_CreateJob(t *testing.T) {
	repo := &MockRepository{
		createJob: func(_ context.Context, _ *models.Job) error { return nil },
	}
	svc := NewStarterService(repo, &MockProducer{}, zaptest.NewLogger(t))

	companyID := uuid.New()
	job, err := svc.CreateJob(context.Background(), "Pilot", companyID)
	require.NoError(t, err)
	assert.Equal(t, "Pilot", job.Name)
	assert.Equal(t, companyID, job.CompanyID)

	_, err = svc.CreateJob(context.Background(), "", companyID)
	assert.ErrorIs(t, err, e.ErrInvalidInput, "empty job name is caught before the call is made")

	_, err = svc.CreateJob(context.Background(), "Pilot", uuid.Nil)
	assert.ErrorIs(t, err, e.ErrInvalidInput, "missing company is caught before the call is made")
}

func TestStarterService_CreateCrewMember(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	producer := &MockProducer{wg: &wg}
	repo := &MockRepository{
		createCrewMember: func(_ context.Context, _ *models.CrewMember) error { return nil },
	}
	svc := NewStarterService(repo, producer, zaptest.NewLogger(t))

	member := &models.CrewMember{CompanyID: uuid.New(), FirstName: "Amine"}
	created, err := svc.CreateCrewMember(context.Background(), member)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	wg.Wait()
	assert.Equal(t, []events.EventType{events.CrewMemberCreated}, producer.produced())
}

func TestStarterService_CreateCrewMemberMissingCompany(t *testing.T) {
	svc := NewStarterService(&MockRepository{}, &MockProducer{}, zaptest.NewLogger(t))

	_, err := svc.CreateCrewMember(context.Background(), &models.CrewMember{})
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestStarterService_CreateStarterFormAlias(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	producer := &MockProducer{wg: &wg}
	repo := &MockRepository{
		createCrewMember: func(_ context.Context, _ *models.CrewMember) error { return nil },
	}
	svc := NewStarterService(repo, producer, zaptest.NewLogger(t))

	created, err := svc.CreateStarterForm(context.Background(), &models.CrewMember{CompanyID: uuid.New()})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	wg.Wait()
}

func TestStarterService_UpdateCrewMember(t *testing.T) {
	testID := uuid.New()
	stored := &models.CrewMember{ID: testID, CompanyID: uuid.New(), FirstName: "Karim"}

	var wg sync.WaitGroup
	wg.Add(1)
	producer := &MockProducer{wg: &wg}
	repo := &MockRepository{
		updateCrewMember: func(_ context.Context, id uuid.UUID, _ *models.CrewMember) (*models.CrewMember, error) {
			assert.Equal(t, testID, id)
			return stored, nil
		},
	}
	svc := NewStarterService(repo, producer, zaptest.NewLogger(t))

	updated, err := svc.UpdateCrewMember(context.Background(), testID, &models.CrewMember{})
	require.NoError(t, err)
	assert.Equal(t, stored, updated)

	wg.Wait()
	assert.Equal(t, []events.EventType{events.CrewMemberUpdated}, producer.produced())

	_, err = svc.UpdateCrewMember(context.Background(), uuid.Nil, &models.CrewMember{})
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestStarterService_DeleteCrewMember(t *testing.T) {
	testID := uuid.New()
	stored := &models.CrewMember{ID: testID, CompanyID: uuid.New()}

	var wg sync.WaitGroup
	wg.Add(1)
	producer := &MockProducer{wg: &wg}
	repo := &MockRepository{
		getCrewMember: func(_ context.Context, id uuid.UUID) (*models.CrewMember, error) {
			return stored, nil
		},
		deleteCrewMember: func(_ context.Context, id uuid.UUID) error {
			assert.Equal(t, testID, id)
			return nil
		},
	}
	svc := NewStarterService(repo, producer, zaptest.NewLogger(t))

	require.NoError(t, svc.DeleteCrewMember(context.Background(), testID))
	wg.Wait()
	assert.Equal(t, []events.EventType{events.CrewMemberDeleted}, producer.produced())
}

func TestStarterService_DeleteCrewMemberNotFound(t *testing.T) {
	producer := &MockProducer{}
	repo := &MockRepository{
		getCrewMember: func(_ context.Context, _ uuid.UUID) (*models.CrewMember, error) {
			return nil, e.ErrNotFound
		},
	}
	svc := NewStarterService(repo, producer, zaptest.NewLogger(t))

	err := svc.DeleteCrewMember(context.Background(), uuid.New())
	assert.ErrorIs(t, err, e.ErrNotFound)
	assert.Empty(t, producer.produced(), "no event for a failed deletion")
}

func TestStarterService_ListCrewMembers(t *testing.T) {
	companyID := uuid.New()
	jobID := uuid.New()
	repo := &MockRepository{
		listCrewMembers: func(_ context.Context, gotCompany uuid.UUID, gotJob *uuid.UUID) ([]*models.CrewMember, error) {
			assert.Equal(t, companyID, gotCompany)
			require.NotNil(t, gotJob)
			assert.Equal(t, jobID, *gotJob)
			return []*models.CrewMember{{ID: uuid.New()}}, nil
		},
	}
	svc := NewStarterService(repo, &MockProducer{}, zaptest.NewLogger(t))

	members, err := svc.ListCrewMembers(context.Background(), companyID, &jobID)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	_, err = svc.ListCrewMembers(context.Background(), uuid.Nil, nil)
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestStarterService_GetCompanyByName(t *testing.T) {
	repo := &MockRepository{
		getCompanyByName: func(_ context.Context, name string) (*models.Company, error) {
			if name == "Atlas Films" {
				return &models.Company{ID: uuid.New(), Name: "Atlas Films"}, nil
			}
			return nil, e.ErrNotFound
		},
	}
	svc := NewStarterService(repo, &MockProducer{}, zaptest.NewLogger(t))

	company, err := svc.GetCompanyByName(context.Background(), "Atlas Films")
	require.NoError(t, err)
	assert.Equal(t, "Atlas Films", company.Name)

	_, err = svc.GetCompanyByName(context.Background(), "Missing")
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestStarterService_RegisterProfile(t *testing.T) {
	repo := &MockRepository{
		createProfile: func(_ context.Context, _ *models.Profile) error { return nil },
	}
	svc := NewStarterService(repo, &MockProducer{}, zaptest.NewLogger(t))

	profile, err := svc.RegisterProfile(context.Background(), "amine@example.com")
	require.NoError(t, err)
	assert.Equal(t, "amine@example.com", profile.Email)

	_, err = svc.RegisterProfile(context.Background(), "")
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestStarterService_RepositoryErrorWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &MockRepository{
		listCompanyNames: func(_ context.Context) ([]string, error) { return nil, boom },
	}
	svc := NewStarterService(repo, &MockProducer{}, zaptest.NewLogger(t))

	_, err := svc.ListCompanyNames(context.Background())
	assert.ErrorIs(t, err, boom, "backend errors pass through wrapped, not swallowed")
}
