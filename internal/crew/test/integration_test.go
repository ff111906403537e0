package test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/crewstart/internal/crew/controller"
	"github.com/gartstein/crewstart/internal/crew/db"
	e "github.com/gartstein/crewstart/internal/crew/errors"
	"github.com/gartstein/crewstart/internal/crew/events"
	"github.com/gartstein/crewstart/internal/crew/models"
	"github.com/gartstein/crewstart/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const eventTopic = "crew_members"

type IntegrationTestSuite struct {
	suite.Suite
	dbRepo      *db.Repository
	kafkaReader *kafka.Reader
	producer    *events.Producer
	logger      *zap.Logger
	testTimeout time.Duration
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.logger = zap.NewNop()
	s.testTimeout = 20 * time.Second

	var dbErr error
	s.dbRepo, dbErr = initializeDBWithRetry()
	if dbErr != nil {
		s.T().Fatal("Database initialization failed:", dbErr)
	}
}

func initializeDBWithRetry() (*db.Repository, error) {
	cfg := &db.Config{
		Host:     "localhost",
		Port:     5432,
		User:     "test",
		Password: "test",
		DBName:   "test",
		SSLMode:  "disable",
	}

	var repo *db.Repository
	var err error

	err = backoff.Retry(func() error {
		repo, err = db.NewRepository(cfg)
		return err
	}, backoff.NewExponentialBackOff())

	return repo, err
}

func initializeKafkaWithRetry(topic string) (*events.Producer, *kafka.Reader, error) {
	kafkaBrokers := []string{"localhost:9092"}
	var producer *events.Producer
	var reader *kafka.Reader
	var err error

	err = backoff.Retry(func() error {
		producer, err = events.NewProducer(kafkaBrokers, zap.NewNop(), topic)
		if err != nil || producer == nil {
			return fmt.Errorf("failed to create Kafka producer: %v", err)
		}
		return nil
	}, backoff.NewExponentialBackOff())

	if err != nil {
		return nil, nil, fmt.Errorf("Kafka producer initialization failed: %w", err)
	}

	// Verify readiness through metadata instead of blocking on ReadMessage.
	err = backoff.Retry(func() error {
		conn, err := kafka.Dial("tcp", kafkaBrokers[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		partitions, err := conn.ReadPartitions(topic)
		if err != nil || len(partitions) == 0 {
			return fmt.Errorf("topic %s not found", topic)
		}
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))

	if err != nil {
		return nil, nil, fmt.Errorf("Kafka topic check failed: %w", err)
	}

	reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kafkaBrokers,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return producer, reader, nil
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.producer != nil {
		s.producer.Close()
	}
	if s.kafkaReader != nil {
		_ = s.kafkaReader.Close()
	}
	if s.dbRepo != nil {
		_ = s.dbRepo.Close()
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	if s.dbRepo == nil {
		s.T().Fatal("Database connection not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	for _, table := range []string{"crew_members", "jobs", "companies", "profiles"} {
		if err := s.dbRepo.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			s.T().Fatal("Failed to clean database:", err)
		}
	}
}

func (s *IntegrationTestSuite) setupKafka() {
	var kafkaErr error
	s.producer, s.kafkaReader, kafkaErr = initializeKafkaWithRetry(eventTopic)
	if kafkaErr != nil {
		s.T().Fatal("Kafka initialization failed:", kafkaErr)
	}
}

func (s *IntegrationTestSuite) seedCompany(ctx context.Context) *models.Company {
	company := &models.Company{ID: uuid.New(), Name: fmt.Sprintf("Atlas Films %s", uuid.NewString()[:8])}
	if err := s.dbRepo.CreateCompany(ctx, company); err != nil {
		s.T().Fatal("CreateCompany failed:", err)
	}
	return company
}

func (s *IntegrationTestSuite) TestCrewMemberCreate() {
	s.setupKafka()

	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	svc := controller.NewStarterService(s.dbRepo, s.producer, s.logger)
	company := s.seedCompany(ctx)

	created, err := svc.CreateCrewMember(ctx, &models.CrewMember{
		CompanyID: company.ID,
		FirstName: "Amine",
		LastName:  "Berrada",
		Position:  "Gaffer",
		Rate:      utils.Ptr(6000.0),
		DailyRate: utils.Ptr(1000.0),
		DayWorked: utils.Ptr(2000.0),
		PerWeek:   models.PerDay,
	})
	if err != nil {
		s.T().Fatal("CreateCrewMember failed:", err)
	}

	assert.Equal(s.T(), "Amine", created.FirstName)
	s.verifyKafkaEvent(ctx, events.CrewMemberCreated, created.ID)
}

func (s *IntegrationTestSuite) TestCrewMemberUpdate() {
	s.setupKafka()

	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	svc := controller.NewStarterService(s.dbRepo, s.producer, s.logger)
	company := s.seedCompany(ctx)

	member := &models.CrewMember{
		ID:        uuid.New(),
		CompanyID: company.ID,
		FirstName: "Karim",
		Rate:      utils.Ptr(9000.0),
	}
	if err := s.dbRepo.CreateCrewMember(ctx, member); err != nil {
		s.T().Fatal("CreateCrewMember failed:", err)
	}

	member.FirstName = "Karim Updated"
	member.Rate = nil
	updated, err := svc.UpdateCrewMember(ctx, member.ID, member)
	if err != nil {
		s.T().Fatal("UpdateCrewMember failed:", err)
	}

	assert.Equal(s.T(), "Karim Updated", updated.FirstName)
	assert.Nil(s.T(), updated.Rate, "cleared rate is stored as NULL")
	time.Sleep(2 * time.Second)
	s.verifyKafkaEvent(ctx, events.CrewMemberUpdated, member.ID)
}

func (s *IntegrationTestSuite) TestCrewMemberDelete() {
	s.setupKafka()

	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	svc := controller.NewStarterService(s.dbRepo, s.producer, s.logger)
	company := s.seedCompany(ctx)

	member := &models.CrewMember{ID: uuid.New(), CompanyID: company.ID, FirstName: "Salma"}
	if err := s.dbRepo.CreateCrewMember(ctx, member); err != nil {
		s.T().Fatal("CreateCrewMember failed:", err)
	}

	if err := svc.DeleteCrewMember(ctx, member.ID); err != nil {
		s.T().Fatal("DeleteCrewMember failed:", err)
	}

	_, err := s.dbRepo.GetCrewMember(ctx, member.ID)
	assert.ErrorIs(s.T(), err, e.ErrNotFound)
	time.Sleep(2 * time.Second)
	s.verifyKafkaEvent(ctx, events.CrewMemberDeleted, member.ID)
}

func (s *IntegrationTestSuite) TestConsumerReceivesEvents() {
	s.setupKafka()

	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	svc := controller.NewStarterService(s.dbRepo, s.producer, s.logger)
	company := s.seedCompany(ctx)

	received := make(chan events.Event, 1)
	consumer := events.NewConsumer([]string{"localhost:9092"}, "integration-"+uuid.NewString(), eventTopic, s.logger)
	consumer.RegisterHandler(func(_ context.Context, ev events.Event) error {
		select {
		case received <- ev:
		default:
		}
		return nil
	})
	consumer.Start(ctx)
	defer consumer.Close()

	created, err := svc.CreateCrewMember(ctx, &models.CrewMember{CompanyID: company.ID, FirstName: "Nadia"})
	if err != nil {
		s.T().Fatal("CreateCrewMember failed:", err)
	}

	select {
	case ev := <-received:
		assert.Equal(s.T(), events.CrewMemberCreated, ev.Type)
		if assert.NotNil(s.T(), ev.Member) {
			assert.Equal(s.T(), created.ID, ev.Member.ID)
		}
	case <-ctx.Done():
		s.T().Fatal("Timeout: consumer never delivered the event")
	}
}

func (s *IntegrationTestSuite) verifyKafkaEvent(ctx context.Context, eventType events.EventType, memberID uuid.UUID) {
	event := s.consumeKafkaEvent(ctx, eventType, memberID)

	if event.Member == nil {
		s.T().Fatal("Received nil crew member in Kafka event")
	}
	assert.Equal(s.T(), memberID.String(), event.Member.ID.String(), "Kafka message crew member ID mismatch")
}

func (s *IntegrationTestSuite) consumeKafkaEvent(ctx context.Context, eventType events.EventType, memberID uuid.UUID) events.Event {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	maxRetries := 200
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			s.T().Fatalf("Timeout: No %s event received after %d attempts", eventType, attempts)
			return events.Event{}
		default:
			if attempts >= maxRetries {
				s.T().Fatalf("Max retry attempts reached for %s", eventType)
				return events.Event{}
			}
			msg, err := s.kafkaReader.ReadMessage(ctx)
			if err != nil {
				s.T().Logf("Kafka read attempt %d failed: %v", attempts, err)
				attempts++
				time.Sleep(1 * time.Second)
				continue
			}
			if string(msg.Key) != memberID.String() {
				s.T().Logf("Skipping message with unmatched key: %s (Expected: %s)", string(msg.Key), memberID.String())
				attempts++
				continue
			}
			var event events.Event
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				s.T().Fatalf("Failed to unmarshal Kafka message: %v", err)
			}
			if event.Type != eventType {
				s.T().Logf("Skipping message with unmatched eventType: %s (Expected: %s)", string(event.Type), eventType)
				attempts++
				continue
			}
			return event
		}
	}
}
