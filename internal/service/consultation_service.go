package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/clock"
	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
	"github.com/liliang-cn/agribot/internal/realtime"
	"github.com/liliang-cn/agribot/internal/repository"
)

// Specialists is the directory of agri-experts
var Specialists = []domain.Specialist{
	{
		ID:         "1",
		Name:       "Dr. Ramesh Gupta",
		Field:      domain.FieldCrop,
		Experience: "15 Years",
		Languages:  []string{"en", "hi", "gu"},
		Online:     true,
		Image:      "https://ui-avatars.com/api/?name=Ramesh+Gupta&background=166534&color=fff",
	},
	{
		ID:         "2",
		Name:       "Ms. Anita Deshmukh",
		Field:      domain.FieldPest,
		Experience: "8 Years",
		Languages:  []string{"en", "hi", "mr"},
		Online:     true,
		Image:      "https://ui-avatars.com/api/?name=Anita+Deshmukh&background=e11d48&color=fff",
	},
	{
		ID:         "3",
		Name:       "Dr. S. Perumal",
		Field:      domain.FieldVeterinary,
		Experience: "12 Years",
		Languages:  []string{"en", "ta", "te"},
		Online:     false,
		Image:      "https://ui-avatars.com/api/?name=S+Perumal&background=0284c7&color=fff",
	},
	{
		ID:         "4",
		Name:       "Mr. Rajesh Patel",
		Field:      domain.FieldSoil,
		Experience: "20 Years",
		Languages:  []string{"en", "gu", "hi"},
		Online:     true,
		Image:      "https://ui-avatars.com/api/?name=Rajesh+Patel&background=d97706&color=fff",
	},
	{
		ID:         "5",
		Name:       "KVK Officer Sharma",
		Field:      domain.FieldGeneral,
		Experience: "10 Years",
		Languages:  []string{"en", "hi", "mr", "gu", "ta", "te"},
		Online:     true,
		Image:      "https://ui-avatars.com/api/?name=KVK+Sharma&background=4b5563&color=fff",
	},
}

// ConsultationService runs the simulated expert workflow: a request is
// accepted after a fixed delay and the farmer is notified once.
type ConsultationService struct {
	repo        *repository.ConsultationRepository
	directory   []domain.Specialist
	clock       clock.Clock
	publisher   Publisher
	acceptDelay time.Duration
	noticeTTL   time.Duration
	logger      *zap.Logger

	mu      sync.Mutex
	notices map[string]*domain.Notification
}

// NewConsultationService creates a new consultation service
func NewConsultationService(
	repo *repository.ConsultationRepository,
	clk clock.Clock,
	publisher Publisher,
	acceptDelay, noticeTTL time.Duration,
	logger *zap.Logger,
) *ConsultationService {
	if clk == nil {
		clk = clock.Real()
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsultationService{
		repo:        repo,
		directory:   Specialists,
		clock:       clk,
		publisher:   publisher,
		acceptDelay: acceptDelay,
		noticeTTL:   noticeTTL,
		logger:      logger,
		notices:     make(map[string]*domain.Notification),
	}
}

func speaks(sp domain.Specialist, lang string) bool {
	for _, l := range sp.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// ListSpecialists returns the specialists who speak lang or English
func (s *ConsultationService) ListSpecialists(lang string) []domain.Specialist {
	out := make([]domain.Specialist, 0, len(s.directory))
	for _, sp := range s.directory {
		if speaks(sp, lang) || speaks(sp, i18n.DefaultLanguage) {
			out = append(out, sp)
		}
	}
	return out
}

func (s *ConsultationService) specialist(id string) (domain.Specialist, bool) {
	for _, sp := range s.directory {
		if sp.ID == id {
			return sp, true
		}
	}
	return domain.Specialist{}, false
}

// Submit records a Pending consultation and schedules its acceptance
func (s *ConsultationService) Submit(ctx context.Context, sessionID string, req *domain.SubmitConsultationRequest) (*domain.Consultation, error) {
	sp, ok := s.specialist(req.SpecialistID)
	if !ok {
		return nil, fmt.Errorf("%w: specialist %s", domain.ErrNotFound, req.SpecialistID)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: request type %q", domain.ErrInvalidRequest, req.Type)
	}
	problem := strings.TrimSpace(req.Problem)
	if problem == "" {
		return nil, fmt.Errorf("%w: problem is required", domain.ErrInvalidRequest)
	}

	c := &domain.Consultation{
		ID:             uuid.New().String(),
		SessionID:      sessionID,
		SpecialistID:   sp.ID,
		SpecialistName: sp.Name,
		Type:           req.Type,
		Status:         domain.StatusPending,
		Problem:        problem,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.repo.Create(c); err != nil {
		return nil, fmt.Errorf("failed to save consultation: %w", err)
	}

	s.clock.AfterFunc(s.acceptDelay, func() {
		s.accept(c)
	})

	s.logger.Info("Consultation requested",
		zap.String("session_id", sessionID),
		zap.String("consultation_id", c.ID),
		zap.String("specialist", sp.Name))
	return c, nil
}

// accept moves a consultation to Accepted and notifies the farmer once
func (s *ConsultationService) accept(c *domain.Consultation) {
	ok, err := s.repo.UpdateStatus(c.ID, domain.StatusPending, domain.StatusAccepted)
	if err != nil {
		s.logger.Error("Failed to accept consultation", zap.String("consultation_id", c.ID), zap.Error(err))
		return
	}
	if !ok {
		// Forgotten with its session, or already accepted
		return
	}

	notice := &domain.Notification{
		Text:      i18n.F(i18n.KeyConsultAccepted, i18n.DefaultLanguage, c.SpecialistName),
		CreatedAt: s.clock.Now(),
	}
	s.mu.Lock()
	s.notices[c.SessionID] = notice
	s.mu.Unlock()

	s.publisher.Publish(c.SessionID, realtime.EventNotification, notice)

	s.clock.AfterFunc(s.noticeTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.notices[c.SessionID] == notice {
			delete(s.notices, c.SessionID)
		}
	})
}

// Notification returns the session's current notification, if any
func (s *ConsultationService) Notification(sessionID string) *domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notices[sessionID]
}

// History lists a session's consultations, newest first
func (s *ConsultationService) History(ctx context.Context, sessionID string) ([]*domain.Consultation, error) {
	list, err := s.repo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*domain.Consultation{}
	}
	return list, nil
}

// Forget drops a session's consultations and notification
func (s *ConsultationService) Forget(sessionID string) {
	if err := s.repo.DeleteBySession(sessionID); err != nil {
		s.logger.Error("Failed to forget consultations", zap.String("session_id", sessionID), zap.Error(err))
	}
	s.mu.Lock()
	delete(s.notices, sessionID)
	s.mu.Unlock()
}

// Counts returns total and pending consultations
func (s *ConsultationService) Counts() (total, pending int, err error) {
	counts, err := s.repo.CountByStatus()
	if err != nil {
		return 0, 0, err
	}
	for _, n := range counts {
		total += n
	}
	return total, counts[domain.StatusPending], nil
}
