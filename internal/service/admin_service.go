package service

import (
	"context"

	"github.com/liliang-cn/agribot/internal/connectivity"
	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/knowledge"
	"github.com/liliang-cn/agribot/internal/repository"
)

// AdminService handles admin operations
type AdminService struct {
	sessionRepo   *repository.SessionRepository
	consultations *ConsultationService
	kb            *knowledge.Base
	monitor       *connectivity.Monitor
}

// NewAdminService creates a new admin service
func NewAdminService(
	sessionRepo *repository.SessionRepository,
	consultations *ConsultationService,
	kb *knowledge.Base,
	monitor *connectivity.Monitor,
) *AdminService {
	return &AdminService{
		sessionRepo:   sessionRepo,
		consultations: consultations,
		kb:            kb,
		monitor:       monitor,
	}
}

// GetStats returns usage counters
func (s *AdminService) GetStats(ctx context.Context) (*domain.Stats, error) {
	sessions, err := s.sessionRepo.CountSessions()
	if err != nil {
		return nil, err
	}
	chats, err := s.sessionRepo.CountChats()
	if err != nil {
		return nil, err
	}
	total, pending, err := s.consultations.Counts()
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		TotalSessions:      sessions,
		TotalChats:         chats,
		TotalConsultations: total,
		PendingRequests:    pending,
		KnowledgeEntries:   s.kb.Len(),
		Online:             s.monitor.Online(),
	}, nil
}

// Knowledge returns the offline table
func (s *AdminService) Knowledge(ctx context.Context) []knowledge.Entry {
	return s.kb.Entries()
}

// SetOnline forces the connectivity flag
func (s *AdminService) SetOnline(ctx context.Context, online bool) bool {
	s.monitor.Set(online)
	return s.monitor.Online()
}
