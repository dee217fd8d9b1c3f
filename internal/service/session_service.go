package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
	"github.com/liliang-cn/agribot/internal/realtime"
	"github.com/liliang-cn/agribot/internal/repository"
	"github.com/liliang-cn/agribot/internal/state"
)

// Publisher pushes events to the clients of a session
type Publisher interface {
	Publish(sessionID, event string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, string, any) {}

// SessionService handles login, preferences and the transcript of a session
type SessionService struct {
	store     state.Store
	repo      *repository.SessionRepository
	publisher Publisher
	logger    *zap.Logger

	onLogout []func(sessionID string)
	onMute   []func(sessionID string)
}

// NewSessionService creates a new session service
func NewSessionService(
	store state.Store,
	repo *repository.SessionRepository,
	publisher Publisher,
	logger *zap.Logger,
) *SessionService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{store: store, repo: repo, publisher: publisher, logger: logger}
}

// OnLogout registers a hook run after a session is logged out
func (s *SessionService) OnLogout(fn func(sessionID string)) {
	s.onLogout = append(s.onLogout, fn)
}

// OnMute registers a hook run when a session is muted
func (s *SessionService) OnMute(fn func(sessionID string)) {
	s.onMute = append(s.onMute, fn)
}

// Login starts a new session for the farmer
func (s *SessionService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AppState, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidRequest)
	}
	user := &domain.User{Name: name, Location: strings.TrimSpace(req.Location)}

	st := domain.DefaultAppState(uuid.New().String())
	st.LoggedIn = true
	st.User = user

	if err := s.repo.Create(st.SessionID, user); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if err := s.store.Save(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("Session started", zap.String("session_id", st.SessionID))
	return st, nil
}

// State returns the current state of a session
func (s *SessionService) State(ctx context.Context, sessionID string) (*domain.AppState, error) {
	if sessionID == "" {
		return nil, domain.ErrNoSession
	}
	return s.store.Load(ctx, sessionID)
}

func (s *SessionService) update(ctx context.Context, sessionID string, fn func(st *domain.AppState) error) (*domain.AppState, error) {
	st, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(st); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SetLanguage selects the conversation language. The first selection on an
// empty transcript greets the farmer.
func (s *SessionService) SetLanguage(ctx context.Context, sessionID, lang string) (*domain.AppState, error) {
	if !i18n.Supported(lang) {
		return nil, fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidRequest, lang)
	}
	st, err := s.update(ctx, sessionID, func(st *domain.AppState) error {
		st.Language = lang
		st.LanguageSelected = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	n, err := s.repo.CountMessages(sessionID)
	if err != nil {
		return nil, err
	}
	if n == 0 && st.User != nil {
		greeting := domain.NewTextMessage(domain.SenderBot, i18n.F(i18n.KeyGreeting, lang, st.User.Name), nil)
		if err := s.Append(sessionID, greeting); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// SetView switches the current screen
func (s *SessionService) SetView(ctx context.Context, sessionID string, view domain.View) (*domain.AppState, error) {
	if !view.Valid() {
		return nil, fmt.Errorf("%w: unknown view %q", domain.ErrInvalidRequest, view)
	}
	return s.update(ctx, sessionID, func(st *domain.AppState) error {
		st.View = view
		return nil
	})
}

// SetMuted toggles automatic reading of replies. Muting also silences the
// reply currently sounding.
func (s *SessionService) SetMuted(ctx context.Context, sessionID string, muted bool) (*domain.AppState, error) {
	st, err := s.update(ctx, sessionID, func(st *domain.AppState) error {
		st.Muted = muted
		return nil
	})
	if err != nil {
		return nil, err
	}
	if muted {
		for _, fn := range s.onMute {
			fn(sessionID)
		}
	}
	return st, nil
}

// Logout resets the session. The transcript stays in the database but is
// no longer reachable because the session id is retired.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if _, err := s.State(ctx, sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	for _, fn := range s.onLogout {
		fn(sessionID)
	}
	s.logger.Info("Session ended", zap.String("session_id", sessionID))
	return nil
}

// Append adds a message to the session transcript and pushes it to clients
func (s *SessionService) Append(sessionID string, message *domain.Message) error {
	message.SessionID = sessionID
	if err := s.repo.CreateMessage(message); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	if err := s.repo.Touch(sessionID); err != nil {
		s.logger.Warn("Failed to touch session", zap.String("session_id", sessionID), zap.Error(err))
	}
	s.publisher.Publish(sessionID, realtime.EventMessage, message)
	return nil
}

// Messages returns the transcript in append order
func (s *SessionService) Messages(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	if _, err := s.State(ctx, sessionID); err != nil {
		return nil, err
	}
	messages, err := s.repo.GetMessages(sessionID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return messages, nil
}

// Count returns the number of live sessions
func (s *SessionService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
