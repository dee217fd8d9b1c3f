package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/agribot/internal/domain"
)

// SessionRepository handles session and transcript persistence
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session row for a logged in user
func (r *SessionRepository) Create(id string, user *domain.User) error {
	if id == "" {
		return fmt.Errorf("%w: empty session id", domain.ErrInvalidRequest)
	}
	var name, location string
	if user != nil {
		name, location = user.Name, user.Location
	}
	now := time.Now()

	_, err := r.db.Exec(`
		INSERT INTO sessions (id, user_name, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, name, location, now, now)

	return err
}

// Exists reports whether a session row exists
func (r *SessionRepository) Exists(id string) (bool, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE id = ?`, id).Scan(&n)
	return n > 0, err
}

// Touch updates a session's updated_at timestamp
func (r *SessionRepository) Touch(id string) error {
	_, err := r.db.Exec(`UPDATE sessions SET updated_at = ? WHERE id = ?`, time.Now(), id)
	return err
}

// CreateMessage appends a message to a session transcript
func (r *SessionRepository) CreateMessage(message *domain.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	sourcesJSON, _ := json.Marshal(message.Sources)
	chartJSON, _ := json.Marshal(message.ChartData)

	_, err := r.db.Exec(`
		INSERT INTO messages (id, session_id, sender, kind, text, image, audio_data, sources, chart_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, message.ID, message.SessionID, string(message.Sender), string(message.Kind), message.Text,
		nullString(message.Image), nullString(message.AudioData),
		string(sourcesJSON), string(chartJSON), message.CreatedAt)

	return err
}

const messageColumns = `id, session_id, sender, kind, text, image, audio_data, sources, chart_data, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	message := &domain.Message{}
	var sender, kind string
	var image, audioData, sourcesJSON, chartJSON sql.NullString

	if err := row.Scan(&message.ID, &message.SessionID, &sender, &kind, &message.Text,
		&image, &audioData, &sourcesJSON, &chartJSON, &message.CreatedAt); err != nil {
		return nil, err
	}

	message.Sender = domain.Sender(sender)
	message.Kind = domain.Kind(kind)
	message.Image = image.String
	message.AudioData = audioData.String
	if sourcesJSON.Valid && sourcesJSON.String != "" {
		json.Unmarshal([]byte(sourcesJSON.String), &message.Sources)
	}
	if chartJSON.Valid && chartJSON.String != "" {
		json.Unmarshal([]byte(chartJSON.String), &message.ChartData)
	}
	return message, nil
}

// GetMessage retrieves one message of a session
func (r *SessionRepository) GetMessage(sessionID, id string) (*domain.Message, error) {
	message, err := scanMessage(r.db.QueryRow(`
		SELECT `+messageColumns+`
		FROM messages WHERE id = ? AND session_id = ?
	`, id, sessionID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return message, nil
}

// GetMessages retrieves all messages for a session in append order
func (r *SessionRepository) GetMessages(sessionID string) ([]*domain.Message, error) {
	rows, err := r.db.Query(`
		SELECT `+messageColumns+`
		FROM messages WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// CountMessages returns the number of messages in a session
func (r *SessionRepository) CountMessages(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM messages WHERE session_id = ?`, sessionID).Scan(&count)
	return count, err
}

// AttachAudio caches a synthesized clip on a message. The first clip wins;
// the returned string is the clip now stored on the message.
func (r *SessionRepository) AttachAudio(sessionID, id, audioData string) (string, error) {
	if _, err := r.db.Exec(`
		UPDATE messages SET audio_data = ?
		WHERE id = ? AND session_id = ? AND audio_data IS NULL
	`, audioData, id, sessionID); err != nil {
		return "", err
	}

	var stored sql.NullString
	err := r.db.QueryRow(`SELECT audio_data FROM messages WHERE id = ? AND session_id = ?`, id, sessionID).Scan(&stored)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return stored.String, nil
}

// CountChats returns the total number of user messages (chats)
func (r *SessionRepository) CountChats() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM messages WHERE sender = 'user'`).Scan(&count)
	return count, err
}

// CountSessions returns the number of sessions ever created
func (r *SessionRepository) CountSessions() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
