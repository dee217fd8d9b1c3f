package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/agribot/internal/domain"
)

// ConsultationRepository handles consultation persistence
type ConsultationRepository struct {
	db *DB
}

// NewConsultationRepository creates a new consultation repository
func NewConsultationRepository(db *DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

// Create creates a new consultation
func (r *ConsultationRepository) Create(c *domain.Consultation) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO consultations (id, session_id, specialist_id, specialist_name, type, status, problem, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.SessionID, c.SpecialistID, c.SpecialistName,
		string(c.Type), string(c.Status), c.Problem, c.CreatedAt)

	return err
}

const consultationColumns = `id, session_id, specialist_id, specialist_name, type, status, problem, created_at`

func scanConsultation(row rowScanner) (*domain.Consultation, error) {
	c := &domain.Consultation{}
	var kind, status string
	if err := row.Scan(&c.ID, &c.SessionID, &c.SpecialistID, &c.SpecialistName,
		&kind, &status, &c.Problem, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Type = domain.RequestKind(kind)
	c.Status = domain.ConsultationStatus(status)
	return c, nil
}

// Get retrieves a consultation by ID
func (r *ConsultationRepository) Get(id string) (*domain.Consultation, error) {
	c, err := scanConsultation(r.db.QueryRow(`
		SELECT `+consultationColumns+`
		FROM consultations WHERE id = ?
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListBySession retrieves a session's consultations, newest first
func (r *ConsultationRepository) ListBySession(sessionID string) ([]*domain.Consultation, error) {
	rows, err := r.db.Query(`
		SELECT `+consultationColumns+`
		FROM consultations WHERE session_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consultations []*domain.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		consultations = append(consultations, c)
	}

	return consultations, rows.Err()
}

// UpdateStatus moves a consultation from one status to another. It
// reports false when the consultation was not in the expected status.
func (r *ConsultationRepository) UpdateStatus(id string, from, to domain.ConsultationStatus) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE consultations SET status = ?
		WHERE id = ? AND status = ?
	`, string(to), id, string(from))

	if err != nil {
		return false, err
	}

	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// DeleteBySession forgets a session's consultations
func (r *ConsultationRepository) DeleteBySession(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM consultations WHERE session_id = ?`, sessionID)
	return err
}

// CountByStatus returns the number of consultations in each status
func (r *ConsultationRepository) CountByStatus() (map[domain.ConsultationStatus]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM consultations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ConsultationStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[domain.ConsultationStatus(status)] = n
	}
	return counts, rows.Err()
}
