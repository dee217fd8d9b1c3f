package domain

import "time"

// RequestKind is how the farmer wants to reach the specialist
type RequestKind string

const (
	RequestChat     RequestKind = "Chat"
	RequestCall     RequestKind = "Call"
	RequestCallback RequestKind = "Callback"
)

// Valid reports whether k is one of the known request kinds
func (k RequestKind) Valid() bool {
	switch k {
	case RequestChat, RequestCall, RequestCallback:
		return true
	}
	return false
}

// ConsultationStatus is the lifecycle state of a consultation
type ConsultationStatus string

const (
	StatusPending   ConsultationStatus = "Pending"
	StatusAccepted  ConsultationStatus = "Accepted"
	StatusCompleted ConsultationStatus = "Completed"
)

// Consultation is a request to talk to a human expert
type Consultation struct {
	ID             string             `json:"id"`
	SessionID      string             `json:"session_id"`
	SpecialistID   string             `json:"specialist_id"`
	SpecialistName string             `json:"specialist_name"`
	Type           RequestKind        `json:"type"`
	Status         ConsultationStatus `json:"status"`
	Problem        string             `json:"problem"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SpecialistField is the expertise area of a specialist
type SpecialistField string

const (
	FieldCrop       SpecialistField = "Crop"
	FieldPest       SpecialistField = "Pest"
	FieldVeterinary SpecialistField = "Veterinary"
	FieldSoil       SpecialistField = "Soil"
	FieldGeneral    SpecialistField = "General"
)

// Specialist is an agri-expert available for consultation
type Specialist struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Field      SpecialistField `json:"field"`
	Experience string          `json:"experience"`
	Languages  []string        `json:"languages"`
	Online     bool            `json:"online"`
	Image      string          `json:"image"`
}

// SubmitConsultationRequest is the request to contact a specialist
type SubmitConsultationRequest struct {
	SpecialistID string      `json:"specialist_id" binding:"required"`
	Type         RequestKind `json:"type" binding:"required"`
	Problem      string      `json:"problem" binding:"required"`
}

// Notification is a one-shot message surfaced to the farmer
type Notification struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
