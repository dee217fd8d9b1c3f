package domain

import "time"

// View is the screen the farmer is on
type View string

const (
	ViewDashboard View = "dashboard"
	ViewChat      View = "chat"
	ViewSettings  View = "settings"
	ViewProfile   View = "profile"
)

// Valid reports whether v is a known view
func (v View) Valid() bool {
	switch v {
	case ViewDashboard, ViewChat, ViewSettings, ViewProfile:
		return true
	}
	return false
}

// User is the identity entered at login
type User struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// AppState is the per-session application state
type AppState struct {
	SessionID        string    `json:"session_id"`
	LoggedIn         bool      `json:"logged_in"`
	LanguageSelected bool      `json:"language_selected"`
	Language         string    `json:"language"`
	User             *User     `json:"user,omitempty"`
	View             View      `json:"view"`
	Muted            bool      `json:"muted"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultAppState returns the state of a fresh session
func DefaultAppState(sessionID string) *AppState {
	now := time.Now()
	return &AppState{
		SessionID: sessionID,
		Language:  "en",
		View:      ViewDashboard,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// LoginRequest is the login form
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// LanguageRequest selects the conversation language
type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// ViewRequest switches the current view
type ViewRequest struct {
	View View `json:"view" binding:"required"`
}

// MuteRequest toggles automatic reading of replies
type MuteRequest struct {
	Muted bool `json:"muted"`
}

// SessionResponse is the state returned to the client
type SessionResponse struct {
	State        *AppState     `json:"state"`
	Notification *Notification `json:"notification,omitempty"`
}
