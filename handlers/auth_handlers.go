package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/adamspd/StudyNotes/auth"
	"github.com/adamspd/StudyNotes/db"
	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

type AuthHandlers struct {
	db           *db.DB
	sessionStore *auth.SessionStore
}

func NewAuthHandlers(database *db.DB, sessionStore *auth.SessionStore) *AuthHandlers {
	return &AuthHandlers{
		db:           database,
		sessionStore: sessionStore,
	}
}

func (ah *AuthHandlers) HandleAuth(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/auth/")

	switch {
	case path == "register" && r.Method == http.MethodPost:
		ah.register(w, r)
	case path == "login" && r.Method == http.MethodPost:
		ah.login(w, r)
	case path == "logout" && r.Method == http.MethodPost:
		ah.logout(w, r)
	case path == "logout-all" && r.Method == http.MethodPost:
		ah.logoutAll(w, r)
	case path == "me" && r.Method == http.MethodGet:
		ah.getCurrentUserInfo(w, r)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (ah *AuthHandlers) register(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("POST /auth/register")

	var req models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.LogHTTP("Invalid JSON in register request: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Roles are never self-assigned.
	req.Role = ""
	if err := utils.ValidateUserRequest(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ah.db.CreateUser(req)
	if err != nil {
		if errors.Is(err, db.ErrUserExists) {
			http.Error(w, "Username already exists", http.StatusConflict)
		} else {
			utils.LogError("Failed to create user: %v", err)
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
		}
		return
	}

	session, err := ah.sessionStore.CreateSession(user)
	if err != nil {
		utils.LogError("Failed to create session: %v", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, session)

	utils.LogHTTP("User registered successfully: %s (ID: %d)", user.Username, user.ID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":    user,
		"session": session,
		"message": "Registration successful",
	})
}

func (ah *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("POST /auth/login")

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.LogHTTP("Invalid JSON in login request: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := ah.db.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, db.ErrInvalidCredentials) {
			utils.LogHTTP("Login failed for user: %s", req.Username)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		utils.LogError("Login error for user %s: %v", req.Username, err)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	session, err := ah.sessionStore.CreateSession(user)
	if err != nil {
		utils.LogError("Failed to create session: %v", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, session)

	utils.LogHTTP("User logged in successfully: %s (ID: %d)", user.Username, user.ID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":    user,
		"session": session,
		"message": "Login successful",
	})
}

func (ah *AuthHandlers) logout(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("POST /auth/logout")

	sessionID := extractSessionFromRequest(r)
	if sessionID != "" {
		ah.sessionStore.DeleteSession(sessionID)
		if len(sessionID) > 8 {
			utils.LogHTTP("Session %s destroyed", sessionID[:8]+"...")
		}
	}

	clearSessionCookie(w)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

// logoutAll ends every session of the caller, on all devices.
func (ah *AuthHandlers) logoutAll(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("POST /auth/logout-all")

	session, exists := ah.sessionStore.GetSession(extractSessionFromRequest(r))
	if !exists {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	ah.sessionStore.DeleteUserSessions(session.UserID)
	utils.LogHTTP("All sessions destroyed for user: %s (ID: %d)", session.Username, session.UserID)

	clearSessionCookie(w)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged out of all sessions",
	})
}

func (ah *AuthHandlers) getCurrentUserInfo(w http.ResponseWriter, r *http.Request) {
	// This endpoint handles its own auth
	sessionID := extractSessionFromRequest(r)
	if sessionID == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	session, exists := ah.sessionStore.GetSession(sessionID)
	if !exists {
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
		return
	}

	user, err := ah.db.GetUserByID(session.UserID)
	if err != nil {
		utils.LogError("Failed to get current user info: %v", err)
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":    user,
		"session": session,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// setSessionCookie lets the dashboard iframe carry the session.
func setSessionCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
