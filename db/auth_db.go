package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

// CreateUser stores a new account. Without an explicit role the very first
// account becomes admin so someone can refresh the sheet cache.
func (db *DB) CreateUser(req models.UserRequest) (*models.User, error) {
	utils.LogDB("Creating user: %s", req.Username)
	start := time.Now()

	if err := utils.ValidateUserRequest(&req); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		return nil, err
	}

	role := req.Role
	if role == "" {
		count, err := db.CountUsers()
		if err != nil {
			return nil, err
		}
		role = models.RoleUser
		if count == 0 {
			role = models.RoleAdmin
		}
	}

	result, err := db.Exec(`
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
	`, strings.TrimSpace(req.Username), hashedPassword, role)

	if err != nil {
		duration := time.Since(start)
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			utils.LogDB("CreateUser: username %s taken (%v)", req.Username, duration)
			return nil, ErrUserExists
		}
		utils.LogError("CreateUser failed: %v (%v)", err, duration)
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		utils.LogError("Failed to get LastInsertId for user: %v", err)
		return nil, err
	}

	utils.LogDB("User created with ID %d (%s) in %v", id, role, time.Since(start))
	return db.GetUserByID(int(id))
}

func (db *DB) CountUsers() (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		utils.LogError("CountUsers failed: %v", err)
		return 0, err
	}
	return count, nil
}

func (db *DB) GetUserByID(id int) (*models.User, error) {
	utils.LogDB("Getting user by ID: %d", id)

	user, err := scanUser(db.QueryRow(`
		SELECT id, username, role, is_active, created_at, updated_at
		FROM users WHERE id = ?
	`, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.LogDB("User ID %d not found", id)
		} else {
			utils.LogError("GetUserByID(%d) failed: %v", id, err)
		}
		return nil, err
	}
	return user, nil
}

func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	utils.LogDB("Getting user by username: %s", username)

	user, err := scanUser(db.QueryRow(`
		SELECT id, username, role, is_active, created_at, updated_at
		FROM users WHERE username = ?
	`, username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.LogDB("User %s not found", username)
		} else {
			utils.LogError("GetUserByUsername(%s) failed: %v", username, err)
		}
		return nil, err
	}
	return user, nil
}

func (db *DB) AuthenticateUser(username, password string) (*models.User, error) {
	utils.LogDB("Authenticating user: %s", username)

	var user models.User
	var passwordHash string

	err := db.QueryRow(`
		SELECT id, username, role, is_active, created_at, updated_at, password_hash
		FROM users WHERE username = ? AND is_active = 1
	`, username).Scan(&user.ID, &user.Username, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt, &passwordHash)

	if err != nil {
		if err == sql.ErrNoRows {
			utils.LogDB("Authentication failed: user %s not found or inactive", username)
			return nil, ErrInvalidCredentials
		}
		utils.LogError("AuthenticateUser(%s) failed: %v", username, err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !utils.CheckPassword(passwordHash, password) {
		utils.LogDB("Authentication failed: invalid password for user %s", username)
		return nil, ErrInvalidCredentials
	}

	utils.LogDB("User %s authenticated successfully", username)
	return &user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
