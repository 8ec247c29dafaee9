package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/adamspd/StudyNotes/models"
)

// Environment utilities
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		LogWarn("Ignoring non-numeric %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// Validation utilities
func ValidateUserRequest(req *models.UserRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("username is required")
	}

	if strings.TrimSpace(req.Password) == "" {
		return fmt.Errorf("password is required")
	}

	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	if req.Role != "" && !Contains(models.ValidRoles, req.Role) {
		return fmt.Errorf("invalid role: %s", req.Role)
	}

	return nil
}

// ValidateFrequency accepts the thresholds offered by the dashboard.
func ValidateFrequency(min int) error {
	for _, option := range models.FrequencyOptions {
		if option.Min == min {
			return nil
		}
	}
	return fmt.Errorf("min_frequency must be one of 0, 3, 5")
}
