package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskapp/internal/core/domain"
)

// NewUser builds a user with generated data. Callers override fields through
// customData; PasswordHash defaults to bcrypt("12345678") unless given.
func NewUser(customData ...map[string]any) domain.User {
	instance := fab.New(domain.User{})

	overridden := map[string]bool{}

	for _, data := range customData {
		for key := range data {
			overridden[key] = true
		}
	}

	defaults := map[string]any{}

	if !overridden["UUID"] {
		defaults["UUID"] = uuid.New()
	}

	if !overridden["PasswordHash"] {
		hash, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)
		defaults["PasswordHash"] = string(hash)
	}

	if !overridden["Age"] {
		defaults["Age"] = 30
	}

	if !overridden["CreatedAt"] {
		defaults["CreatedAt"] = time.Now().UTC()
	}

	if !overridden["UpdatedAt"] {
		defaults["UpdatedAt"] = time.Now().UTC()
	}

	if !overridden["Avatar"] {
		defaults["Avatar"] = []byte(nil)
	}

	// fabricator's Build only reads the first overrides map, so merge
	// defaults and custom data into one map before calling it.
	merged := defaults

	for _, data := range customData {
		for key, value := range data {
			merged[key] = value
		}
	}

	return instance.Build(merged)
}
