package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"taskapp/internal/core/domain"
)

func NewTask(customData ...map[string]any) domain.Task {
	instance := fab.New(domain.Task{})

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

	if !overridden["Completed"] {
		defaults["Completed"] = false
	}

	if !overridden["CreatedAt"] {
		defaults["CreatedAt"] = time.Now().UTC()
	}

	if !overridden["UpdatedAt"] {
		defaults["UpdatedAt"] = time.Now().UTC()
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
