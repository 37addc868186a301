package util

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}

// StrictParams decodes the request body rejecting any key outside T. Update
// endpoints use it so a disallowed field fails the whole request instead of
// being silently dropped.
func StrictParams[T any](c *gin.Context) (T, error) {
	var params T

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&params); err != nil {
		return params, err
	}

	return params, nil
}
