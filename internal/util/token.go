package util

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// Returns scheme and token from the Authorization header.
func ReadAuthorizationHeader(ctx *gin.Context) (string, string, error) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return "", "", errors.New("authorization header is missing")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", "", errors.New("authorization header is malformed")
	}

	return parts[0], parts[1], nil
}

func ReadBearerToken(ctx *gin.Context) (string, error) {
	scheme, token, err := ReadAuthorizationHeader(ctx)
	if err != nil {
		return "", err
	}

	if !strings.EqualFold(scheme, "Bearer") {
		return "", errors.New("authorization scheme must be Bearer")
	}

	return token, nil
}
