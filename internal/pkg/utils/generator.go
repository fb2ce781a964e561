package utils

import (
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.New().String()
}

func GenerateRunID() string {
	return "run-" + uuid.New().String()
}
