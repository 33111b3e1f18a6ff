package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOccupiedKey(t *testing.T) {
	doctorID := uuid.MustParse("6f1a2b3c-4d5e-4f60-8899-aabbccddeeff")
	assert.Equal(t, "occupied:6f1a2b3c-4d5e-4f60-8899-aabbccddeeff", occupiedKey(doctorID))
}

func TestOccupiedField(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-10 09:00", occupiedField(date, "09:00"))
	// Legacy values are normalized so mirror fields always match canonical reads
	assert.Equal(t, "2025-03-10 09:10", occupiedField(date, "9:10 AM"))
	assert.Equal(t, "2025-03-10 morning", occupiedField(date, "Morning"))
}
