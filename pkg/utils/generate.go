package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING CODE ====================

// GenerateBookingCode creates the human-facing booking reference.
// Format: OR-YYYYMMDD-RANDOM
func GenerateBookingCode() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	datePart := now.Format("20060102")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("OR-%s-%s", datePart, randomPart)
}

// GeneratePaymentReference creates a reference for manually collected
// payments so the ledger stays unique per entry.
func GeneratePaymentReference(method string) string {
	return fmt.Sprintf("manual_%s_%d", method, time.Now().UnixNano())
}
