package utils

import (
	"fmt"
	"lingua/src/config"
	"lingua/src/models"
	"math"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"lingua/src/types"
)

// GenerateToken mints the bearer token the auth middleware expects. Session
// issuance itself lives in the identity service; this exists for tooling and
// tests.
func GenerateToken(user *models.User) (string, error) {
	claims := types.Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// RoundPrice rounds to two decimal places, the convention for every currency
// the marketplace settles in.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseLeadingInt reads the integer prefix of a human-readable duration such
// as "10-15 business days". Returns fallback when the string has none.
func ParseLeadingInt(s string, fallback int) int {
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return fallback
	}
	return n
}

// ParseTimeSlot validates the strict "HH:MM-HH:MM" slot form and returns both
// clock times.
func ParseTimeSlot(slot string) (start, end time.Time, err error) {
	if len(slot) != 11 || slot[5] != '-' {
		return start, end, &ValidationError{Field: "time_slot", Reason: "must match HH:MM-HH:MM"}
	}
	start, err = time.Parse(config.CLOCK_PARSE_FORMAT, slot[:5])
	if err != nil {
		return start, end, &ValidationError{Field: "time_slot", Reason: "must match HH:MM-HH:MM"}
	}
	end, err = time.Parse(config.CLOCK_PARSE_FORMAT, slot[6:])
	if err != nil {
		return start, end, &ValidationError{Field: "time_slot", Reason: "must match HH:MM-HH:MM"}
	}
	if !end.After(start) {
		return start, end, &ValidationError{Field: "time_slot", Reason: "end must be after start"}
	}
	return start, end, nil
}

// SlotKey is the uniqueness key for one tutor's slot on one day.
func SlotKey(tutorID uint, startDate time.Time, slot string) string {
	return fmt.Sprintf("%d|%s|%s", tutorID, startDate.Format(config.DATE_PARSE_FORMAT), slot)
}
