package approval

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ValidationError describes a malformed or inconsistent request field. It
// is returned before any store mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// durationTolerance is how far duration_hours may deviate from the
// start/end difference before the request is rejected. Covers suggestions
// that round to the quarter hour.
const durationTolerance = 0.26

// ValidateEntryRequest checks every field of an approval request. The
// first problem found is returned.
func ValidateEntryRequest(req EntryRequest) error {
	if err := validateUser(req.User); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}

	start, err := time.Parse("15:04:05", req.Start)
	if err != nil {
		return &ValidationError{Field: "start", Reason: "must be HH:MM:SS"}
	}
	end, err := time.Parse("15:04:05", req.End)
	if err != nil {
		return &ValidationError{Field: "end", Reason: "must be HH:MM:SS"}
	}
	if !end.After(start) {
		return &ValidationError{Field: "end", Reason: "must be after start"}
	}

	if req.DurationHours <= 0 {
		return &ValidationError{Field: "duration_hours", Reason: "must be positive"}
	}
	span := end.Sub(start).Hours()
	if math.Abs(span-req.DurationHours) > durationTolerance {
		return &ValidationError{
			Field:  "duration_hours",
			Reason: fmt.Sprintf("%.2f does not match start/end span of %.2f hours", req.DurationHours, span),
		}
	}

	if strings.TrimSpace(req.Task) == "" {
		return &ValidationError{Field: "task", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.Project) == "" {
		return &ValidationError{Field: "project", Reason: "must not be empty"}
	}
	return nil
}

// ValidateRejectionRequest checks every field of a rejection request.
func ValidateRejectionRequest(req RejectionRequest) error {
	if err := validateUser(req.User); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(req.Task) == "" {
		return &ValidationError{Field: "task", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.Reason) == "" {
		return &ValidationError{Field: "reason", Reason: "must not be empty"}
	}
	return nil
}

func validateUser(user string) error {
	at := strings.Index(user, "@")
	if at < 1 || at == len(user)-1 || strings.ContainsAny(user, " \t") {
		return &ValidationError{Field: "user", Reason: "must be an email address"}
	}
	return nil
}
