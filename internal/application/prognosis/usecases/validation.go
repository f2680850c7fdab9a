package usecases

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// alertTimeLayout is the wire format used by the telematics gateway.
const alertTimeLayout = "02.01.2006 15.04.05"

var dtcPattern = regexp.MustCompile(`^[A-Z0-9_-]{1,20}$`)

// locationSanitizer strips characters that are not allowed in stored
// location strings.
var locationSanitizer = strings.NewReplacer(";", "", "'", "", `"`, "", `\`, "")

// AlertRecord is one raw alert as received from the gateway.
// Coordinates arrive as decimal strings, an empty string means absent.
type AlertRecord struct {
	VehicleID string
	ErrorCode string
	DateTime  string
	Latitude  string
	Longitude string
	Location  string
}

// ValidatedAlert is an alert that passed field validation. The error
// code is normalized to upper case and the location is sanitized.
type ValidatedAlert struct {
	VehicleID  string
	ErrorCode  string
	OccurredAt time.Time
	Latitude   *float64
	Longitude  *float64
	Location   string
}

// alertFields mirrors AlertRecord for tag-driven validation.
type alertFields struct {
	VehicleID string   `validate:"required,alphanum,max=20"`
	ErrorCode string   `validate:"required,dtc"`
	Latitude  *float64 `validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `validate:"omitempty,gte=-180,lte=180"`
}

// BatchValidator validates individual alert records. Invalid records
// are meant to be dropped by the caller, not to fail the batch.
type BatchValidator struct {
	validate *validator.Validate
}

func NewBatchValidator() *BatchValidator {
	v := validator.New()

	// Registration only fails for an empty tag, safe to ignore here.
	_ = v.RegisterValidation("dtc", func(fl validator.FieldLevel) bool {
		return dtcPattern.MatchString(fl.Field().String())
	})

	return &BatchValidator{validate: v}
}

// ValidateRecord checks a single alert record and returns its
// normalized form, or an error describing the first failure.
func (bv *BatchValidator) ValidateRecord(rec AlertRecord) (*ValidatedAlert, error) {
	errorCode := strings.ToUpper(strings.TrimSpace(rec.ErrorCode))

	latitude, err := parseCoordinate(rec.Latitude)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", rec.Latitude, err)
	}
	longitude, err := parseCoordinate(rec.Longitude)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", rec.Longitude, err)
	}

	fields := alertFields{
		VehicleID: strings.TrimSpace(rec.VehicleID),
		ErrorCode: errorCode,
		Latitude:  latitude,
		Longitude: longitude,
	}

	if err := bv.validate.Struct(fields); err != nil {
		return nil, fmt.Errorf("invalid alert record: %w", err)
	}

	occurredAt, err := time.Parse(alertTimeLayout, rec.DateTime)
	if err != nil {
		return nil, fmt.Errorf("invalid alert timestamp %q: %w", rec.DateTime, err)
	}

	return &ValidatedAlert{
		VehicleID:  fields.VehicleID,
		ErrorCode:  errorCode,
		OccurredAt: occurredAt,
		Latitude:   latitude,
		Longitude:  longitude,
		Location:   sanitizeLocation(rec.Location),
	}, nil
}

// parseCoordinate converts a wire coordinate string to a float pointer.
// An empty string is an absent coordinate, not an error.
func parseCoordinate(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// sanitizeLocation strips unsafe characters and truncates to the
// stored column size. Truncation is rune-based so a multi-byte
// character is never split.
func sanitizeLocation(location string) string {
	cleaned := strings.TrimSpace(locationSanitizer.Replace(location))
	return truncateRunes(cleaned, 255)
}

// sanitizeSearch removes query metacharacters from a free-text search
// term. Terms shorter than 2 characters after cleaning are discarded
// and long terms are truncated on a rune boundary.
func sanitizeSearch(term string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'', ';', '\\':
			return -1
		}
		return r
	}, term)

	cleaned = strings.TrimSpace(cleaned)
	if utf8.RuneCountInString(cleaned) < 2 {
		return ""
	}
	return truncateRunes(cleaned, 100)
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
