package domain

import (
	"context"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

// init registers custom validation functions with the validator instance.
func init() {
	// The alnumstart validator anchors the start of the value only. A name like
	// "CJ!!!" is accepted; the rest of the string is deliberately unconstrained.
	_ = validatorInstance.RegisterValidation("alnumstart", validateAlnumStart)
}

// validateAlnumStart ensures the value begins with an ASCII letter or digit.
func validateAlnumStart(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	first := rune(value[0])
	return first <= unicode.MaxASCII && (unicode.IsLetter(first) || unicode.IsDigit(first))
}

// Message is a single guestbook entry pinned to a geographic point.
// ID and Date are assigned by the store on creation and never change.
type Message struct {
	ID        string    `json:"id,omitempty"`                                            // Record identifier, opaque to clients.
	Name      string    `json:"name" validate:"required,min=1,max=30,alnumstart"`        // Visitor name. Length: 1-30 chars, leading char alphanumeric.
	Message   string    `json:"message" validate:"required,min=5,max=100"`               // Free text. Length: 5-100 chars.
	Latitude  float64   `json:"latitude" validate:"latitude"`                            // Signed degrees, -90 to 90.
	Longitude float64   `json:"longitude" validate:"longitude"`                          // Signed degrees, -180 to 180.
	Date      time.Time `json:"date,omitempty"`                                          // Creation timestamp, set by the store.
}

// Validate runs validation checks on the Message struct using the defined tags.
// This ensures that the domain model is always in a valid state before it is persisted.
func (m *Message) Validate() error {
	return validatorInstance.Struct(m)
}

// Validator returns the shared validator instance, with the custom rules
// registered, for use on request DTOs carrying the same tags.
func Validator() *validator.Validate {
	return validatorInstance
}

// submission holds the two visitor-editable fields for pre-send validation.
// Coordinates are checked separately because the form gates on the
// location-known flag rather than on coordinate values.
type submission struct {
	Name    string `validate:"required,min=1,max=30,alnumstart"`
	Message string `validate:"required,min=5,max=100"`
}

// ValidateSubmission checks a pending name/message pair against the submission
// rules. It is a pure predicate: a nil return means the pair may be sent.
func ValidateSubmission(name, message string) error {
	return validatorInstance.Struct(&submission{Name: name, Message: message})
}

// MessageRepository defines the interface for message storage.
// This allows for dependency injection and easier testing of handlers.
type MessageRepository interface {
	// CreateMessage persists a new message. The store assigns ID and Date and
	// returns the full stored record.
	CreateMessage(ctx context.Context, msg *Message) (*Message, error)
	// ListMessages returns every stored message ordered by creation date
	// ascending. There is no pagination or filtering.
	ListMessages(ctx context.Context) ([]Message, error)
}
