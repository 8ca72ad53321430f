// Package contact implements an in-memory contact store with field validation.
package contact

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrInvalidContactField indicates a mandatory contact field was absent.
var ErrInvalidContactField = errors.New("contact: invalid contact field")

// FieldError reports which contact field failed validation.
// It unwraps to ErrInvalidContactField.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s cannot be empty", ErrInvalidContactField, e.Field)
}

func (e *FieldError) Unwrap() error { return ErrInvalidContactField }

// Contact is a person's name and phone number.
// Values are copied in and out of a Manager, so stored entries never change.
type Contact struct {
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	PhoneNumber string `yaml:"phone_number"`
}

// input mirrors Contact with the validation rules applied on insertion.
// PhoneNumber has no format rule: any present value is accepted.
type input struct {
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	PhoneNumber string `validate:"required"`
}

var validate = validator.New()

// Manager holds contacts in insertion order. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	contacts []Contact
	logger   *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used to report added and rejected contacts.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		contacts: []Contact{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddContact validates the three fields and appends a new Contact.
// An empty field yields a *FieldError wrapping ErrInvalidContactField and
// leaves the store unchanged. Duplicates are stored as distinct entries.
func (m *Manager) AddContact(firstName, lastName, phoneNumber string) error {
	in := input{FirstName: firstName, LastName: lastName, PhoneNumber: phoneNumber}
	if err := check(in); err != nil {
		m.logger.Warn("contact rejected", zap.Error(err))
		return err
	}

	m.mu.Lock()
	m.contacts = append(m.contacts, Contact(in))
	n := len(m.contacts)
	m.mu.Unlock()

	m.logger.Debug("contact added",
		zap.String("first_name", firstName),
		zap.String("last_name", lastName),
		zap.Int("total", n),
	)
	return nil
}

// AllContacts returns a copy of every stored contact in insertion order.
// An empty store returns an empty, non-nil slice.
func (m *Manager) AllContacts() []Contact {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Contact, len(m.contacts))
	copy(out, m.contacts)
	return out
}

// Len returns the number of stored contacts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.contacts)
}

// check runs the struct tag rules and converts the first failure to a FieldError.
func check(in input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: verrs[0].Field()}
	}
	return fmt.Errorf("contact: validating: %w", err)
}
