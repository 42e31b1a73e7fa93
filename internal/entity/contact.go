package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// ContactKind tags which variant of Contact is populated.
type ContactKind string

const (
	ContactAddress ContactKind = "address"
	ContactEmail   ContactKind = "email"
	ContactPhone   ContactKind = "phone"
)

// Contact is a method through which someone can be reached: a Location
// (physical address), an email address, or a phone number.
//
// Export controls whether the contact is printed when a job is exported.
type Contact struct {
	Kind     ContactKind `yaml:"kind" json:"kind"`
	Location uuid.UUID   `yaml:"location,omitempty" json:"location,omitzero"`
	Email    string      `yaml:"email,omitempty" json:"email,omitempty"`
	Phone    string      `yaml:"phone,omitempty" json:"phone,omitempty"`
	Export   bool        `yaml:"export" json:"export"`
}

// Address returns a Contact pointing at a Location.
func Address(location uuid.UUID, export bool) Contact {
	return Contact{Kind: ContactAddress, Location: location, Export: export}
}

// Email returns an email Contact.
func Email(email string, export bool) Contact {
	return Contact{Kind: ContactEmail, Email: Normalize(email), Export: export}
}

// Phone returns a phone Contact.
func Phone(phone string, export bool) Contact {
	return Contact{Kind: ContactPhone, Phone: Normalize(phone), Export: export}
}

// Validate checks that exactly the field for Kind is populated.
func (c Contact) Validate() error {
	switch c.Kind {
	case ContactAddress:
		if c.Location == uuid.Nil {
			return fmt.Errorf("address contact has no location")
		}
	case ContactEmail:
		if c.Email == "" {
			return fmt.Errorf("email contact is empty")
		}
	case ContactPhone:
		if c.Phone == "" {
			return fmt.Errorf("phone contact is empty")
		}
	default:
		return fmt.Errorf("unknown contact kind %q", c.Kind)
	}
	return nil
}
