package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

type CreateAccountRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, "lastName is required")
	}

	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, "email is not a valid address")
	}

	if dob, err := r.ParsedDateOfBirth(); err != nil {
		errs = append(errs, "dateOfBirth must be in YYYY-MM-DD format")
	} else if dob.After(time.Now()) {
		errs = append(errs, "dateOfBirth cannot be in the future")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r CreateAccountRequest) ParsedDateOfBirth() (time.Time, error) {
	return time.Parse(dateOnlyLayout, strings.TrimSpace(r.DateOfBirth))
}

type AccountResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	CreatedAt   string `json:"createdAt"`
}
