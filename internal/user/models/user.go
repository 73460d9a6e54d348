package models

import (
	"regexp"
	"strings"

	dErrors "padron/pkg/domain-errors"
)

// phonePattern accepts an optional leading + followed by 7 to 15 decimal
// digits and nothing else. No trimming or locale-aware parsing; validation
// is purely structural.
var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

// User is the canonical persisted shape of a registered person.
//
// Invariants:
//   - Name and Address are non-empty
//   - Phone matches phonePattern
//   - MunicipalityID is positive
//   - ID is assigned exclusively by the store; zero before creation
//
// A User is only constructed from a request that passed Validate, so an
// invalid entity never exists in memory.
type User struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	MunicipalityID int    `json:"municipality_id"`
}

// RegisterUserRequest is the transport-facing input for Register and Update.
// CountryID and DepartmentID arrive for client-side context only; the entity
// persists the municipality link alone.
type RegisterUserRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	CountryID      int    `json:"country_id"`
	DepartmentID   int    `json:"department_id"`
	MunicipalityID int    `json:"municipality_id"`
}

// Validate applies the registration rules in order, first failure wins.
// Messages are caller-facing and returned verbatim by the boundary.
func (r RegisterUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Name is required.")
	}
	if strings.TrimSpace(r.Address) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Address is required.")
	}
	if r.MunicipalityID <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "Valid Municipality is required.")
	}
	if !phonePattern.MatchString(r.Phone) {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid phone number format.")
	}
	return nil
}

// ToUser builds the entity for a request that passed Validate. The id is
// zero; the store assigns it on create.
func (r RegisterUserRequest) ToUser() *User {
	return &User{
		Name:           r.Name,
		Phone:          r.Phone,
		Address:        r.Address,
		MunicipalityID: r.MunicipalityID,
	}
}

// UserRecord is the display-oriented read model: entity fields plus the
// denormalized geographic names resolved by the persistence adapter. Both
// the list and single-item read paths return the populated projection.
type UserRecord struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	MunicipalityName string `json:"municipality_name"`
	DepartmentName   string `json:"department_name"`
	CountryName      string `json:"country_name"`
}
