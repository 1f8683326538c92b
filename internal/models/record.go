package models

import (
	"strings"
	"time"
)

// Record is a managed user. ID and CreatedAt are assigned by the store.
type Record struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Record) Key() string { return r.ID }

func (r Record) WithKey(id string) Record {
	r.ID = id
	return r
}

// HasCoordinates reports whether the location has been normalized.
func (r Record) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// FullName joins first and last name.
func (r Record) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// RecordInput holds the operator-editable fields of a Record.
type RecordInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Location  string
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (in RecordInput) Trimmed() RecordInput {
	return RecordInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Location:  strings.TrimSpace(in.Location),
	}
}

// FromInput builds an unsaved Record from the input.
func FromInput(in RecordInput) Record {
	return Record{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Location:  in.Location,
	}
}
