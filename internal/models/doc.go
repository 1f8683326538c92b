// Package models defines the records, calendar events and map markers that
// the client mirrors from the remote store.
//
// Every entity implements Key and WithKey so the optimistic controller can
// swap placeholder identifiers for server-assigned ones without knowing the
// concrete type.
package models
