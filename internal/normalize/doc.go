// Package normalize turns free-text operator input into storage-ready
// fields: place names into canonical names with coordinates, and ISO
// instants into the day / time-of-day pair the events table stores.
package normalize
