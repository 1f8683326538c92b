// Package services holds the operator-facing use cases for records, calendar
// events and map markers. Each service validates and normalizes input, then
// hands the mutation to an optimistic controller that owns the collection.
package services
