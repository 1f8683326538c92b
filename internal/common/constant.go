package common

// Table names in the remote store. The users table keeps the name it had in
// the hosted project so existing data stays addressable.
const (
	TableRecords = `"SupaCRUD"`
	TableEvents  = "events"
	TableMarkers = "markers"
)

// AllDaySentinel is the stored time-of-day that marks an all-day event.
const AllDaySentinel = "00:00:00"

// PlaceholderPrefix starts every client-local identifier.
const PlaceholderPrefix = "local-"
