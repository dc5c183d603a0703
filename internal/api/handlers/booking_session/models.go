package booking_session

// StartSessionRequest HTTP request model
type StartSessionRequest struct {
	FacilityID int64  `json:"facilityId"`
	Date       string `json:"date"` // "2025-10-15"
}

// SelectCourtRequest HTTP request model
type SelectCourtRequest struct {
	CourtID int64 `json:"courtId"`
}

// ChangeDateRequest HTTP request model
type ChangeDateRequest struct {
	Date string `json:"date"` // "2025-10-15"
}

// ClickRequest HTTP request model
type ClickRequest struct {
	Slot string `json:"slot"` // "10:30"
}
