package dto

// ReminderRequest schedules a fixed-term maturity reminder on the user's
// primary calendar. ExpiryDate is YYYY-MM-DD.
type ReminderRequest struct {
	BankName   string  `json:"bankName"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	ExpiryDate string  `json:"expiryDate"`
}

// ChatReport is the structured card posted to a Google Chat space.
type ChatReport struct {
	SpaceName string         `json:"spaceName"`
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle"`
	Details   []ReportDetail `json:"details"`
}

type ReportDetail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
