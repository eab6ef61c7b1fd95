package models

// BankEmail is one message surfaced by the bank inbox search.
type BankEmail struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
	Subject  string `json:"subject"`
	From     string `json:"from"`
	Date     string `json:"date"`
	Snippet  string `json:"snippet"`
	Body     string `json:"body"`
}

// ChatSpace is a Google Chat space the report card can be posted to.
type ChatSpace struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}
