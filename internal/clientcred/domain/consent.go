package domain

// Consent holds the role grants for one credential version. It is owned
// by its Client row and deleted together with it.
type Consent struct {
	ClientRecordID string // Client.ID
	ClientID       string // versioned client identifier
	Authorities    []string
}
