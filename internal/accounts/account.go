package accounts

// Account is the record kept for platforms without a dedicated account type.
type Account struct {
	ID        string `json:"Id"`
	Name      string `json:"Name"`
	LastLogin string `json:"LastLogin,omitempty"`
	ImagePath string `json:"ImagePath,omitempty"`
}

// RecordID returns the platform account identifier.
func (account Account) RecordID() string {
	return account.ID
}
