package domain

// Account represents a bank account transactions are imported into.
// Obligations may carry a linked account hint used during matching.
type Account struct {
	AccountID   string `json:"accountID"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
