package models

// Account represents a bank account transactions are imported against.
type Account struct {
	AccountID   string `db:"account_id"`
	Name        string `db:"name"`
	Institution string `db:"institution"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
