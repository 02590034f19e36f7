package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/padidar/visitor-analytics-go/internal/models"
	"github.com/padidar/visitor-analytics-go/internal/report"
)

// AccountRepository looks up operator accounts for authentication.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByUserName returns the account with the given login name.
func (r *AccountRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	var a models.Account
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, user_name, password_hash,
			COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(tel, ''), user_status
		FROM tbl_accounts WHERE user_name = ?
	`, userName).Scan(&a.ID, &a.UserID, &a.UserName, &a.PasswordHash,
		&a.FirstName, &a.LastName, &a.Tel, &a.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: account %q", report.ErrNoData, userName)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query account: %v", report.ErrStoreUnavailable, err)
	}
	return &a, nil
}
