// Package auth handles optional user accounts: credential checks and
// the bearer tokens that let a signed-in user own sessions.
package auth

import (
	"context"

	"github.com/mmynk/moneymate/internal/models"
)

// Authenticator verifies user credentials.
// Sessions never require an account, so an Authenticator is only consulted
// by the account procedures and never on the split path.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential before anything is stored.
	ValidateCredential(credential string) error
}
