package identity

import "context"

// Identity is the directory's view of an account: a display name and an
// email address, either of which may be absent.
type Identity struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// DisplayName returns the name to address the account holder by, falling
// back to "there" when the directory has no name on file.
func (i Identity) DisplayName() string {
	if i.Name == "" {
		return "there"
	}
	return i.Name
}

// HasEmail reports whether the account has a deliverable address.
func (i Identity) HasEmail() bool { return i.Email != "" }

// Directory looks up account identities in the external user directory.
type Directory interface {
	Lookup(ctx context.Context, accountID string) (Identity, error)
}
