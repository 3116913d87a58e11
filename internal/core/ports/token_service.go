package ports

// TokenClaims is the identity carried by a verified session token.
type TokenClaims struct {
	UserID string
	Email  string
}

// TokenService issues and verifies signed session tokens. Verification is a
// pure function of the shared secret, the token, and the clock; no server-side
// session state is kept.
type TokenService interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (TokenClaims, error)
}
