package service

// TokenService defines the interface for issuing and validating signed
// session tokens. Tokens are bound to the account email and carry a fixed
// expiry; a single process-wide symmetric key signs them.
type TokenService interface {
	// Generate issues a signed token for the given email.
	Generate(email string) (string, error)

	// Validate reports whether the token is well-formed, correctly
	// signed and unexpired. It never returns an error: any malformed,
	// expired or tampered token is uniformly invalid.
	Validate(token string) bool

	// ExtractSubject returns the email a valid token is bound to.
	// It fails with domain ErrTokenInvalid for any invalid token.
	ExtractSubject(token string) (string, error)
}
