// Package auth provides identity management and bearer-token authorization.
//
// Users register with an email and password (bcrypt-hashed); the OAuth2
// password grant exchanges those credentials for a signed HS256 access
// token. Every issued token is also recorded in the database keyed by its
// jti claim, which is the single source of truth for revocation: a token
// authorizes requests only while its record is active and unexpired.
//
// # Configuration
//
//	AUTH_TOKEN_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_TOKEN_ISSUER=booktracker     # iss claim on issued tokens
//	AUTH_TOKEN_EXPIRY=1h              # Access token lifetime
//	AUTH_BCRYPT_COST=12               # bcrypt cost factor
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	issuer := auth.NewIssuer(secret, cfg.Auth.TokenIssuer, cfg.Auth.TokenExpiry)
//	authService := auth.NewService(userRepo, tokenRepo, issuer, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService)
//	protected.Use(authMiddleware.RequireToken())
//
// Extract user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
