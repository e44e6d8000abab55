// Package auth provides stateless token based authentication (JWT issuance
// and validation, Bun backed user repositories, HTTP endpoints) plus the
// password lifecycle commands a product API needs.
//
// Session tokens:
//   - TokenService signs HS256 JWTs carrying the principal's email as subject
//     together with the user id and role. Expiration is relative to issuance
//     and configured in hours.
//   - Auther drives the full validation pipeline: signature and expiry checks,
//     principal lookup, and the credential freshness check against the user's
//     valid since watermark. Any failure collapses into a single invalid
//     token error so callers never learn why a token was rejected.
//
// Request filter:
//   - middleware/authware resolves every request to an authentication Outcome
//     (authenticated with an identity, or unauthenticated) and always lets the
//     request continue. Protected handlers read the outcome or the enriched
//     context and decide for themselves.
//
// Password lifecycle:
//   - RegisterUserHandler validates and creates accounts, hashing passwords
//     with bcrypt and treating the store's unique email constraint as the
//     final arbiter on duplicates.
//   - UpdatePasswordHandler re-verifies the current password before swapping
//     in the new hash; the hash and the valid since watermark move in a single
//     statement so previously issued tokens die with the old password.
package auth
