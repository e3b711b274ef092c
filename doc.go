// Package users implements the user identity and credential lifecycle
// core: credential verification with session token issuance, and the full
// account lifecycle (create, profile/password/login update, soft delete,
// recovery, hard delete) under a two tier authorization model (self vs
// administrator).
//
// The package owns the invariants: login uniqueness is arbitrated by the
// CredentialStore atomically with every write, soft deletes are reversible
// while hard deletes are not, and every operation re-checks the actor's
// capability tier regardless of what an outer transport gate did.
//
// Transport and wiring stay outside: callers adapt the structured errors
// (goliatone/go-errors categories and codes) to their own surface.
package users
