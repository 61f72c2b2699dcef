// Package domain defines core data models and interfaces shared across forgeauth.
// It contains plain types (identities, signatures, session records, the error
// taxonomy) and contracts (wallet providers, stores) only.
package domain
