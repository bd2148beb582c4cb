// Package store provides types.DocumentStore implementations.
//
// Two backends are available: an afero-based store (the default, with an
// OS variant rooted at the vault and an in-memory variant for tests) and a
// go-billy based store. Both address documents by vault-relative,
// slash-separated paths and skip hidden directories when listing.
package store
