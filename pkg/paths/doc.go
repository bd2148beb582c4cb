// Package paths provides centralized path handling for varsub.
//
// It resolves the vault root (the directory whose files are the document
// store) and the XDG locations varsub uses for its own files:
//
//   - Config: $XDG_CONFIG_HOME/varsub/config.toml (user configuration)
//   - State: $XDG_STATE_HOME/varsub/varsub.log (log file)
//
// # Environment Variables
//
//   - VARSUB_VAULT: vault root (default: git root of cwd, else cwd)
//   - VARSUB_CONFIG_DIR: override the XDG config directory
//   - VARSUB_STATE_DIR: override the XDG state directory
//
// Vault-relative files (the vault config .varsub.toml and .env) are also
// resolved here so every caller agrees on their location.
package paths
