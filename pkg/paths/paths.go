package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/varsub/pkg/errors"
)

// Environment variable names
const (
	// EnvVault is the primary environment variable for the vault location
	EnvVault = "VARSUB_VAULT"

	// EnvConfigDir overrides the XDG config directory for varsub
	EnvConfigDir = "VARSUB_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for varsub
	EnvStateDir = "VARSUB_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the XDG directories and the vault
const (
	AppDirName      = "varsub"
	UserConfigFile  = "config.toml"
	VaultConfigFile = ".varsub.toml"
	EnvFile         = ".env"
	LogFileName     = "varsub.log"
)

// Paths provides centralized path management for varsub
type Paths interface {
	VaultRoot() string
	UsedFallback() bool
	ConfigDir() string
	StateDir() string
	UserConfigPath() string
	VaultConfigPath() string
	EnvFilePath() string
	LogFilePath() string
}

type paths struct {
	vaultRoot    string
	configDir    string
	stateDir     string
	usedFallback bool
}

// New creates a new Paths instance with the given vault root.
// If vaultRoot is empty, it will be determined from the environment,
// the enclosing git repository, or the working directory.
func New(vaultRoot string) (Paths, error) {
	p := &paths{}

	if vaultRoot == "" {
		root, usedFallback, err := findVaultRoot()
		if err != nil {
			return nil, err
		}
		p.vaultRoot = root
		p.usedFallback = usedFallback
	} else {
		p.vaultRoot = ExpandHome(vaultRoot)
	}

	absRoot, err := filepath.Abs(p.vaultRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for vault root")
	}
	p.vaultRoot = absRoot

	p.setupXDGDirs()
	return p, nil
}

func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.configDir = ExpandHome(configDir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.stateDir = ExpandHome(stateDir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}
}

func (p *paths) VaultRoot() string       { return p.vaultRoot }
func (p *paths) UsedFallback() bool      { return p.usedFallback }
func (p *paths) ConfigDir() string       { return p.configDir }
func (p *paths) StateDir() string        { return p.stateDir }
func (p *paths) UserConfigPath() string  { return filepath.Join(p.configDir, UserConfigFile) }
func (p *paths) VaultConfigPath() string { return filepath.Join(p.vaultRoot, VaultConfigFile) }
func (p *paths) EnvFilePath() string     { return filepath.Join(p.vaultRoot, EnvFile) }
func (p *paths) LogFilePath() string     { return filepath.Join(p.stateDir, LogFileName) }

// DefaultLogFilePath returns the log file location without resolving a vault.
// The logger is set up before any vault is known.
func DefaultLogFilePath() string {
	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		return filepath.Join(ExpandHome(stateDir), LogFileName)
	}
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}

// findVaultRoot determines the vault root using the following priority:
// 1. VARSUB_VAULT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findVaultRoot() (string, bool, error) {
	if root := os.Getenv(EnvVault); root != "" {
		return ExpandHome(root), false, nil
	}

	if gitRoot, err := findGitRoot(); err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrInternal, "failed to get current directory")
	}
	return cwd, true, nil
}

func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user forms are left alone
	return path
}
