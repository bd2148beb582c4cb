package varsub

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/arthur-debert/varsub/internal/version"
	"github.com/arthur-debert/varsub/pkg/config"
	"github.com/arthur-debert/varsub/pkg/engine"
	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/logging"
	"github.com/arthur-debert/varsub/pkg/notify"
	"github.com/arthur-debert/varsub/pkg/paths"
	"github.com/arthur-debert/varsub/pkg/store"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/arthur-debert/varsub/pkg/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	verbosity    int
	vault        string
	dryRun       bool
	variableFile string
	backupFolder string
	backup       bool
	noBackup     bool
	debugPrint   bool
}

// runtime is everything a command needs once flags are parsed
type runtime struct {
	paths    paths.Paths
	config   *config.Config
	store    types.DocumentStore
	notifier types.Notifier
	dryRun   bool
}

func (r *runtime) engine() *engine.Engine {
	return engine.New(r.store, r.notifier, engine.OptionsFromConfig(r.config, r.dryRun))
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "varsub",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&flags.vault, "vault", "", MsgFlagVault)
	pf.BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&flags.variableFile, "variable-file", "", MsgFlagVariableFile)
	pf.StringVar(&flags.backupFolder, "backup-folder", "", MsgFlagBackupFolder)
	pf.BoolVar(&flags.backup, "backup", false, MsgFlagBackup)
	pf.BoolVar(&flags.noBackup, "no-backup", false, MsgFlagNoBackup)
	pf.BoolVar(&flags.debugPrint, "debug-print", false, MsgFlagDebugPrint)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "CONFIGURATION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newApplyCmd(flags))
	rootCmd.AddCommand(newAllCmd(flags))
	rootCmd.AddCommand(newWatchCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newGenConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// overrides turns explicitly set flags into config keys
func (f *globalFlags) overrides(cmd *cobra.Command) (map[string]interface{}, error) {
	pf := cmd.Root().PersistentFlags()
	out := map[string]interface{}{}

	if pf.Changed("variable-file") {
		out["variable_file"] = filepath.ToSlash(f.variableFile)
	}
	if pf.Changed("backup-folder") {
		out["backup_folder"] = filepath.ToSlash(f.backupFolder)
	}
	if pf.Changed("backup") && pf.Changed("no-backup") {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrBackupFlags)
	}
	if pf.Changed("backup") {
		out["backup_enable"] = f.backup
	}
	if pf.Changed("no-backup") {
		out["backup_enable"] = !f.noBackup
	}
	if pf.Changed("debug-print") {
		out["debug_print"] = f.debugPrint
	}
	return out, nil
}

// initPaths resolves the vault and shows a warning if using fallback
func initPaths(cmd *cobra.Command, f *globalFlags) (paths.Paths, error) {
	p, err := paths.New(f.vault)
	if err != nil {
		return nil, err
	}
	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.VaultRoot())
	}
	return p, nil
}

func setup(cmd *cobra.Command, f *globalFlags) (*runtime, error) {
	p, err := initPaths(cmd, f)
	if err != nil {
		return nil, err
	}

	overrides, err := f.overrides(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(p, overrides)
	if err != nil {
		return nil, err
	}

	s, err := store.New(cfg.Store, p.VaultRoot())
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("vault", p.VaultRoot()).
		Str("store", cfg.Store).
		Bool("dry_run", f.dryRun).
		Msg("Runtime ready")

	return &runtime{
		paths:    p,
		config:   cfg,
		store:    s,
		notifier: notify.Multi{terminalFor(cmd.OutOrStdout()), notify.NewLog("notify")},
		dryRun:   f.dryRun,
	}, nil
}

func terminalFor(w io.Writer) *notify.Terminal {
	if f, ok := w.(*os.File); ok {
		return notify.NewTerminal(f)
	}
	return notify.NewPlain(w)
}

// vaultRelative maps a command-line document argument onto a vault path.
// Arguments naming an existing file are resolved against the working
// directory, anything else is taken as already vault-relative.
func vaultRelative(root, arg string) (string, error) {
	abs := arg
	if !filepath.IsAbs(arg) {
		if _, err := os.Stat(arg); err != nil {
			return filepath.ToSlash(filepath.Clean(arg)), nil
		}
		var err error
		if abs, err = filepath.Abs(arg); err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve %s", arg)
		}
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, MsgErrOutsideVault, arg, root)
	}
	return filepath.ToSlash(rel), nil
}

func newApplyCmd(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "apply <document>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, f)
			if err != nil {
				return err
			}

			doc, err := vaultRelative(rt.paths.VaultRoot(), args[0])
			if err != nil {
				return err
			}

			_, err = rt.engine().SubstituteDocument(doc)
			return err
		},
	}
}

func newAllCmd(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "all",
		Short:   MsgAllShort,
		Long:    MsgAllLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, f)
			if err != nil {
				return err
			}
			return runAll(rt)
		},
	}
}

func runAll(rt *runtime) error {
	summary, err := rt.engine().SubstituteAll()
	if err != nil {
		return err
	}
	if len(summary.Failed) > 0 {
		return errors.Newf(errors.ErrWrite, MsgErrFailedDocs, len(summary.Failed)).
			WithDetail("run", summary.RunID)
	}
	return nil
}

func newWatchCmd(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, f)
			if err != nil {
				return err
			}
			if rt.config.VariableFile == "" {
				return errors.New(errors.ErrPrecondition, MsgErrNoVariableSet)
			}

			target := filepath.Join(rt.paths.VaultRoot(), filepath.FromSlash(rt.config.VariableFile))
			w, err := watch.New(target, 0)
			if err != nil {
				return err
			}

			logger := logging.GetLogger("cmd.watch")
			rerun := func() {
				if err := runAll(rt); err != nil {
					logger.Warn().Err(err).Msg("Batch run failed")
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rerun()
			fmt.Fprintf(cmd.OutOrStdout(), MsgWatching, rt.config.VariableFile)
			return w.Run(ctx, rerun)
		},
	}
}

func newConfigCmd(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, f)
			if err != nil {
				return err
			}
			out, err := config.Encode(rt.config)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newGenConfigCmd(f *globalFlags) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			p, err := initPaths(cmd, f)
			if err != nil {
				return err
			}
			target := p.VaultConfigPath()
			if _, err := os.Stat(target); err == nil {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, target)
			}
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrWrite, "failed to write %s", target)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}
