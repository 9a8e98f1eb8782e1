// Package cli wires flags, environment and config into a scan and a render.
package cli

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lumipallolabs/dirtree/internal/logging"
	"github.com/lumipallolabs/dirtree/internal/model"
	"github.com/lumipallolabs/dirtree/internal/scanner"
	"github.com/lumipallolabs/dirtree/internal/ui"
)

// ErrNotDirectory is returned when the root argument is not a directory
var ErrNotDirectory = errors.New("not a directory")

const envPrefix = "DIRTREE"

const (
	flagSort          = "sort"
	flagDiskUsage     = "disk-usage"
	flagLevel         = "level"
	flagThreads       = "threads"
	flagOneFileSystem = "one-file-system"
	flagNoColor       = "no-color"
	flagConfig        = "config"
)

func sortUsage() string {
	names := make([]string, len(model.Orders))
	for i, o := range model.Orders {
		names[i] = o.String()
	}
	return "sort order: " + strings.Join(names, ", ")
}

func initFlags(flag *pflag.FlagSet, order *model.Order) {
	flag.VarP(order, flagSort, "s", sortUsage())
	flag.StringP(flagDiskUsage, "d", scanner.DiskUsageLogical.String(), "size measure: logical or physical")
	flag.IntP(flagLevel, "L", 0, "maximum depth to print, 0 for unlimited")
	flag.IntP(flagThreads, "t", runtime.NumCPU(), "number of directory reader threads")
	flag.BoolP(flagOneFileSystem, "x", false, "do not descend into other filesystems")
	flag.Bool(flagNoColor, false, "disable colored output")
	flag.String(flagConfig, "", "path to a config file (yaml, toml or json)")
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return v, fmt.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config

	if path := v.GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return v, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return v, nil
}

// checkRoot makes sure the tree root exists and is a directory
func checkRoot(fsys afero.Fs, root string) error {
	isDir, err := afero.IsDir(fsys, root)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", root, err)
	}
	if !isDir {
		return fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}
	return nil
}

// NewRootCommand builds the dirtree command. fsys is used to validate the
// root argument before the walk.
func NewRootCommand(fsys afero.Fs) *cobra.Command {
	// Only bound so pflag rejects a bad --sort at parse time; the value used
	// is read back through viper, which also covers env and config
	var order model.Order

	cmd := &cobra.Command{
		Use:           `dirtree [flags] [dir]`,
		Short:         "dirtree prints a directory tree with sizes.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			// Re-parse so env and config values get the same validation as the flag
			sortOrder, err := model.ParseOrder(v.GetString(flagSort))
			if err != nil {
				return err
			}

			usage, err := scanner.ParseDiskUsage(v.GetString(flagDiskUsage))
			if err != nil {
				return err
			}

			level := v.GetInt(flagLevel)
			if level < 0 {
				return fmt.Errorf("invalid level %d: must not be negative", level)
			}

			if err := checkRoot(fsys, root); err != nil {
				return err
			}

			walker := scanner.NewWalker(scanner.Options{
				Workers:       v.GetInt(flagThreads),
				DiskUsage:     usage,
				OneFileSystem: v.GetBool(flagOneFileSystem),
			})

			logging.Debug.Debug("starting scan",
				zap.String("root", root),
				zap.Stringer("order", sortOrder),
				zap.Stringer("disk_usage", usage))

			tree, err := walker.Scan(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("error scanning %s: %w", root, err)
			}
			tree.ComputeSizes()

			view := ui.TreeView{
				Order: sortOrder,
				Level: level,
				Color: !v.GetBool(flagNoColor),
			}
			return view.Render(cmd.OutOrStdout(), tree)
		},
	}
	initFlags(cmd.Flags(), &order)

	return cmd
}
