package cmd

import (
	"fmt"
	"strings"

	"github.com/aligator/fatnav"
	"github.com/aligator/fatnav/disk"
	"github.com/aligator/fatnav/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const AppName = "fatnav"

// app is the state shared by all commands of one invocation.
type app struct {
	fs  afero.Fs
	log *logrus.Logger
	cfg config.Config

	configPath string
	image      string
	logLevel   string
	maxNameLen int
}

func Execute() error {
	root := NewRootCommand(afero.NewOsFs())
	err := root.Execute()
	if err != nil {
		_ = fatnav.PrintError(root.ErrOrStderr(), err)
	}
	return err
}

// NewRootCommand builds the command tree. Images and the config file are
// read from fs.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	a := &app{
		fs:  fs,
		log: logrus.New(),
	}

	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - read only FAT32 navigator",
		Long: `fatnav opens a FAT32 volume, either a raw partition, a whole disk with an MBR
or an image file, and lets you list directories and read files without
modifying it.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath(), "path of the YAML config file")
	flags.StringVarP(&a.image, "image", "i", "", "image file or block device holding the volume")
	flags.StringVar(&a.logLevel, "log-level", "warning", "one of panic, fatal, error, warning, info, debug, trace")
	flags.IntVar(&a.maxNameLen, "max-name-len", fatnav.DefaultMaxNameLen, "longest accepted long name in bytes")

	rootCmd.AddCommand(
		DefineInfoCommand(a),
		DefineLsCommand(a),
		DefineCatCommand(a),
		DefineMountCommand(a),
	)
	return rootCmd
}

// setup merges the config file with the flags given explicitly and
// configures logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.fs, a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := config.Config{}
	if flags.Changed("image") {
		override.Image = a.image
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		override.LogLevel = a.logLevel
	}
	if flags.Changed("max-name-len") || cfg.MaxNameLen == 0 {
		override.MaxNameLen = a.maxNameLen
	}
	a.cfg = cfg.Merge(override)

	level, err := logrus.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	a.log.WithFields(logrus.Fields{
		"config": a.configPath,
		"image":  a.cfg.Image,
	}).Debug("configured")
	return nil
}

// openVolume opens the configured image. The returned function closes it.
func (a *app) openVolume() (*fatnav.Volume, func() error, error) {
	if a.cfg.Image == "" {
		return nil, nil, fmt.Errorf("no image given, use --image or set image in %s", a.configPath)
	}

	var (
		img *disk.ImageFile
		err error
	)
	if _, ok := a.fs.(*afero.OsFs); ok {
		img, err = disk.OpenDevice(a.cfg.Image)
	} else {
		img, err = disk.OpenImage(a.fs, a.cfg.Image)
	}
	if err != nil {
		return nil, nil, err
	}
	img.SetLogger(a.log)

	v, err := fatnav.Open(img, fatnav.WithLogger(a.log), fatnav.WithMaxNameLen(a.cfg.MaxNameLen))
	if err != nil {
		img.Close()
		return nil, nil, err
	}
	return v, img.Close, nil
}

// walk moves from the root along dirs. Each argument may hold several
// components separated by "/".
func (a *app) walk(v *fatnav.Volume, dirs []string) (fatnav.Dir, error) {
	var names []string
	for _, arg := range dirs {
		for _, name := range strings.Split(arg, "/") {
			if name != "" {
				names = append(names, name)
			}
		}
	}

	d := v.RootDir()
	if err := v.Walk(&d, names...); err != nil {
		return d, err
	}
	return d, nil
}
