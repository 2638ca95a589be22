package cmd

import (
	"github.com/aligator/fatnav"
	"github.com/aligator/fatnav/internal/fuse"
	"github.com/spf13/cobra"
)

func DefineMountCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mount <mountpoint>",
		Short: "Mount the volume read only (Linux only)",
		Long: `The 'mount' command serves the volume through FUSE at the given mountpoint
until it receives SIGINT or SIGTERM. The mountpoint is created if it does
not exist and must be empty otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, closeVolume, err := a.openVolume()
			if err != nil {
				return err
			}
			defer closeVolume()

			return fuse.Mount(args[0], fatnav.NewFs(v), a.log)
		},
	}
}
