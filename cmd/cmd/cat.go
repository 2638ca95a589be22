package cmd

import (
	"errors"
	"io"

	"github.com/aligator/fatnav"
	"github.com/spf13/cobra"
)

func DefineCatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat [dir...] <file>",
		Short: "Write a file to stdout",
		Long: `The 'cat' command walks the given directories from the root directory and
writes the content of the file named by the last argument to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCat(cmd.OutOrStdout(), args[:len(args)-1], args[len(args)-1])
		},
	}
}

func (a *app) runCat(out io.Writer, dirs []string, name string) error {
	v, closeVolume, err := a.openVolume()
	if err != nil {
		return err
	}
	defer closeVolume()

	d, err := a.walk(v, dirs)
	if err != nil {
		return err
	}

	err = v.ForEachFileSector(&d, name, func(data []byte) error {
		_, err := out.Write(data)
		return err
	})
	if errors.Is(err, fatnav.ErrEndOfFile) {
		return nil
	}
	return err
}
