package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aligator/fatnav"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

func DefineLsCommand(a *app) *cobra.Command {
	fields := &FieldsValue{}

	cmd := &cobra.Command{
		Use:   "ls [dir...]",
		Short: "List a directory",
		Long: `The 'ls' command lists the entries of the directory reached by walking the
given names from the root directory, e.g. 'fatnav ls "My Photos" 2023'.
Names are matched case sensitive against the long or the short name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mask := fields.Mask
			if !cmd.Flags().Changed("fields") {
				var err error
				if mask, err = ParseFields(a.cfg.Fields); err != nil {
					return err
				}
				if mask == 0 {
					mask = defaultFields
				}
			}
			return a.runLs(cmd.OutOrStdout(), args, mask)
		},
	}

	cmd.Flags().VarP(fields, "fields", "f", "comma separated columns: "+strings.Join(validFields(), ", "))
	return cmd
}

func (a *app) runLs(out io.Writer, dirs []string, mask fatnav.FieldMask) error {
	v, closeVolume, err := a.openVolume()
	if err != nil {
		return err
	}
	defer closeVolume()

	d, err := a.walk(v, dirs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	err = v.ListDirectory(&d, mask, func(r fatnav.Record) error {
		_, err := fmt.Fprintln(w, strings.Join(columns(r), "\t"))
		return err
	})
	if !errors.Is(err, fatnav.ErrEndOfDirectory) {
		return err
	}
	return w.Flush()
}

// columns formats the fields selected by the mask of r.
func columns(r fatnav.Record) []string {
	var cols []string
	if r.Mask.Has(fatnav.TypeField) {
		if r.IsDir {
			cols = append(cols, "d")
		} else {
			cols = append(cols, "-")
		}
	}
	if r.Mask.Has(fatnav.HiddenField) {
		cols = append(cols, attributes(r))
	}
	if r.Mask.Has(fatnav.FileSizeField) {
		cols = append(cols, fmt.Sprint(r.Size))
	}
	if r.Mask.Has(fatnav.CreationField) {
		cols = append(cols, formatTime(fatnav.ParseDateTime(r.CreateDate, r.CreateTime, r.CreateTimeTenth), timeLayout))
	}
	if r.Mask.Has(fatnav.LastAccessField) {
		cols = append(cols, formatTime(fatnav.ParseDateTime(r.LastAccessDate, 0, 0), "2006-01-02"))
	}
	if r.Mask.Has(fatnav.LastModifiedField) {
		cols = append(cols, formatTime(fatnav.ParseDateTime(r.WriteDate, r.WriteTime, 0), timeLayout))
	}
	if r.Mask.Has(fatnav.ShortNameField) {
		cols = append(cols, r.ShortName)
	}
	if r.Mask.Has(fatnav.LongNameField) {
		cols = append(cols, r.DisplayName)
	}
	return cols
}

func attributes(r fatnav.Record) string {
	b := []byte("---")
	if r.Hidden {
		b[0] = 'h'
	}
	if r.System {
		b[1] = 's'
	}
	if r.ReadOnly {
		b[2] = 'r'
	}
	return string(b)
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}
