package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func DefineInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the geometry of the volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInfo(cmd)
		},
	}
}

func (a *app) runInfo(cmd *cobra.Command) error {
	v, closeVolume, err := a.openVolume()
	if err != nil {
		return err
	}
	defer closeVolume()

	bpb := v.BPB()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Label\t%s\n", bpb.VolumeLabel)
	fmt.Fprintf(w, "Type\t%s\n", bpb.FileSystemType)
	fmt.Fprintf(w, "Boot sector\t%d\n", bpb.BootSector)
	fmt.Fprintf(w, "Bytes per sector\t%d\n", bpb.BytesPerSector)
	fmt.Fprintf(w, "Sectors per cluster\t%d\n", bpb.SectorsPerCluster)
	fmt.Fprintf(w, "Reserved sectors\t%d\n", bpb.ReservedSectorCount)
	fmt.Fprintf(w, "FATs\t%d\n", bpb.NumFATs)
	fmt.Fprintf(w, "Sectors per FAT\t%d\n", bpb.FATSize32)
	fmt.Fprintf(w, "Root cluster\t%d\n", bpb.RootCluster)
	fmt.Fprintf(w, "Data region\t%d\n", bpb.DataRegionFirstSector)
	fmt.Fprintf(w, "Total sectors\t%d\n", bpb.TotalSectors)
	fmt.Fprintf(w, "Clusters\t%d\n", bpb.ClusterCount())
	return w.Flush()
}
