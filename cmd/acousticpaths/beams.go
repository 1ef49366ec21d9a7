package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var beamsMaxOrderFlag int

var beamsCmd = &cobra.Command{
	Use:   "beams",
	Short: "List beam-tree visualization records",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScene()
		if err != nil {
			return err
		}
		room, err := sc.Build()
		if err != nil {
			return err
		}

		for i, b := range room.GetBeamsForVisualization(beamsMaxOrderFlag) {
			fmt.Printf("beam %d: order=%d surface=%d vs=(%.3f,%.3f,%.3f) aperture_vertices=%d\n",
				i, b.ReflectionOrder, b.SurfaceID, b.VirtualSource.X, b.VirtualSource.Y, b.VirtualSource.Z, len(b.ApertureVertices))
		}
		return nil
	},
}

func init() {
	beamsCmd.Flags().IntVar(&beamsMaxOrderFlag, "max-order", -1, "limit to this reflection order or shallower (-1 = unlimited)")
	rootCmd.AddCommand(beamsCmd)
}
