package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var metricsListenerFlag string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Run a query and print its solver metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScene()
		if err != nil {
			return err
		}
		room, err := sc.Build()
		if err != nil {
			return err
		}

		listener := sc.ListenerPoint()
		if metricsListenerFlag != "" {
			listener, err = parseVec3(metricsListenerFlag)
			if err != nil {
				return err
			}
		}

		if _, err := room.GetPaths(&listener); err != nil {
			return err
		}
		m := room.GetMetrics()
		fmt.Printf("leaf_nodes=%d buckets=%d buckets_skipped=%d buckets_checked=%d\n", m.LeafNodes, m.Buckets, m.BucketsSkipped, m.BucketsChecked)
		fmt.Printf("fail_plane_hits=%d fail_plane_misses=%d raycast_count=%d\n", m.FailPlaneHits, m.FailPlaneMisses, m.RaycastCount)
		fmt.Printf("skip_spheres_active=%d valid_path_count=%d\n", m.SkipSpheresActive, m.ValidPathCount)
		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsListenerFlag, "listener", "", "override the scene's listener position, \"x,y[,z]\"")
	rootCmd.AddCommand(metricsCmd)
}
