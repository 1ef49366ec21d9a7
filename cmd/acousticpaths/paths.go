package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/10log/BeamTrace2D-sub000/geometry"
)

var (
	orderFlag      int
	bucketSizeFlag int
	listenerFlag   string
	detailFlag     bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List every specular reflection path for a listener position",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScene()
		if err != nil {
			return err
		}
		if orderFlag >= 0 {
			sc.MaxReflectionOrder = orderFlag
		}
		if bucketSizeFlag >= 1 {
			sc.BucketSize = bucketSizeFlag
		}

		room, err := sc.Build()
		if err != nil {
			return err
		}

		listener := sc.ListenerPoint()
		if listenerFlag != "" {
			listener, err = parseVec3(listenerFlag)
			if err != nil {
				return err
			}
		}

		if detailFlag {
			detailed, err := room.GetDetailedPaths(&listener)
			if err != nil {
				return err
			}
			for i, p := range detailed {
				fmt.Printf("path %d: order=%d length=%.4f reflections=%d\n", i, p.Order, p.TotalLength, len(p.Reflections))
				for _, r := range p.Reflections {
					fmt.Printf("  surface=%d point=(%.3f,%.3f,%.3f) incidence=%.2fdeg grazing=%v\n",
						r.SurfaceID, r.Point.X, r.Point.Y, r.Point.Z, r.IncidenceAngle*180/3.14159265358979, r.Grazing)
				}
			}
			return nil
		}

		paths, err := room.GetPaths(&listener)
		if err != nil {
			return err
		}
		for i, p := range paths {
			fmt.Printf("path %d: order=%d surfaces=%v length=%.4f\n", i, p.Order, p.SurfaceIDs(), p.Length())
		}
		fmt.Printf("%d path(s)\n", len(paths))
		return nil
	},
}

func parseVec3(s string) (geometry.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return geometry.Vec3{}, fmt.Errorf("acousticpaths: --listener must be \"x,y\" or \"x,y,z\", got %q", s)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vec3{}, fmt.Errorf("acousticpaths: parsing --listener component %q: %w", p, err)
		}
		vals[i] = v
	}
	if len(vals) == 2 {
		return geometry.Vec2(vals[0], vals[1]), nil
	}
	return geometry.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func init() {
	pathsCmd.Flags().IntVar(&orderFlag, "order", -1, "override the scene's max reflection order")
	pathsCmd.Flags().IntVar(&bucketSizeFlag, "bucket-size", -1, "override the scene's cache bucket size")
	pathsCmd.Flags().StringVar(&listenerFlag, "listener", "", "override the scene's listener position, \"x,y[,z]\"")
	pathsCmd.Flags().BoolVar(&detailFlag, "detail", false, "print per-reflection detail instead of a summary")
	rootCmd.AddCommand(pathsCmd)
}
