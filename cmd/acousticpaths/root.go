package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/10log/BeamTrace2D-sub000/scene"
)

var sceneFlag string

var rootCmd = &cobra.Command{
	Use:               "acousticpaths",
	Short:             "Specular acoustic reflection path engine demo",
	Long:              `acousticpaths builds a room from a YAML scene description and queries it for specular reflection paths.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sceneFlag, "scene", "s", "", "path to a scene YAML file (required)")
	_ = rootCmd.MarkPersistentFlagRequired("scene")
}

func loadScene() (*scene.Scene, error) {
	log.Printf("loading scene %s", sceneFlag)
	sc, err := scene.Load(sceneFlag)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded scene %s", sceneFlag)
	return sc, nil
}
