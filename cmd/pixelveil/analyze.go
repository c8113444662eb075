package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pixelveil/pixelveil/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	analyzeFlags struct {
		Original string
		Stego    string
		Heatmap  string
	}
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the difference between a cover and a stego image",
	Long:  `Calculates MSE and PSNR between the two images and writes a heatmap image highlighting modified pixels.`,
	Run: func(cmd *cobra.Command, args []string) {
		aArgs := &stego.AnalyzeArgs{
			OriginalPath: analyzeFlags.Original,
			StegoPath:    analyzeFlags.Stego,
			HeatmapPath:  analyzeFlags.Heatmap,
		}
		result, err := stego.Analyze(aArgs)
		if err != nil {
			log.Fatal().Err(err).Msg("Analysis failed")
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Println(bold("Analysis complete"))
		fmt.Printf("MSE (mean squared error):    %s\n", color.CyanString("%.4f", result.MSE))
		fmt.Printf("PSNR (signal-to-noise):      %s dB\n", color.CyanString("%.2f", result.PSNR))
		fmt.Printf("Heatmap saved to:            %s\n", analyzeFlags.Heatmap)
		fmt.Println()
		fmt.Println("PSNR above 40 dB is generally indistinguishable by eye.")
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFlags.Original, "original", "o", "", "Path to cover image (required)")
	analyzeCmd.MarkFlagRequired("original")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.Stego, "stego", "s", "", "Path to stego image (required)")
	analyzeCmd.MarkFlagRequired("stego")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.Heatmap, "heatmap", "d", "heatmap.png", "Output path for the difference heatmap")
}
