package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/pixelveil/pixelveil/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity [image-path]",
	Short: "Calculate how much payload an image can hold",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		imagePath := args[0]

		f, err := os.Open(imagePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open image")
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to decode image")
		}

		bounds := img.Bounds()
		w, h := bounds.Dx(), bounds.Dy()
		bits := stego.Capacity(w, h)

		// 32 bits of every image go to the length header; the rest is
		// ciphertext, which carries roughly 3 bytes of overhead-free
		// payload for every 4 (base64 plus cipher framing aside).
		bodyBytes := 0
		if bits > 32 {
			bodyBytes = (bits - 32) / 8
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Println(bold("Image capacity"))

		wtr := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(wtr, "Dimensions\t%d x %d\n", w, h)
		fmt.Fprintf(wtr, "Total capacity\t%s bits\n", color.CyanString("%d", bits))
		fmt.Fprintf(wtr, "Ciphertext room\t%s bytes\n", color.CyanString("%d", bodyBytes))
		wtr.Flush()
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
