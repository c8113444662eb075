package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixelveil/pixelveil/pkg/payload"
	"github.com/pixelveil/pixelveil/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	revealFlags struct {
		Image  string
		Pass   string
		Out    string
		OutDir string
		ECC    bool
	}
)

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Reveal a message or files hidden in an image",
	Run: func(cmd *cobra.Command, args []string) {
		rArgs := &stego.RevealArgs{
			ImagePath: revealFlags.Image,
			Password:  revealFlags.Pass,
			ECC:       revealFlags.ECC,
			Verbose:   verbose,
		}
		plaintext, err := stego.Reveal(rArgs)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reveal message")
		}

		msg, err := payload.Decode(plaintext)
		if err != nil {
			log.Fatal().Err(err).Msg("Image holds a payload this tool does not understand")
		}

		switch msg.Kind {
		case payload.KindText:
			if revealFlags.Out != "" {
				if err := os.WriteFile(revealFlags.Out, []byte(msg.Text), 0644); err != nil {
					log.Fatal().Err(err).Msg("Failed to write output file")
				}
			} else {
				fmt.Println(msg.Text)
			}

		case payload.KindBundle:
			outDir := revealFlags.OutDir
			if outDir == "" {
				outDir = "."
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				log.Fatal().Err(err).Msg("Failed to create output directory")
			}
			for _, f := range msg.Files {
				// Bundle names come from the image; never let them
				// escape the output directory.
				dest := filepath.Join(outDir, filepath.Base(f.Name))
				if err := os.WriteFile(dest, f.Data, 0644); err != nil {
					log.Fatal().Err(err).Str("file", dest).Msg("Failed to write bundle file")
				}
				log.Info().Str("file", dest).Int("bytes", len(f.Data)).Msg("Extracted file")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(revealCmd)

	revealCmd.Flags().StringVarP(&revealFlags.Image, "image-path", "i", "", "Path to stego image (required)")
	revealCmd.MarkFlagRequired("image-path")
	revealCmd.Flags().StringVarP(&revealFlags.Pass, "passphrase", "p", "", "Passphrase used when concealing (required)")
	revealCmd.MarkFlagRequired("passphrase")
	revealCmd.Flags().StringVarP(&revealFlags.Out, "output", "o", "", "Output path for a revealed text message")
	revealCmd.Flags().StringVarP(&revealFlags.OutDir, "out-dir", "d", "", "Directory for revealed bundle files")
	revealCmd.Flags().BoolVar(&revealFlags.ECC, "ecc", false, "Payload was embedded with Reed-Solomon parity")
}
