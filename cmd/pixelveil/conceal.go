package main

import (
	"os"
	"path/filepath"

	"github.com/pixelveil/pixelveil/pkg/payload"
	"github.com/pixelveil/pixelveil/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	concealFlags struct {
		Image string
		Pass  string
		Msg   string
		Files []string
		Out   string
		ECC   bool
	}
)

var concealCmd = &cobra.Command{
	Use:   "conceal",
	Short: "Conceal a message or files in an image",
	Run: func(cmd *cobra.Command, args []string) {
		if concealFlags.Msg != "" && len(concealFlags.Files) > 0 {
			log.Fatal().Msg("message and file flags cannot both be provided")
		}
		if concealFlags.Msg == "" && len(concealFlags.Files) == 0 {
			log.Fatal().Msg("either a message or at least one file is required")
		}

		var plaintext string
		if len(concealFlags.Files) > 0 {
			bundle := make([]payload.File, 0, len(concealFlags.Files))
			for _, path := range concealFlags.Files {
				data, err := os.ReadFile(path)
				if err != nil {
					log.Fatal().Err(err).Str("file", path).Msg("Failed to read input file")
				}
				bundle = append(bundle, payload.File{Name: filepath.Base(path), Data: data})
			}
			encoded, err := payload.EncodeBundle(bundle)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to encode file bundle")
			}
			plaintext = encoded
		} else {
			plaintext = payload.EncodeText(concealFlags.Msg)
		}

		if concealFlags.Out == "" {
			concealFlags.Out = concealFlags.Image + ".out.png"
		} else if dir := filepath.Dir(concealFlags.Out); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				log.Fatal().Err(err).Msg("Failed to create output directory")
			}
		}

		cArgs := &stego.ConcealArgs{
			ImagePath: concealFlags.Image,
			Password:  concealFlags.Pass,
			Message:   plaintext,
			Output:    concealFlags.Out,
			ECC:       concealFlags.ECC,
			Verbose:   verbose,
		}
		if err := stego.Conceal(cArgs); err != nil {
			log.Fatal().Err(err).Msg("Failed to conceal message")
		}
	},
}

func init() {
	rootCmd.AddCommand(concealCmd)

	concealCmd.Flags().StringVarP(&concealFlags.Image, "image-path", "i", "", "Path to cover image (required)")
	concealCmd.MarkFlagRequired("image-path")
	concealCmd.Flags().StringVarP(&concealFlags.Pass, "passphrase", "p", "", "Passphrase keying encryption and pixel order (required)")
	concealCmd.MarkFlagRequired("passphrase")
	concealCmd.Flags().StringVarP(&concealFlags.Msg, "message", "m", "", "Message to conceal")
	concealCmd.Flags().StringArrayVarP(&concealFlags.Files, "file", "f", nil, "File to conceal (repeatable)")
	concealCmd.Flags().StringVarP(&concealFlags.Out, "output", "o", "", "Output path for the stego image")
	concealCmd.Flags().BoolVar(&concealFlags.ECC, "ecc", false, "Add Reed-Solomon parity to the payload")
}
