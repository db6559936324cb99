package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"yomi/api"
	"yomi/errs"
	"yomi/ingest"
	"yomi/ocr"
)

var ocrTranslate bool

var ocrCmd = &cobra.Command{
	Use:   "ocr <image>",
	Short: "Read Japanese text from an image and annotate it",
	Long: `Run the configured OCR provider on an image and annotate the result.

Supported formats: png, jpg, jpeg, gif, bmp, webp.

Examples:
  yomi ocr scan.png
  yomi ocr --translate menu.jpg -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		img, err := ocr.Load(filepath.Base(path), data)
		if err != nil {
			return err
		}

		cm, l, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cm.Get()

		provider, err := buildOCR(cfg, l)
		if err != nil {
			return err
		}
		if provider == nil {
			return errs.New(errs.OCRFailed, "no OCR provider configured")
		}
		eng, err := buildEngine(cfg, l)
		if err != nil {
			return err
		}

		id := ingest.NewID()
		l.Info("running OCR", "request_id", id, "provider", provider.Name(), "image", img.Name,
			"width", img.Width, "height", img.Height)
		raw, err := provider.Recognize(ctx, img)
		if err != nil {
			return err
		}
		doc, err := eng.assembler.FromOCR(ctx, raw)
		if err != nil {
			return err
		}

		var translated *string
		if ocrTranslate {
			if chain := buildTranslator(cfg, l); chain != nil {
				translated = chain.Translate(ctx, doc.OriginalText, cfg.Translate.Source, cfg.Translate.Target)
			}
		}
		return api.Output(modelResponse(doc, translated, id))
	},
}

func init() {
	ocrCmd.Flags().BoolVar(&ocrTranslate, "translate", false, "Add a translation using the configured services")

	rootCmd.AddCommand(ocrCmd)
}
