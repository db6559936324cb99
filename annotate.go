package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"yomi/api"
	"yomi/ingest"
	"yomi/kanji"
	"yomi/model"
	"yomi/render"
)

var (
	annotateHTML       bool
	annotateStylesheet bool
	annotateSplit      bool
	annotateTranslate  bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [text|-]",
	Short: "Annotate Japanese text with furigana",
	Long: `Annotate Japanese text locally, without a running server.

Text is read from the argument, or from stdin when the argument is "-" or
missing. Output is the annotated document in the selected output format, or
HTML ruby markup with --html.

Examples:
  yomi annotate 日本語を勉強しています
  echo 東京都 | yomi annotate -o json
  yomi annotate --html --stylesheet < page.txt > page.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		req, err := ingest.Text(text)
		if err != nil {
			return err
		}

		cm, l, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cm.Get()
		eng, err := buildEngine(cfg, l)
		if err != nil {
			return err
		}

		doc, err := eng.assembler.FromText(cmd.Context(), req.Text)
		if err != nil {
			return err
		}

		if annotateHTML {
			var table *kanji.Table
			if annotateSplit {
				table = eng.kanji
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.HTML(doc, render.Options{
				Stylesheet: annotateStylesheet,
				Kanji:      table,
			}))
			return nil
		}

		var translated *string
		if annotateTranslate {
			if chain := buildTranslator(cfg, l); chain != nil {
				translated = chain.Translate(cmd.Context(), doc.OriginalText, cfg.Translate.Source, cfg.Translate.Target)
			}
		}
		return api.Output(modelResponse(doc, translated, req.ID))
	},
}

// modelResponse builds the wire form printed by the local commands.
func modelResponse(doc model.Document, translated *string, id string) model.Response {
	resp := model.NewResponse(doc, translated)
	resp.RequestID = id
	return resp
}

// readInput returns the text argument, or stdin for "-" or no argument.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	if f, ok := stdin.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no text given: pass it as an argument or pipe it on stdin")
		}
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func init() {
	annotateCmd.Flags().BoolVar(&annotateHTML, "html", false, "Print HTML ruby markup instead of structured output")
	annotateCmd.Flags().BoolVar(&annotateStylesheet, "stylesheet", false, "Embed the default CSS (with --html)")
	annotateCmd.Flags().BoolVar(&annotateSplit, "split", false, "Per-kanji ruby using engine.kanjidic (with --html)")
	annotateCmd.Flags().BoolVar(&annotateTranslate, "translate", false, "Add a translation using the configured services")

	rootCmd.AddCommand(annotateCmd)
}
