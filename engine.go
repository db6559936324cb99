package main

import (
	"fmt"
	"log/slog"
	"os"

	"yomi/annotate"
	"yomi/capability"
	"yomi/config"
	"yomi/document"
	"yomi/kanji"
	"yomi/logger"
	"yomi/ocr"
	"yomi/ocr/azure"
	"yomi/ocr/tesseract"
	"yomi/reading"
	"yomi/tokenize"
	"yomi/translate"
)

// engine is the assembled annotation pipeline.
type engine struct {
	assembler *document.Assembler
	kanji     *kanji.Table
	degraded  []string
}

// loadConfig reads configuration and builds the logger it describes.
func loadConfig() (*config.Manager, *slog.Logger, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	cfg := cm.Get()
	l := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(l)
	if f := cm.ConfigFile(); f != "" {
		l.Debug("using config file", "path", f)
	}
	return cm, l, nil
}

// buildEngine wires capabilities, tokenizer, resolver, annotator and
// assembler. Missing capabilities degrade the engine; they never stop it.
func buildEngine(cfg *config.Config, l *slog.Logger) (*engine, error) {
	set, err := capability.New(capability.Options{
		Segmenter:  cfg.Engine.Segmenter,
		Converter:  cfg.Engine.Converter,
		Dictionary: cfg.Engine.Dictionary,
		UserDict:   cfg.Engine.UserDict,
		Logger:     l,
	})
	if err != nil {
		return nil, fmt.Errorf("build capabilities: %w", err)
	}

	tok := tokenize.New(set.Segmenter, set.Converter)
	a := annotate.New(tok, reading.New(set.Converter))
	e := &engine{
		assembler: document.New(a, document.WithWorkers(cfg.Engine.Workers), document.WithLogger(l)),
	}
	for _, d := range set.Degraded {
		e.degraded = append(e.degraded, d.Error())
	}

	if cfg.Engine.Kanjidic != "" {
		table, err := kanji.LoadFile(cfg.Engine.Kanjidic)
		if err != nil {
			l.Warn("kanjidic2 not loaded, per-kanji ruby disabled", "error", err)
		} else {
			e.kanji = table
			l.Info("kanjidic2 loaded", "entries", table.Len())
		}
	}

	l.Info("annotation engine ready", "strategy", tok.Strategy(), "dictionary", cfg.Engine.Dictionary,
		"workers", cfg.Engine.Workers)
	return e, nil
}

// buildOCR returns the configured provider, or nil for "none".
func buildOCR(cfg *config.Config, l *slog.Logger) (ocr.Provider, error) {
	switch cfg.OCR.Provider {
	case "azure":
		endpoint, key := cfg.AzureCredentials()
		c, err := azure.New(azure.Config{
			Endpoint:     endpoint,
			Key:          key,
			PollInterval: cfg.OCR.Azure.PollInterval,
			MaxPolls:     cfg.OCR.Azure.MaxPolls,
			Logger:       l,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case "tesseract":
		return tesseract.New(tesseract.Config{
			Languages: cfg.OCR.Tesseract.Languages,
			Vertical:  cfg.OCR.Tesseract.Vertical,
		}), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown OCR provider %q", cfg.OCR.Provider)
	}
}

// buildTranslator returns the translation chain, or nil when disabled.
func buildTranslator(cfg *config.Config, l *slog.Logger) *translate.Chain {
	if !cfg.Translate.Enabled {
		return nil
	}
	services := translate.Services(cfg.Translate.MyMemoryURL, cfg.Translate.LibreTranslateURLs, cfg.Translate.Timeout)
	if len(services) == 0 {
		return nil
	}
	return translate.NewChain(services,
		translate.WithRetries(cfg.Translate.Retries),
		translate.WithLogger(l),
	)
}
