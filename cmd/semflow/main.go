package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/dd0wney/cluso-semflow/pkg/enrich"
	"github.com/dd0wney/cluso-semflow/pkg/logging"
	"github.com/dd0wney/cluso-semflow/pkg/markup"
	"github.com/dd0wney/cluso-semflow/pkg/metrics"
	"github.com/dd0wney/cluso-semflow/pkg/ontology"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	input := flag.String("in", "", "Raw graph-markup input file")
	vocab := flag.String("vocab", "", "Annotation vocabulary (YAML)")
	output := flag.String("out", "", "Semantic graph-markup output file")
	compress := flag.Bool("compress", false, "Write output in the compressed container")
	indexOrigin := flag.Int("index-origin", 0, "Base of annotation indices (0 or 1)")
	dangling := flag.String("dangling", "", "Orphaned-wire policy: error or drop")
	elements := flag.Bool("elements", false, "Carry port ids and literals onto output elements")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Flags set on the command line override the config file.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["in"] {
		cfg.Input = *input
	}
	if set["vocab"] {
		cfg.Vocabulary = *vocab
	}
	if set["out"] {
		cfg.Output = *output
	}
	if set["compress"] {
		cfg.Compress = *compress
	}
	if set["index-origin"] {
		cfg.IndexOrigin = *indexOrigin
	}
	if set["dangling"] {
		cfg.Dangling = *dangling
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}

	if cfg.Input == "" || cfg.Vocabulary == "" || cfg.Output == "" {
		log.Println("semflow: enrich a raw flow graph into a semantic wiring diagram")
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	reg := metrics.NewRegistry()

	start := time.Now()
	log.Printf("🔬 Semflow starting")
	log.Printf("📂 Input: %s", cfg.Input)
	log.Printf("📖 Vocabulary: %s", cfg.Vocabulary)

	vocabReg, err := ontology.LoadVocabularyFile(cfg.Vocabulary)
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}

	data, err := markup.ReadFile(cfg.Input)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	raw, err := markup.DecodeRaw(data)
	if err != nil {
		log.Fatalf("Failed to decode input: %v", err)
	}

	diagram, err := enrich.Enrich(raw, vocabReg, vocabReg, enrich.Options{
		IndexOrigin: cfg.IndexOrigin,
		Dangling:    cfg.danglingPolicy(),
		Elements:    *elements,
		Logger:      logger,
		Metrics:     reg,
	})
	if err != nil {
		log.Fatalf("Enrichment failed: %v", err)
	}

	encoded, err := markup.EncodeSemantic(diagram)
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	if err := markup.WriteFile(cfg.Output, encoded, cfg.Compress); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	log.Printf("✅ Wrote %s (%d boxes, %d wires) in %s",
		cfg.Output, diagram.BoxCount(), len(diagram.Wires()), time.Since(start))
}
