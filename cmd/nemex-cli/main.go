// Command nemex-cli runs approximate entity extraction over a batch of
// documents against a dictionary, loaded from a TSV file or a SQLite
// database, and prints the matches as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nemex-go/nemex/internal/docsource"
	"github.com/nemex-go/nemex/pkg/nemex"
	"github.com/nemex-go/nemex/pkg/nemex/bounds"
	"github.com/nemex-go/nemex/pkg/nemex/config"
	"github.com/nemex-go/nemex/pkg/nemex/dictstore/sqlite"
	"github.com/nemex-go/nemex/pkg/nemex/entity"
	"github.com/nemex-go/nemex/pkg/nemex/nemexerr"
)

func main() {
	var (
		dictTSV    = flag.String("dict", "", "Entity dictionary TSV file (id<TAB>text per line)")
		dictDB     = flag.String("dict-db", "", "Entity dictionary SQLite database (alternative to --dict)")
		input      = flag.String("input", "", "Input JSONL file, one document per line (required)")
		configPath = flag.String("config", "", "EngineConfig YAML file (alternative to the flags below)")
		similarity = flag.String("similarity", "jaccard", "jaccard|cosine|dice|edit_sim|edit_dist")
		threshold  = flag.Float64("threshold", 0.8, "similarity threshold, or edit-distance tau")
		q          = flag.Int("q", 2, "q-gram size, used only for edit_sim/edit_dist")
		pruner     = flag.String("pruner", "batch", "none|lazy|bucket|batch")
		verify     = flag.Bool("verify", true, "re-score each candidate with the exact verifier")
		output     = flag.String("output", "", "Output JSON file (default: stdout)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}
	if *dictTSV == "" && *dictDB == "" {
		log.Fatal("--dict or --dict-db required")
	}

	ctx := context.Background()

	ids, texts, err := loadDictionary(ctx, *dictTSV, *dictDB)
	if err != nil {
		log.Fatalf("load dictionary: %v", err)
	}

	opts := nemex.Options{
		EntityIDs:  ids,
		EntityText: texts,
		ReprCache:  1024,
	}

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		sim, err := similarityFromName(cfg.Similarity)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		opts.Similarity = sim
		opts.Threshold = cfg.Threshold
		opts.Q = cfg.Tokenizer.Q
		opts.Pruner = cfg.Pruner
		opts.Verify = cfg.Verify
	} else {
		sim, err := similarityFromName(*similarity)
		if err != nil {
			log.Fatalf("--similarity: %v", err)
		}
		opts.Similarity = sim
		opts.Threshold = *threshold
		if sim == bounds.EditSim || sim == bounds.EditDist {
			opts.Q = *q
		}
		opts.Pruner = *pruner
		opts.Verify = *verify
	}

	engine, err := nemex.New(opts)
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}

	docs, err := docsource.LoadFromJSONL(*input)
	if err != nil {
		log.Fatalf("load documents: %v", err)
	}
	log.Printf("loaded %d documents, %d dictionary entities", len(docs), len(ids))

	texts2 := make([]string, len(docs))
	for i, d := range docs {
		texts2[i] = d.Text
	}

	results, err := engine.ExtractBatch(ctx, texts2)
	if err != nil {
		log.Fatalf("extract: %v", err)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Fatalf("encode results: %v", err)
	}

	total := 0
	for _, r := range results {
		total += len(r.Matches)
	}
	log.Printf("extracted %d matches across %d documents", total, len(results))
}

func loadDictionary(ctx context.Context, tsvPath, dbPath string) ([]string, []string, error) {
	if dbPath != "" {
		store, err := sqlite.Open(ctx, dbPath)
		if err != nil {
			return nil, nil, err
		}
		defer store.Close()

		entries, err := store.LoadEntries(ctx)
		if err != nil {
			return nil, nil, err
		}
		ids := make([]string, len(entries))
		texts := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
			texts[i] = e.Text
		}
		return ids, texts, nil
	}
	return entity.LoadTSVFile(tsvPath)
}

func similarityFromName(name string) (bounds.Similarity, error) {
	switch name {
	case "jaccard":
		return bounds.Jaccard, nil
	case "cosine":
		return bounds.Cosine, nil
	case "dice":
		return bounds.Dice, nil
	case "edit_sim":
		return bounds.EditSim, nil
	case "edit_dist":
		return bounds.EditDist, nil
	default:
		return 0, fmt.Errorf("%w: unknown similarity %q", nemexerr.ErrInvalidConfig, name)
	}
}
