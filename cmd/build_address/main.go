// build_address читает цепочки иерархии NDJSON из stdin и пишет построенные адреса JSON lines в stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/terratensor/addresser/internal/app/bootstrap"
	"github.com/terratensor/addresser/internal/app/builder"
	"github.com/terratensor/addresser/internal/app/pipeline"
	"github.com/terratensor/addresser/internal/config"
	"github.com/terratensor/addresser/internal/core/ports"
)

func main() {
	var withText bool
	flag.BoolVar(&withText, "text", false, "print the formatted address line instead of JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	synonymProvider, err := newSynonymProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to init synonyms: %v", err)
	}
	b := builder.New(synonymProvider)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetEscapeHTML(false)

	scanner := pipeline.NewBaseParser(cfg).LineScanner(os.Stdin)
	lineNum, failed := 0, 0
	for scanner.Scan() {
		lineNum++
		if ctx.Err() != nil {
			break
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		payload, err := pipeline.DecodePayload(line)
		if err != nil {
			log.Printf("line %d: %v", lineNum, err)
			failed++
			continue
		}

		address, err := b.Build(ctx, payload, nil)
		if err != nil {
			log.Printf("line %d (object_id %d): %v", lineNum, payload.ObjectID, err)
			failed++
			continue
		}

		if withText {
			_, err = os.Stdout.WriteString(address.String() + "\n")
		} else {
			err = encoder.Encode(address)
		}
		if err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	if failed > 0 {
		log.Printf("%d of %d lines failed", failed, lineNum)
		os.Exit(1)
	}
}

// newSynonymProvider не подключается к Manticore без необходимости
func newSynonymProvider(cfg *config.Config) (ports.SynonymProvider, error) {
	if cfg.SynonymsSource != config.SynonymsSourceManticore {
		return bootstrap.NewSynonymProvider(cfg, nil)
	}
	client, err := bootstrap.NewManticoreClient(cfg)
	if err != nil {
		return nil, err
	}
	return bootstrap.NewSynonymProvider(cfg, client)
}
