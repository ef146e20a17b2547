package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/example/pdf-workbench/internal/api"
	"github.com/example/pdf-workbench/internal/cache"
	"github.com/example/pdf-workbench/internal/fetch"
	"github.com/example/pdf-workbench/internal/ops"
	"github.com/example/pdf-workbench/internal/pipeline"
	"github.com/example/pdf-workbench/internal/providers/llm"
	"github.com/example/pdf-workbench/internal/runner"
	"github.com/example/pdf-workbench/internal/store"
)

func main() {
	// optional .env for local dev
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	memo := cache.New(envInt("CACHE_MAX_ENTRIES", 64))
	documents := store.NewDocumentStore()
	fetcher := fetch.New(memo)

	reg := ops.NewRegistry()
	reg.Register(&ops.MetadataOp{})
	reg.Register(&ops.ExtractTextOp{})
	reg.Register(&ops.ExtractTablesOp{})
	reg.Register(&ops.ExtractImagesOp{})
	reg.Register(&ops.DecryptOp{})
	reg.Register(&ops.CompressOp{})
	reg.Register(&ops.ConvertDocxOp{})
	reg.Register(&ops.WatermarkOp{Cache: memo})
	reg.Register(&ops.PreviewOp{})
	reg.Register(&ops.SummarizeOp{Client: llm.NewFromEnv()})

	jobs := runner.New(
		&pipeline.OpExecutor{Registry: reg, Store: documents},
		&pipeline.OutputValidator{Store: documents},
	)

	mux := http.NewServeMux()
	api.NewServer(documents, jobs, fetcher, reg).RegisterRoutes(mux)

	log.Printf("server listening on %s", addr)
	if err := http.ListenAndServe(addr, cors(mux)); err != nil {
		log.Fatal(err)
	}
}

// simple CORS middleware for local dev
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
