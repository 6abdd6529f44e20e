package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fairaudit/adapters/excel"
	"fairaudit/adapters/rng"
	"fairaudit/domain/fairness"
	"fairaudit/internal"
	"fairaudit/internal/config"
	"fairaudit/internal/engine"
	"fairaudit/internal/reportdoc"
)

func main() {
	var (
		filePath = flag.String("file", "", "applicant pool dataset (.xlsx or .csv)")
		format   = flag.String("format", "json", "output format: json or markdown")
		process  = flag.String("process", "hiring", "process type for the audit context")
		stage    = flag.String("stage", "screening", "pipeline stage for the audit context")
		timeout  = flag.Duration("timeout", 2*time.Minute, "computation deadline")
		seed     = flag.Int64("seed", 42, "permutation-test seed")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	pool, err := excel.NewDataReader(*filePath).ReadPool()
	if err != nil {
		log.Fatalf("Failed to read dataset: %v", err)
	}

	auditor := engine.New(config.LoadEngineConfig(), rng.NewDeterministicRNG(*seed), internal.NewDefaultLogger())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := auditor.ComputeReport(ctx, pool.Candidates, pool.Outcomes, pool.Attributes, auditContext(*process, *stage, *filePath))
	if err != nil {
		log.Fatalf("Audit failed: %v", err)
	}

	switch *format {
	case "markdown":
		fmt.Print(reportdoc.NewRenderer().Markdown(report))
	default:
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
		fmt.Println(string(out))
	}
}

func auditContext(process, stage, source string) fairness.Context {
	return fairness.Context{
		ProcessType:   process,
		PipelineStage: stage,
		Metadata:      map[string]interface{}{"source_file": source},
	}
}
