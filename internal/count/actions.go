package count

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jdhollis/logtally/models"
	"github.com/jdhollis/logtally/pkg/cache"
	"github.com/jdhollis/logtally/pkg/db"
	"github.com/jdhollis/logtally/pkg/extract"
	"github.com/jdhollis/logtally/pkg/source"
	"github.com/jdhollis/logtally/pkg/tally"
	"github.com/urfave/cli/v2"
)

// CountAction runs one count over an input source and renders the report.
func CountAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, config)

	if config.Input == "" {
		return fmt.Errorf("no input provided via --input flag or config file")
	}

	policy, err := models.ResolvePolicy(config.Policy)
	if err != nil {
		return err
	}

	extractor, err := buildExtractor(config)
	if err != nil {
		return err
	}

	var ttl time.Duration
	if config.CacheTTL != "" {
		ttl, err = time.ParseDuration(config.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl duration: %w", err)
		}
	}

	// A cache hit replays the previous report for identical input and
	// parameters without recounting.
	var reportCache *cache.Cache
	var cacheKey string
	if ttl > 0 && config.Input != "-" {
		reportCache, cacheKey = openCache(logger, config, policy, ttl)
		if reportCache != nil {
			if data, ok := reportCache.Get(cacheKey); ok {
				logger.Info("cache hit, replaying report", "input", config.Input)
				fmt.Print(string(data))
				return nil
			}
		}
	}

	lines, err := source.ReadLines(config.Input)
	if err != nil {
		return err
	}
	logger.Info("starting count", "input", config.Input, "lines", len(lines),
		"workers", config.Workers, "extractor", config.Extractor, "policy", policy.String())

	start := time.Now()
	result, err := tally.Count(lines, extractor, tally.Options{Workers: config.Workers, Policy: policy})
	if err != nil {
		return err
	}
	duration := time.Since(start)
	logger.Info("count finished", "processed", result.Processed, "malformed", result.Malformed,
		"distinct", result.Table.Len(), "duration", duration.String())

	report := &models.Report{
		Input:      config.Input,
		Field:      config.Field,
		Extractor:  config.Extractor,
		Policy:     policy.String(),
		Workers:    config.Workers,
		Processed:  result.Processed,
		Malformed:  result.Malformed,
		Distinct:   result.Table.Len(),
		DurationMS: duration.Milliseconds(),
		Top:        result.Table.TopK(config.Top),
	}

	if !c.Bool("no-save") {
		if err := saveRun(logger, config, report); err != nil {
			logger.Warn("failed to save run", "error", err)
		}
	}

	rendered, err := Render(report, config.Format)
	if err != nil {
		return err
	}
	fmt.Print(rendered)

	if reportCache != nil {
		if err := reportCache.Set(cacheKey, []byte(rendered)); err != nil {
			logger.Warn("failed to write cache entry", "error", err)
		}
	}

	return nil
}

// applyFlags overlays explicitly-set CLI flags on top of the loaded config.
func applyFlags(c *cli.Context, config *models.Config) {
	if c.IsSet("input") {
		config.Input = c.String("input")
	}
	if c.IsSet("field") {
		config.Field = c.String("field")
	}
	if c.IsSet("extract") {
		config.Extractor = c.String("extract")
	}
	if c.IsSet("policy") {
		config.Policy = c.String("policy")
	}
	if c.IsSet("workers") {
		config.Workers = c.Int("workers")
	}
	if c.IsSet("top") {
		config.Top = c.Int("top")
	}
	if c.IsSet("format") {
		config.Format = c.String("format")
	}
	if c.IsSet("db") {
		config.DBPath = c.String("db")
	}
	if c.IsSet("cache-ttl") {
		config.CacheTTL = c.String("cache-ttl")
	}
}

func buildExtractor(config *models.Config) (tally.Extractor, error) {
	switch config.Extractor {
	case "", "field":
		if config.Field == "" {
			return nil, fmt.Errorf("the field extractor needs --field")
		}
		return extract.Field(config.Field), nil
	case "raw":
		return extract.Raw(), nil
	case "lang":
		if config.Field == "" {
			return nil, fmt.Errorf("the lang extractor needs --field")
		}
		return extract.Language(config.Field), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q (want field, raw or lang)", config.Extractor)
	}
}

func openCache(logger *slog.Logger, config *models.Config, policy models.MalformedPolicy, ttl time.Duration) (*cache.Cache, string) {
	base, err := os.UserCacheDir()
	if err != nil {
		logger.Warn("cache unavailable", "error", err)
		return nil, ""
	}

	reportCache, err := cache.NewCache(filepath.Join(base, "logtally"), ttl)
	if err != nil {
		logger.Warn("cache unavailable", "error", err)
		return nil, ""
	}

	key := cache.Key(config.Input, config.Extractor, config.Field, policy.String(), config.Top, config.Format)
	return reportCache, key
}

func saveRun(logger *slog.Logger, config *models.Config, report *models.Report) error {
	database, err := db.Open(config.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := database.InsertRun(db.Run{
		Input:      report.Input,
		Field:      report.Field,
		Extractor:  report.Extractor,
		Policy:     report.Policy,
		Workers:    report.Workers,
		Processed:  report.Processed,
		Malformed:  report.Malformed,
		Distinct:   report.Distinct,
		DurationMS: report.DurationMS,
	}, report.Top)
	if err != nil {
		return err
	}

	logger.Info("run saved", "run_id", runID, "db", database.Path())
	return nil
}
