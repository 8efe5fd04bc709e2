package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"TrendBoard/internal/dataset"
	"TrendBoard/internal/di"
	"TrendBoard/internal/domain/models"
	"TrendBoard/internal/orchestrator"
	"TrendBoard/internal/query"
	"TrendBoard/pkg/config"
	applogger "TrendBoard/pkg/logger"
	"TrendBoard/pkg/util"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	clientMode := flag.Bool("client", false, "query a remote server instead of serving")
	sectorsMode := flag.Bool("sectors", false, "client: list available sectors and exit")
	search := flag.String("search", "", "client: search text")
	sector := flag.String("sector", models.SectorAll, "client: sector filter")
	direction := flag.String("prediction", models.DirectionAll, "client: prediction direction filter")
	sortBy := flag.String("sort", string(models.SortBySymbol), "client: sort field")
	sortOrder := flag.String("order", string(models.SortAsc), "client: sort order (asc|desc)")
	fromDate := flag.String("from", "", "client: lower lastUpdated bound (RFC3339 or YYYY-MM-DD)")
	toDate := flag.String("to", "", "client: upper lastUpdated bound (RFC3339 or YYYY-MM-DD)")
	page := flag.Int("page", models.DefaultPage, "client: page number")
	pageSize := flag.Int("page-size", models.DefaultPageSize, "client: page size")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if *sectorsMode {
		runSectors(cfg)
		return
	}
	if *clientMode {
		runClient(cfg, clientArgs{
			search: *search, sector: *sector, direction: *direction,
			sortBy: *sortBy, sortOrder: *sortOrder,
			fromDate: *fromDate, toDate: *toDate,
			page: *page, pageSize: *pageSize,
		})
		return
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	log.Printf("env=%s port=%d db=%s", cfg.Environment, cfg.Server.Port, cfg.Database.Path)

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

type clientArgs struct {
	search, sector, direction string
	sortBy, sortOrder         string
	fromDate, toDate          string
	page, pageSize            int
}

// runSectors prints the distinct sectors known to the remote server,
// falling back to the bundled dataset when the call fails.
func runSectors(cfg *config.Config) {
	fetcher := orchestrator.NewFetcher(cfg.API.BaseURL, orchestrator.WithTimeout(cfg.API.Timeout))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	sectors, err := fetcher.Sectors(ctx)
	if err != nil {
		fmt.Printf("! %v\n", err)
		fmt.Println("(showing local data)")
		sectors = dataset.Sectors()
	}
	for _, s := range sectors {
		fmt.Println(s)
	}
}

// runClient drives one query through the fetch orchestrator and prints
// the resolved page, falling back to the bundled dataset when the
// remote call fails.
func runClient(cfg *config.Config, args clientArgs) {
	field, err := models.ParseSortField(args.sortBy)
	if err != nil {
		log.Fatalf("invalid -sort: %v", err)
	}

	filter := models.DefaultFilter()
	filter.Search = args.search
	filter.Sector = args.sector
	filter.Direction = models.DirectionFilter(args.direction)
	if args.fromDate != "" || args.toDate != "" {
		filter.Date.Preset = models.PresetCustom
		filter.Date.From = util.ParseTimeDefault(args.fromDate, time.Time{})
		filter.Date.To = util.ParseTimeDefault(args.toDate, time.Time{})
	}

	criteria := models.Criteria{
		Filter:   filter,
		Sort:     models.SortCriteria{Field: field, Direction: models.SortDirection(args.sortOrder)},
		Page:     args.page,
		PageSize: args.pageSize,
	}

	l, err := applogger.New(&applogger.Config{Level: "warn", Format: "console", Output: "stderr"})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	fetcher := orchestrator.NewFetcher(cfg.API.BaseURL,
		orchestrator.WithTimeout(cfg.API.Timeout),
		orchestrator.WithLogger(l),
	)
	fetcher.Update(orchestrator.Params{Criteria: criteria, Enabled: true})
	fetcher.Wait()

	view := orchestrator.Resolve(fetcher.Snapshot(), dataset.Instruments(), criteria, query.NewEngine())

	if view.Err != "" {
		fmt.Printf("! %s\n", view.Err)
	}
	if view.FromFallback {
		fmt.Println("(showing local data)")
	}

	for _, in := range view.Result.Data {
		meta := in.Prediction.Direction.Meta()
		fmt.Printf("%-6s %-28s %9.2f %+7.2f%%  %s %s (%.0f%%)\n",
			in.Symbol, in.Name, in.CurrentPrice, in.ChangePercent,
			meta.Arrow, meta.Label, in.Prediction.Confidence)
	}

	p := view.Result.Pagination
	if p.Total != view.TotalAvailable {
		fmt.Printf("page %d/%d: %d matching of %d available\n", p.Page, p.TotalPages, p.Total, view.TotalAvailable)
	} else {
		fmt.Printf("page %d/%d: %d instruments\n", p.Page, p.TotalPages, p.Total)
	}
}
