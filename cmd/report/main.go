package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Apurer/shop-backoffice/internal/app/api"
	"github.com/Apurer/shop-backoffice/internal/app/seed"
	analyticsdomain "github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
	platformobservability "github.com/Apurer/shop-backoffice/internal/platform/observability"
)

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		log.Fatalf("report failed: %v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "report",
		Usage: "export product revenue of a back-office owner as an XLSX workbook",
		Flags: []cli.Flag{
			&cli.TimestampFlag{Name: "start", Usage: "first day of the window (YYYY-MM-DD)", Layout: time.DateOnly, Timezone: time.UTC},
			&cli.TimestampFlag{Name: "end", Usage: "last instant of the window (YYYY-MM-DD)", Layout: time.DateOnly, Timezone: time.UTC},
			&cli.Int64Flag{Name: "owner", Usage: "owner id, defaults to DEMO_OWNER_ID"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "product-revenue.xlsx", Usage: "output file"},
			&cli.BoolFlag{Name: "seed", Usage: "load the demo data before exporting"},
		},
		Action: export,
	}
}

func export(c *cli.Context) error {
	ctx := c.Context
	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	services, cleanup, err := api.BuildServices(ctx, cfg, platformobservability.Noop(logger))
	if err != nil {
		return err
	}
	defer cleanup()

	owner := cfg.DemoOwnerID
	if c.IsSet("owner") {
		owner = c.Int64("owner")
	}
	if c.Bool("seed") {
		res, err := seed.Run(ctx, services.SeedTargets(), time.Now().UTC(), logger)
		if err != nil {
			return err
		}
		if !c.IsSet("owner") {
			owner = res.OwnerID
		}
	}

	window := analyticsdomain.Window{Start: c.Timestamp("start"), End: c.Timestamp("end")}
	out, err := os.Create(c.String("out"))
	if err != nil {
		return fmt.Errorf("create %s: %w", c.String("out"), err)
	}
	if err := services.Analytics.ExportProductRevenue(ctx, owner, window, out); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	logger.InfoContext(ctx, "product revenue exported", slog.String("file", c.String("out")), slog.Int64("owner", owner))
	return nil
}
