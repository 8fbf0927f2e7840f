package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/vacation-calendar/internal/export"
	"github.com/username/vacation-calendar/internal/upstream"
	"github.com/username/vacation-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

func exportCmd() *cobra.Command {
	var (
		country string
		year    int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a country's holidays for a year as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if country == "" {
				country = cfg.UI.DefaultCountry
			}
			country = strings.ToUpper(country)
			if year == 0 {
				year = dateutil.Today().Year()
			}
			if output == "" {
				output = export.Filename(country, year)
			}

			provider, err := initializeProvider(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Upstream.GetTimeout()+time.Second)
			defer cancel()

			hm, err := upstream.NewLocalFetcher(provider, cfg.Client.Folder()).Fetch(ctx, country, year)
			if err != nil {
				return fmt.Errorf("failed to load holidays: %w", err)
			}

			var w io.Writer = os.Stdout
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := export.WriteICS(w, country, year, hm); err != nil {
				return err
			}

			logger.Info("Calendar exported",
				zap.String("country", country),
				zap.Int("year", year),
				zap.Int("holidays", len(hm)),
				zap.String("output", output))

			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country code (default ui.default_country)")
	cmd.Flags().IntVar(&year, "year", 0, "Year (default current year)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, '-' for stdout (default holidays_<CC>_<YEAR>.ics)")

	return cmd
}
