package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/vacation-calendar/internal/grid"
	"github.com/username/vacation-calendar/internal/holidays"
	"github.com/username/vacation-calendar/internal/render"
	"github.com/username/vacation-calendar/internal/upstream"
	"github.com/username/vacation-calendar/internal/viewstate"
	"github.com/username/vacation-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

func showCmd() *cobra.Command {
	var (
		country string
		view    string
		month   string
		local   bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the calendar grid for a country",
		Long: "Print a monthly or quarterly calendar grid with holidays marked.\n" +
			"Holidays are fetched from the holiday API at client.base_url, or\n" +
			"straight from the configured upstream with --local.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if country == "" {
				country = cfg.UI.DefaultCountry
			}
			if view == "" {
				view = cfg.UI.DefaultView
			}

			cursor := grid.MonthOf(dateutil.Today())
			if month != "" {
				t, err := dateutil.ParseMonth(month)
				if err != nil {
					return err
				}
				cursor = grid.MonthOf(t)
			}

			var fetcher holidays.Fetcher
			if local {
				provider, err := initializeProvider(cfg)
				if err != nil {
					return err
				}
				fetcher = upstream.NewLocalFetcher(provider, cfg.Client.Folder())
			} else {
				fetcher = holidays.NewClient(cfg.Client.BaseURL, cfg.Client.GetTimeout(), cfg.Client.Folder(), logger)
			}

			state := viewstate.New(fetcher, cursor, strings.ToUpper(country), grid.ParseView(view), logger)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Client.GetTimeout()+time.Second)
			defer cancel()

			loadErr := state.Refresh(ctx)
			render.New(os.Stdout, render.DetectOptions(os.Stdout)).View(state.Snapshot())

			if loadErr != nil {
				// The error view above already told the user
				logger.Debug("Holiday load failed", zap.Error(loadErr))
				return errShown
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country code (default ui.default_country)")
	cmd.Flags().StringVar(&view, "view", "", "View mode: monthly or quarterly (default ui.default_view)")
	cmd.Flags().StringVar(&month, "month", "", "First displayed month as YYYY-MM (default current month)")
	cmd.Flags().BoolVar(&local, "local", false, "Read holidays from the configured upstream instead of the API")

	return cmd
}
