package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/akintayo/reservation/internal/application/usecases"
	"github.com/akintayo/reservation/internal/config"
	"github.com/akintayo/reservation/internal/domain/booking"
	"github.com/akintayo/reservation/internal/locking"
	"github.com/akintayo/reservation/internal/observability"
)

const cliDateLayout = "2006-01-02"

// withCoordinator wires a coordinator against the configured backend
// for one-shot CLI operations.
func withCoordinator(cmd *cobra.Command, fn func(ctx context.Context, c *usecases.Coordinator) error) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	log := observability.NewLogger("error", "text")
	return fn(ctx, usecases.NewCoordinator(store, locking.NewFairMutex(), booking.RealClock{}, log))
}

func newAvailabilityCmd() *cobra.Command {
	var startDate, endDate string

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "List free windows (defaults: tomorrow through one month out)",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDateFlag(startDate)
			if err != nil {
				return err
			}
			to, err := parseDateFlag(endDate)
			if err != nil {
				return err
			}
			return withCoordinator(cmd, func(ctx context.Context, c *usecases.Coordinator) error {
				windows, err := c.CheckAvailability(ctx, from, to)
				if err != nil {
					return err
				}
				if len(windows) == 0 {
					fmt.Println("no availability for the requested dates")
					return nil
				}
				for _, w := range windows {
					fmt.Printf("%s to %s\n", w.Start.Format(cliDateLayout), w.End.Format(cliDateLayout))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "window end (YYYY-MM-DD)")
	return cmd
}

func newBookCmd() *cobra.Command {
	var email, fullName, checkIn, checkout string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			arrival, err := time.ParseInLocation(cliDateLayout, checkIn, time.UTC)
			if err != nil {
				return fmt.Errorf("--check-in: %w", err)
			}
			departure, err := time.ParseInLocation(cliDateLayout, checkout, time.UTC)
			if err != nil {
				return fmt.Errorf("--checkout: %w", err)
			}
			return withCoordinator(cmd, func(ctx context.Context, c *usecases.Coordinator) error {
				res, err := c.Book(ctx, email, fullName, arrival, departure)
				if err != nil {
					return err
				}
				fmt.Printf("booked %s to %s, reference %s\n",
					res.Arrival.Format(cliDateLayout), res.Departure.Format(cliDateLayout), res.Reference)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "guest email")
	cmd.Flags().StringVar(&fullName, "name", "", "guest full name")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "arrival date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkout, "checkout", "", "departure date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("checkout")
	return cmd
}

func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <reference>",
		Short: "Cancel a reservation by booking reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCoordinator(cmd, func(ctx context.Context, c *usecases.Coordinator) error {
				if err := c.Cancel(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("cancelled %s\n", args[0])
				return nil
			})
		},
	}
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(cliDateLayout, s, time.UTC)
}
