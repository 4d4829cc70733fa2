package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/TIrth999999/Cinemas/booking"
	"github.com/TIrth999999/Cinemas/service"
)

var ordersAll bool

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your booked tickets",
	Long:  `Print your orders as a table without starting the full UI. Requires a saved login from a previous session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrders(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	ordersCmd.Flags().BoolVar(&ordersAll, "all", false, "include pending and cancelled orders")
}

func runOrders(ctx context.Context) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	if !deps.Session.Authenticated() {
		return errors.New("not logged in: run `cinemas` and sign in first")
	}

	orders, err := deps.Client.GetOrders(ctx)
	if err != nil {
		if service.IsUnauthorized(err) {
			return errors.New("session expired: run `cinemas` and sign in again")
		}
		return fmt.Errorf("fetch orders: %w", err)
	}

	if !ordersAll {
		orders = booking.CompletedOrders(orders)
	}
	if len(orders) == 0 {
		fmt.Println("No orders to show.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Movie", "Theater", "Showtime", "Seats", "Total", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 28},
		{Number: 2, WidthMax: 24},
	})
	t.Style().Options.SeparateRows = true

	for _, order := range orders {
		seats := make([]string, 0, len(order.SeatData.Seats))
		for _, seat := range order.SeatData.Seats {
			seats = append(seats, fmt.Sprintf("%s%d", seat.Row, seat.Column))
		}
		t.AppendRow(table.Row{
			order.Showtime.Movie.Name,
			order.Showtime.Screen.TheaterName,
			order.Showtime.StartTime.Local().Format(time.RFC822),
			strings.Join(seats, ", "),
			fmt.Sprintf("%.2f", order.TotalPrice),
			order.Status,
		})
	}
	t.Render()
	return nil
}
