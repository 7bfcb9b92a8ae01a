package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"restaurant-admin/apiclient"
	"restaurant-admin/config"
	"restaurant-admin/enrich"
	"restaurant-admin/geocode"
	"restaurant-admin/models"

	"github.com/spf13/cobra"
)

type options struct {
	apiURL      string
	token       string
	geocoderURL string
	userAgent   string
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &options{}

	root := &cobra.Command{
		Use:          "ordersctl",
		Short:        "Manage restaurant orders from the command line",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", cfg.APIBaseURL, "API base URL (API_BASE_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("RESTAURANT_TOKEN"), "bearer token (RESTAURANT_TOKEN)")

	root.AddCommand(newLoginCmd(opts), newOrdersCmd(opts, cfg), newOrderCmd(opts), newStatusCmd(opts))
	return root
}

func (o *options) session() (apiclient.Session, error) {
	if o.token == "" {
		return apiclient.Session{}, errors.New("no token: run `ordersctl login` and pass --token or set RESTAURANT_TOKEN")
	}
	return apiclient.Session{Token: o.token}, nil
}

func newLoginCmd(opts *options) *cobra.Command {
	var phone, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with phone and password and print the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiclient.New(opts.apiURL).Login(cmd.Context(), phone, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newOrdersCmd(opts *options, cfg *config.Config) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your restaurant's orders with customer, distance and address",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client := apiclient.New(opts.apiURL)

			result, err := client.Orders(ctx, s)
			if err != nil {
				return err
			}
			if raw {
				return printJSON(cmd.OutOrStdout(), result)
			}

			users, err := client.Users(ctx, s)
			if err != nil {
				// orders still print, just without customer details
				log.Printf("⚠️  Could not fetch users: %v", err)
			}
			geocoder := geocode.NewNominatim(opts.geocoderURL, opts.userAgent)
			pipeline := enrich.New(client.RestaurantFetcher(s), geocoder)
			enriched := pipeline.Enrich(ctx, result.Orders, enrich.UsersByID(users))

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"restaurantCoords": result.RestaurantCoords,
				"count":            len(enriched),
				"orders":           enriched,
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "skip enrichment and print orders as returned by the API")
	cmd.Flags().StringVar(&opts.geocoderURL, "geocoder", cfg.GeocoderURL, "Nominatim base URL (GEOCODER_URL)")
	cmd.Flags().StringVar(&opts.userAgent, "user-agent", cfg.GeocoderUserAgent, "User-Agent sent to the geocoder")
	return cmd
}

func newOrderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "order <orderId>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session()
			if err != nil {
				return err
			}
			order, err := apiclient.New(opts.apiURL).Order(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), order)
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status <orderId> <ordered|in process|delivered>",
		Short: "Set an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := models.OrderStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}
			s, err := opts.session()
			if err != nil {
				return err
			}
			order, err := apiclient.New(opts.apiURL).UpdateOrderStatus(cmd.Context(), s, args[0], status)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), order)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
