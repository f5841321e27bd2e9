package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/example/shoe-catalog/config"
	"github.com/example/shoe-catalog/datasource"
	"github.com/example/shoe-catalog/domain/catalog"
	"github.com/example/shoe-catalog/domain/product"
	"github.com/spf13/cobra"
)

var queryFlags struct {
	search string
	brand  string
	sort   string
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter and sort the configured catalog once and print the result as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		q := catalog.NewQuery(queryFlags.search, queryFlags.brand, queryFlags.sort)
		return runQuery(cmd.Context(), cfg.Source, q, cmd.OutOrStdout())
	},
}

var statsThreshold int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print inventory statistics of the configured catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		threshold := statsThreshold
		if threshold <= 0 {
			threshold = cfg.LowStockThreshold
		}
		return runStats(cmd.Context(), cfg.Source, threshold, cmd.OutOrStdout())
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryFlags.search, "search", "", "case-insensitive name filter")
	queryCmd.Flags().StringVar(&queryFlags.brand, "brand", catalog.AllBrands, "brand to show, or \"all\"")
	queryCmd.Flags().StringVar(&queryFlags.sort, "sort", string(catalog.SortByName), "name, price-low or price-high")

	statsCmd.Flags().IntVar(&statsThreshold, "threshold", 0, "low stock threshold (defaults to the configured one)")
}

func runQuery(ctx context.Context, cfg config.SourceConfig, q catalog.Query, w io.Writer) error {
	products, err := loadProducts(ctx, cfg)
	if err != nil {
		return err
	}
	result := catalog.FilterAndSort(products, q)
	return writeJSON(w, map[string]any{
		"query":    q,
		"products": result,
		"total":    len(result),
	})
}

func runStats(ctx context.Context, cfg config.SourceConfig, threshold int, w io.Writer) error {
	products, err := loadProducts(ctx, cfg)
	if err != nil {
		return err
	}
	return writeJSON(w, catalog.ComputeStats(products, threshold))
}

func loadProducts(ctx context.Context, cfg config.SourceConfig) ([]product.Product, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	source, err := datasource.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog source: %w", err)
	}
	defer source.Close()

	products, err := source.Source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
