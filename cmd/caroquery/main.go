// Command caroquery decodes a listing query the way the browser does and
// shows what it means: the filter state, the canonical query it encodes back
// to and the parameters sent to the search API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"carosearch/internal/api"
	"carosearch/internal/codec"
	"carosearch/internal/config"
	"carosearch/internal/filters"
	"carosearch/internal/ui/views"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func main() {
	var (
		configPath string
		runSearch  bool
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.BoolVar(&runSearch, "search", false, "Fetch the first page of results")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-search] [-config path] 'query'\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	state, err := decode(os.Stdout, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !runSearch {
		return
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewConfigServiceWithBus(nil, configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := searchFirstPage(os.Stdout, cfg, state); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// decode prints the meaning of raw and returns the resulting state.
// Malformed values are reported and skipped.
func decode(w io.Writer, raw string) (filters.State, error) {
	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	}
	patch, err := codec.ParseQuery(raw)
	var decodeErrs codec.DecodeErrors
	if err != nil && !errors.As(err, &decodeErrs) {
		return filters.State{}, fmt.Errorf("failed to parse query: %w", err)
	}

	state := filters.Default()
	if err := state.Apply(patch); err != nil {
		return filters.State{}, fmt.Errorf("failed to apply query: %w", err)
	}

	fmt.Fprintln(w, labelStyle.Render("Filters"))
	if state.ActiveCount() == 0 {
		fmt.Fprintln(w, dimStyle.Render("  none"))
	}
	for _, f := range filters.Fields() {
		if state.IsActive(f) {
			fmt.Fprintf(w, "  %-14s %s\n", f.Label(), filters.FormatValue(state.Get(f)))
		}
	}
	for _, bad := range decodeErrs {
		fmt.Fprintln(w, warnStyle.Render("  ignored "+bad.Error()))
	}
	for _, problem := range filters.Validate(state) {
		fmt.Fprintln(w, warnStyle.Render("  ! "+problem.Error()))
	}

	fmt.Fprintln(w, labelStyle.Render("Query"))
	fmt.Fprintf(w, "  ?%s\n", codec.EncodeQuery(state))
	fmt.Fprintln(w, labelStyle.Render("Search parameters"))
	fmt.Fprintf(w, "  %s\n", codec.ToSearchParams(state).String())
	return state, nil
}

func searchFirstPage(w io.Writer, cfg *config.Config, state filters.State) error {
	client, err := api.New(api.Options{
		BaseURL:     cfg.API.BaseURL,
		Environment: api.Environment(cfg.API.Environment),
		Token:       cfg.API.Token,
		Timeout:     cfg.Timeout(),
		RateLimit:   cfg.API.RateLimit,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()
	params := codec.ToSearchParams(state).WithPage(1, cfg.UISettings.PageSize)
	listing, err := client.SearchVehicles(ctx, params.Values())
	if err != nil {
		return fmt.Errorf("failed to search vehicles: %w", err)
	}

	fmt.Fprintln(w, labelStyle.Render("Results"))
	for _, v := range listing.Vehicles {
		fmt.Fprintf(w, "  %-6d %-40s %14s %12s  %s\n",
			v.ID, views.Truncate(v.Title, 40), views.FormatPrice(v.Price), views.FormatMileage(v.Mileage), v.Location)
	}
	if p := listing.Pagination; p != nil {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  %d vehicles, page %d of %d", p.Total, p.Page, max(p.Pages, 1))))
	} else {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  %d vehicles", len(listing.Vehicles))))
	}
	return nil
}
