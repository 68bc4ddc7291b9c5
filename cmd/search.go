package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"eventscout/internal/domain"
	"eventscout/internal/logging"
	"eventscout/internal/logic"
	"eventscout/internal/session"
)

// errSearchFailed is returned after the failure has already been printed
var errSearchFailed = errors.New("search failed")

type searchOptions struct {
	city         string
	maxEvents    int
	descriptions bool
	sort         string
	filter       string
	asJSON       bool
}

func newSearchCommand(root *rootOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one search and print the results",
		Example: `  eventscout search --city London
  eventscout search --city "New York" --max 10 --sort date --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), root, logging.DefaultFile())
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("max") {
				so.maxEvents = a.cfg.Search.DefaultMaxEvents
			}
			if !cmd.Flags().Changed("descriptions") {
				so.descriptions = a.cfg.Search.ShowDescriptions
			}
			key, err := a.cfg.SortKey()
			if cmd.Flags().Changed("sort") {
				key, err = domain.ParseSortKey(so.sort)
			}
			if err != nil {
				return err
			}

			params, err := domain.NewSearchParams(so.city, so.maxEvents, so.descriptions)
			if err != nil {
				return err
			}

			if a.warning != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", a.warning)
			}

			s, err := a.controller.StartSearch(cmd.Context(), params)
			if err != nil {
				return err
			}
			if s.Status == session.Error {
				printFailure(cmd.ErrOrStderr(), s)
				return errSearchFailed
			}

			events := logic.DisplayEvents(s.Events, key, so.filter)
			if so.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(events)
			}
			printEvents(cmd.OutOrStdout(), s, events)
			return nil
		},
	}

	cmd.Flags().StringVarP(&so.city, "city", "c", "", "City to search (required)")
	cmd.Flags().IntVarP(&so.maxEvents, "max", "n", domain.DefaultMaxEvents,
		fmt.Sprintf("Number of events to fetch, one of %v", domain.AllowedMaxEvents))
	cmd.Flags().BoolVarP(&so.descriptions, "descriptions", "d", false, "Include event descriptions")
	cmd.Flags().StringVarP(&so.sort, "sort", "s", "", "Sort order: default, date, name")
	cmd.Flags().StringVarP(&so.filter, "filter", "f", "", "Only show events matching this text (date: and at: prefixes supported)")
	cmd.Flags().BoolVar(&so.asJSON, "json", false, "Print the events as JSON")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}

func printEvents(w io.Writer, s session.Session, events []domain.Event) {
	header := fmt.Sprintf("%d Events in %s", len(s.Events), s.City)
	if len(events) != len(s.Events) {
		header += fmt.Sprintf(" (%d shown)", len(events))
	}
	fmt.Fprintln(w, header)

	if len(s.Events) == 0 {
		fmt.Fprintln(w, "No events found. Try a different search.")
		return
	}
	if len(events) == 0 {
		fmt.Fprintln(w, "No events match the filter.")
		return
	}

	for i, e := range events {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, e.Name)
		fmt.Fprintf(w, "   When:  %s\n", e.DateTime)
		fmt.Fprintf(w, "   Where: %s\n", e.LocationOrDefault())
		if s.ShowDescriptions {
			if d := logic.CleanDescription(e.Description, 300); d != "" {
				fmt.Fprintf(w, "   %s\n", d)
			}
		}
		if e.Link != "" {
			fmt.Fprintf(w, "   Link:  %s\n", e.Link)
		}
	}
}

func printFailure(w io.Writer, s session.Session) {
	fmt.Fprintln(w, "Oops! Something went wrong")
	fmt.Fprintln(w, s.Message)
	fmt.Fprintln(w, "\nSuggestions:")
	for _, tip := range session.Tips {
		fmt.Fprintf(w, "  - %s\n", tip)
	}
}
