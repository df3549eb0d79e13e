package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tripplanner/internal/modules/trip"
	"tripplanner/internal/service"
)

func newResearchCmd(g *globalFlags, tf *tripFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "research",
		Short: "Research attractions, lodging, food and logistics for the trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperations(cmd, g, tf, []service.Operation{service.OpResearch}, "")
		},
	}
}

func newPlanCmd(g *globalFlags, tf *tripFlags) *cobra.Command {
	var (
		withResearch bool
		outDir       string
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Create a day-by-day itinerary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops := []service.Operation{service.OpPlan}
			if withResearch {
				ops = []service.Operation{service.OpResearch, service.OpPlan}
			}
			return runOperations(cmd, g, tf, ops, outDir)
		},
	}
	cmd.Flags().BoolVar(&withResearch, "with-research", false, "run research first and feed it into the itinerary")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to write the itinerary text file into")
	return cmd
}

func newTipsCmd(g *globalFlags, tf *tripFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tips",
		Short: "Get quick travel tips for the destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperations(cmd, g, tf, []service.Operation{service.OpTips}, "")
		},
	}
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List accepted values for styles, budgets, accommodations, interests and mobility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printOptions(cmd.OutOrStdout(), trip.Options())
			return nil
		},
	}
}

var operationTitles = map[service.Operation]string{
	service.OpResearch: "Research",
	service.OpPlan:     "Itinerary",
	service.OpTips:     "Travel Tips",
}

func runOperations(cmd *cobra.Command, g *globalFlags, tf *tripFlags, ops []service.Operation, outDir string) error {
	req, err := tf.request(time.Now())
	if err != nil {
		return &exitCodeError{code: ExitInvalidArgs, msg: err.Error()}
	}

	a, err := newApp(cmd.Context(), g)
	if err != nil {
		return &exitCodeError{code: ExitInvalidArgs, msg: err.Error()}
	}
	defer func() { _ = a.logger.Sync() }()

	w := cmd.OutOrStdout()
	for _, op := range ops {
		out, err := a.runner.Run(cmd.Context(), service.RunInput{
			SessionID:   a.sessionID,
			Trip:        req,
			Operation:   op,
			UseResearch: true,
		})
		if err != nil {
			return err
		}

		printHeader(w, op, req, out)
		if !out.Result.OK() {
			return &exitCodeError{code: ExitGenerationFail, msg: color.RedString(out.Result.Message())}
		}
		fmt.Fprintln(w, out.Result.Text)
		fmt.Fprintln(w)

		if op == service.OpPlan && outDir != "" {
			path := filepath.Join(outDir, out.Session.ItineraryFilename)
			if err := os.WriteFile(path, []byte(out.Session.Itinerary), 0o644); err != nil {
				return fmt.Errorf("write itinerary: %w", err)
			}
			color.New(color.FgGreen).Fprintf(w, "Itinerary saved to %s\n", path)
		}
	}
	return nil
}

func printHeader(w io.Writer, op service.Operation, req trip.Request, out *service.RunOutput) {
	bold := color.New(color.Bold, color.FgCyan)
	dim := color.New(color.Faint)

	bold.Fprintf(w, "== %s: %s ==\n", operationTitles[op], strings.Join(req.Destinations, " -> "))
	summary := fmt.Sprintf("%d days, %d travelers, %s mode", out.Derived.DurationDays, req.Travelers, out.Mode)
	if out.Derived.MultiDestination {
		summary += fmt.Sprintf(", about %d days per destination", out.Derived.DaysPerDestination)
	}
	dim.Fprintln(w, summary)
	fmt.Fprintln(w)
}

func printOptions(w io.Writer, o trip.FormOptions) {
	bold := color.New(color.Bold)
	section := func(title string, values []string) {
		bold.Fprintln(w, title)
		for _, v := range values {
			fmt.Fprintf(w, "  %s\n", v)
		}
	}
	section("Travel styles", toStrings(o.TravelStyles))
	section("Budget tiers", toStrings(o.BudgetTiers))
	section("Accommodations", toStrings(o.Accommodations))
	section("Interests", toStrings(o.Interests))
	section("Mobility", toStrings(o.Mobility))
	fmt.Fprintf(w, "Travelers: %d-%d\n", o.MinTravelers, o.MaxTravelers)
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
