package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	verbose bool
	noColor bool
	apiKey  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	tf := &tripFlags{}

	root := &cobra.Command{
		Use:   "planner",
		Short: "Plan trips with an AI travel researcher and itinerary planner",
		Long: `planner builds research briefs, day-by-day itineraries and quick tips for
single and multi-destination trips. Without an API key it answers with
offline templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if g.noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log planner activity to stderr")
	root.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().StringVar(&g.apiKey, "api-key", "", "API key for this run (overrides the environment)")
	tf.register(root.PersistentFlags())

	root.AddCommand(newResearchCmd(g, tf))
	root.AddCommand(newPlanCmd(g, tf))
	root.AddCommand(newTipsCmd(g, tf))
	root.AddCommand(newOptionsCmd())
	return root
}
