package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/footprint"
)

type estimateParams struct {
	category string
	details  []string
	output   string
}

type estimateResult struct {
	Category       string            `json:"category"       yaml:"category"`
	Details        map[string]string `json:"details"        yaml:"details"`
	CarbonEmission float64           `json:"carbonEmission" yaml:"carbon_emission"`
	Unit           string            `json:"unit"           yaml:"unit"`
	Comparison     string            `json:"comparison"     yaml:"comparison"`
}

func newEstimateCmd() *cobra.Command {
	var params estimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the emission of an activity without storing it",
		Long: `Estimate computes quantity × factor for one activity using the built-in
factor tables. Details are passed as repeatable key=value pairs; run
"carbonctl factors" to see the keys each category reads.`,
		Example: `  carbonctl estimate --category food --detail type=meat --detail quantity=0.5 -o json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.category, "category", "", "activity category (transportation, energy, food, shopping, waste, other)")
	cmd.Flags().StringArrayVar(&params.details, "detail", nil, "category detail as key=value (repeatable)")
	addOutputFlag(cmd, &params.output)
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runEstimate(cmd *cobra.Command, params estimateParams) error {
	if err := validateFormat(params.output); err != nil {
		return err
	}

	details, err := parseDetails(params.details)
	if err != nil {
		return err
	}

	input := footprint.EstimateInput{
		Category: domain.Category(strings.ToLower(strings.TrimSpace(params.category))),
		Details:  make(map[string]any, len(details)),
	}
	for k, v := range details {
		input.Details[k] = v
	}
	if err := input.Validate(); err != nil {
		return err
	}

	kg := carbon.Estimate(input.Category, input.Details)
	result := estimateResult{
		Category:       input.Category.String(),
		Details:        details,
		CarbonEmission: kg,
		Unit:           domain.DefaultEmissionUnit,
		Comparison:     carbon.CompareEmission(kg),
	}

	return render(cmd.OutOrStdout(), params.output, result, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Category:\t%s\n", result.Category)
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(tw, "  %s:\t%s\n", k, details[k])
		}
		fmt.Fprintf(tw, "Emission:\t%s %s\n", carbon.FormatFloat(kg, 2), result.Unit)
		fmt.Fprintf(tw, "Comparison:\t%s\n", result.Comparison)
	})
}

// parseDetails turns key=value pairs into a map. Values stay strings; the
// estimator parses numeric quantities itself.
func parseDetails(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid detail %q: want key=value", p)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
