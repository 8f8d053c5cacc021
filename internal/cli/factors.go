package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

type factorRow struct {
	SubType string  `json:"subType" yaml:"sub_type"`
	Factor  float64 `json:"factor"  yaml:"factor"`
}

type factorTable struct {
	Category    string      `json:"category"    yaml:"category"`
	SubTypeKey  string      `json:"subTypeKey"  yaml:"sub_type_key"`
	QuantityKey string      `json:"quantityKey" yaml:"quantity_key"`
	Unit        string      `json:"unit"        yaml:"unit"`
	Factors     []factorRow `json:"factors"     yaml:"factors"`
}

func newFactorsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "List the emission factor tables used by the estimator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			tables := factorTables()
			return render(cmd.OutOrStdout(), output, tables, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "CATEGORY\tDETAIL KEYS\tSUB-TYPE\tKG CO2E PER UNIT")
				for _, t := range tables {
					for _, f := range t.Factors {
						fmt.Fprintf(tw, "%s\t%s, %s\t%s\t%s / %s\n",
							t.Category, t.SubTypeKey, t.QuantityKey, f.SubType, carbon.FormatFloat(f.Factor, 3), t.Unit)
					}
				}
			})
		},
	}
	addOutputFlag(cmd, &output)

	return cmd
}

// factorTables lists every category with a table, in category order and
// with sub-types sorted by name.
func factorTables() []factorTable {
	var out []factorTable
	for _, c := range domain.AllCategories() {
		t, ok := carbon.Table(c)
		if !ok {
			continue
		}
		ft := factorTable{
			Category:    c.String(),
			SubTypeKey:  t.SubTypeKey,
			QuantityKey: t.QuantityKey,
			Unit:        t.Unit,
		}
		for _, st := range carbon.SubTypes(c) {
			ft.Factors = append(ft.Factors, factorRow{SubType: string(st), Factor: t.Factors[st]})
		}
		out = append(out, ft)
	}
	return out
}
