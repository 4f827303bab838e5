package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
)

type variationOutput struct {
	District          string           `json:"district"`
	Against           string           `json:"against"`
	Variation         float64          `json:"kindergarten_participation_rate_variation"`
	Trend             model.TimeSeries `json:"kindergarten_participation_rate_variation_trend"`
	AgainstGraduation *float64         `json:"kindergarten_participation_against_high_school_graduation,omitempty"`
	AgainstIncome     *float64         `json:"kindergarten_participation_against_household_income,omitempty"`
}

func newVariationCommand(opts *globalOptions) *cobra.Command {
	var against string

	cmd := &cobra.Command{
		Use:     "variation <district>",
		Short:   "Print the kindergarten participation variations of a district",
		Example: `  headcount variation "ACADEMY 20" --against "ADAMS COUNTY 14"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.start(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			name := strings.TrimSpace(args[0])
			other := strings.TrimSpace(against)
			if other == "" {
				other = svc.Baseline()
			}

			v, err := svc.KindergartenParticipationRateVariation(name, other)
			if err != nil {
				return err
			}
			trend, err := svc.KindergartenParticipationRateVariationTrend(name, other)
			if err != nil {
				return err
			}
			out := variationOutput{
				District:  strings.ToUpper(name),
				Against:   strings.ToUpper(other),
				Variation: v,
				Trend:     trend,
			}
			if out.AgainstGraduation, err = optional(svc.KindergartenParticipationAgainstHighSchoolGraduation(name)); err != nil {
				return err
			}
			if out.AgainstIncome, err = optional(svc.KindergartenParticipationAgainstHouseholdIncome(name)); err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&against, "against", "", "district compared against (default the statewide baseline)")
	return cmd
}

// optional omits a ratio whose inputs are missing.
func optional(v float64, err error) (*float64, error) {
	if errors.Is(err, analyst.ErrEmptyData) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
