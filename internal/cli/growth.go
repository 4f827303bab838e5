package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/internal/domain/types"
)

type growthOutput struct {
	Grade     model.Grade               `json:"grade"`
	Subject   model.Subject             `json:"subject,omitempty"`
	Weighting map[model.Subject]float64 `json:"weighting,omitempty"`
	Entries   []types.GrowthEntry       `json:"entries"`
}

type districtGrowthOutput struct {
	types.GrowthEntry
	Grade   model.Grade   `json:"grade"`
	Subject model.Subject `json:"subject,omitempty"`
	Ranked  int           `json:"ranked"`
}

func newGrowthCommand(opts *globalOptions) *cobra.Command {
	var (
		grade     int
		subject   string
		top       int
		weighting string
		district  string
	)

	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Rank districts by year-over-year proficiency growth",
		Example: `  headcount growth --grade 3 --subject math --top 3
  headcount growth --grade 8 --weighting math:0.5,reading:0.5,writing:0
  headcount growth --grade 3 --subject math --district "ACADEMY 20"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := growthQuery(grade, subject, top, weighting)
			if err != nil {
				return err
			}
			svc, _, err := opts.start(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			if district != "" {
				entry, ranked, err := svc.GrowthRank(q, district)
				if err != nil {
					return err
				}
				return printJSON(cmd, districtGrowthOutput{GrowthEntry: entry, Grade: q.Grade, Subject: q.Subject, Ranked: ranked})
			}

			entries, err := svc.TopGrowth(q)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []types.GrowthEntry{}
			}
			return printJSON(cmd, growthOutput{
				Grade:     q.Grade,
				Subject:   q.Subject,
				Weighting: q.Weighting,
				Entries:   entries,
			})
		},
	}
	cmd.Flags().IntVar(&grade, "grade", 0, "grade to rank: 3 or 8 (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "math, reading or writing; empty combines all subjects")
	cmd.Flags().IntVar(&top, "top", 1, "number of districts returned")
	cmd.Flags().StringVar(&district, "district", "", "report this district's position in the full ranking instead of the top entries")
	cmd.Flags().StringVar(&weighting, "weighting", "", "subject weights summing to 1, e.g. math:0.5,reading:0.5,writing:0")
	return cmd
}

// growthQuery validates the flags before any data is loaded.
func growthQuery(grade int, subject string, top int, weighting string) (analyst.GrowthQuery, error) {
	opts := []analyst.GrowthOption{analyst.WithTop(top)}
	if subject != "" {
		s, err := model.ParseSubject(subject)
		if err != nil {
			return analyst.GrowthQuery{}, err
		}
		opts = append(opts, analyst.WithSubject(s))
	}
	w, err := analyst.ParseWeighting(weighting)
	if err != nil {
		return analyst.GrowthQuery{}, err
	}
	if w != nil {
		opts = append(opts, analyst.WithWeighting(w))
	}
	return analyst.NewGrowthQuery(model.Grade(grade), opts...)
}
