package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/headcount/internal/domain/analyst"
)

type correlationOutput struct {
	Family     string   `json:"family"`
	Districts  []string `json:"districts"`
	Across     bool     `json:"across"`
	Correlates bool     `json:"correlates"`
}

type correlationCountOutput struct {
	Family string `json:"family"`
	Count  int    `json:"count"`
}

func newCorrelateCommand(opts *globalOptions) *cobra.Command {
	var (
		forName string
		across  []string
		count   bool
	)

	cmd := &cobra.Command{
		Use:   "correlate <kindergarten_graduation|kindergarten_income>",
		Short: "Judge whether kindergarten participation correlates with graduation or income",
		Example: `  headcount correlate kindergarten_graduation --for "ACADEMY 20"
  headcount correlate kindergarten_income --across "ACADEMY 20,ADAMS COUNTY 14"
  headcount correlate kindergarten_graduation --count`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := analyst.ParseCorrelation(args[0])
			if err != nil {
				return err
			}

			var target analyst.Target
			if !count {
				var names []string
				if cmd.Flags().Changed("across") {
					names = make([]string, 0, len(across))
					for _, n := range across {
						if n = strings.TrimSpace(n); n != "" {
							names = append(names, n)
						}
					}
				}
				if target, err = analyst.NewTarget(strings.TrimSpace(forName), names); err != nil {
					return err
				}
			}

			svc, _, err := opts.start(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			if count {
				n, err := svc.CountAllCorrelations(family)
				if err != nil {
					return err
				}
				return printJSON(cmd, correlationCountOutput{Family: family.String(), Count: n})
			}

			ok, err := svc.Correlates(family, target)
			if err != nil {
				return err
			}
			names := target.Names()
			if names == nil {
				names = []string{}
			}
			return printJSON(cmd, correlationOutput{
				Family:     family.String(),
				Districts:  names,
				Across:     target.IsAcross(),
				Correlates: ok,
			})
		},
	}
	cmd.Flags().StringVar(&forName, "for", "", "single district")
	cmd.Flags().StringSliceVar(&across, "across", nil, "comma separated districts that must all correlate")
	cmd.Flags().BoolVar(&count, "count", false, "count every correlating district instead")
	cmd.MarkFlagsMutuallyExclusive("for", "across", "count")
	return cmd
}
