package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/types"
)

// Result set names accepted by the results command.
const (
	resultHighPovertyGraduation = "high-poverty-graduation"
	resultIncomeDisparity       = "income-disparity"
)

func newResultsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "results <" + resultHighPovertyGraduation + "|" + resultIncomeDisparity + ">",
		Short:     "Print a threshold result set",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{resultHighPovertyGraduation, resultIncomeDisparity},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name != resultHighPovertyGraduation && name != resultIncomeDisparity {
				return fmt.Errorf("result set %q: %w", name, analyst.ErrUnknownData)
			}

			svc, _, err := opts.start(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			var rs types.ResultSet
			switch name {
			case resultHighPovertyGraduation:
				rs, err = svc.HighPovertyAndHighSchoolGraduation()
			default:
				rs, err = svc.HighIncomeDisparity()
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, rs)
		},
	}
}
