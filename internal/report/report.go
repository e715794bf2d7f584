package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
)

const unknownCell = "-"

// Render writes the per-host results as an aligned table followed by a
// one-line summary. Rows keep the order the targets were requested in.
func Render(w io.Writer, results []update.HostResult) error {
	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(table, "ComputerName\tOld_Version\tInstaller_Version\tCurrent_Version\tUpdated")

	for _, result := range results {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
			result.Host,
			cell(result.OldVersion),
			cell(result.InstallerVersion),
			cell(result.NewVersion),
			// Only the last column is colored; colored cells in the
			// middle would throw off tabwriter's width accounting.
			colorize(result.Outcome))
	}

	if err := table.Flush(); err != nil {
		return fmt.Errorf("render report table: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, Summary(results))

	return nil
}

// Summary condenses a batch into one line of outcome counts.
func Summary(results []update.HostResult) string {
	counts := make(map[update.Outcome]int, len(results))
	for _, result := range results {
		counts[result.Outcome]++
	}

	return fmt.Sprintf("%d hosts: %d updated, %d current, %d need restart, %d failed, %d unreachable, %d unknown",
		len(results),
		counts[update.OutcomeUpdated],
		counts[update.OutcomeAlreadyCurrent],
		counts[update.OutcomeNeedsRestart],
		counts[update.OutcomeFailed],
		counts[update.OutcomeUnreachable],
		counts[update.OutcomeUnknown])
}

func cell(v update.Version) string {
	if !v.Valid() {
		return unknownCell
	}

	return v.String()
}

func colorize(outcome update.Outcome) string {
	text := outcome.String()

	switch outcome {
	case update.OutcomeUpdated:
		return color.GreenString(text)
	case update.OutcomeAlreadyCurrent:
		return color.CyanString(text)
	case update.OutcomeNeedsRestart:
		return color.YellowString(text)
	case update.OutcomeFailed, update.OutcomeUnreachable:
		return color.RedString(text)
	default:
		return text
	}
}
