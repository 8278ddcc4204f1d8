package display

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/arthur-debert/latch/pkg/types"
)

// RunView is everything the renderer shows for one enforce run.
type RunView struct {
	Result *types.RunResult

	SourceRoot string

	// ConfigSource is the merged config file path, or "defaults"
	ConfigSource string
}

// StatusView is everything the renderer shows for one status report.
type StatusView struct {
	Report *types.StatusReport

	SourceRoot string

	// ConfigSource is the merged config file path, or "defaults"
	ConfigSource string
}

// Renderer writes views in one of the supported formats.
type Renderer struct {
	writer io.Writer
	format Format
}

// NewRenderer creates a renderer. FormatAuto resolves against the
// writer: real terminals get styling, everything else plain text.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		} else {
			format = FormatText
		}
	}
	return &Renderer{writer: w, format: format}
}

func (r *Renderer) styled() bool {
	return r.format == FormatTerminal
}

// actionVerbs gives each action its reporting phrase, in past tense
// for applied runs and conditional for dry runs.
var actionVerbs = map[types.Action]struct {
	Past   string
	Future string
}{
	types.ActionNone:       {Past: "already linked to", Future: "already linked to"},
	types.ActionCreate:     {Past: "linked to", Future: "would link to"},
	types.ActionRelink:     {Past: "relinked to", Future: "would relink to"},
	types.ActionBackupLink: {Past: "backed up and linked to", Future: "would back up and link to"},
}

// RenderEnforce writes one enforce run.
func (r *Renderer) RenderEnforce(view RunView) error {
	if r.format == FormatJSON {
		return r.renderRunJSON(view)
	}

	title := "enforce"
	if view.Result.DryRun {
		title = "enforce (dry run)"
	}
	if r.styled() {
		title = titleStyle.Render(title)
	}
	if _, err := fmt.Fprintln(r.writer, title); err != nil {
		return err
	}
	if err := r.renderProvenance(view.SourceRoot, view.ConfigSource); err != nil {
		return err
	}

	if len(view.Result.Outcomes) == 0 {
		_, err := fmt.Fprintln(r.writer, "\nno links declared")
		return err
	}

	if _, err := fmt.Fprintln(r.writer); err != nil {
		return err
	}
	for _, o := range view.Result.Outcomes {
		if err := r.renderOutcome(o, view.Result.DryRun); err != nil {
			return err
		}
	}

	return r.renderRunSummary(view.Result)
}

// renderOutcome writes one per-mapping line:
// indicator, name, message.
func (r *Renderer) renderOutcome(o types.Outcome, dryRun bool) error {
	_, err := fmt.Fprintf(r.writer, "  %s %-14s %s\n",
		r.outcomeIndicator(o, dryRun), o.Mapping.Name, r.outcomeMessage(o, dryRun))
	return err
}

func (r *Renderer) outcomeIndicator(o types.Outcome, dryRun bool) string {
	switch {
	case o.Err != nil:
		if r.styled() {
			return errorStyle.Render("✗")
		}
		return "✗"
	case dryRun && o.Action != types.ActionNone:
		if r.styled() {
			return mutedStyle.Render("○")
		}
		return "○"
	case dryRun || o.VerifiedState == types.LinkCorrect:
		if r.styled() {
			return successStyle.Render("✓")
		}
		return "✓"
	default:
		if r.styled() {
			return warningStyle.Render("!")
		}
		return "!"
	}
}

func (r *Renderer) outcomeMessage(o types.Outcome, dryRun bool) string {
	if o.Err != nil {
		return o.Err.Error()
	}

	verbs := actionVerbs[o.Action]
	verb := verbs.Past
	if dryRun {
		verb = verbs.Future
	}

	target := o.Mapping.Source
	if r.styled() {
		target = pathStyle.Render(target)
	}
	msg := fmt.Sprintf("%s %s", verb, target)

	if o.BackupPath != "" {
		msg += fmt.Sprintf(" (previous content at %s)", o.BackupPath)
	}
	if o.Action == types.ActionRelink && o.PriorTarget != "" {
		msg += fmt.Sprintf(" (was %s)", o.PriorTarget)
	}
	if !dryRun && o.VerifiedState != types.LinkCorrect {
		// An empty state means the verification probe itself failed
		state := o.VerifiedState
		if state == "" {
			state = "unknown"
		}
		msg += fmt.Sprintf(" [verification: %s]", state)
	}
	return msg
}

func (r *Renderer) renderRunSummary(result *types.RunResult) error {
	total := len(result.Outcomes)
	failed := len(result.StepErrors())

	if result.DryRun {
		planned := 0
		for _, o := range result.Outcomes {
			if o.Err == nil && o.Action != types.ActionNone {
				planned++
			}
		}
		_, err := fmt.Fprintf(r.writer, "\n%d mappings, %d changes planned\n", total, planned)
		return err
	}

	summary := fmt.Sprintf("\n%d mappings: %d converged, %d failed\n",
		total, total-failed-len(result.VerifyFailures()), failed)
	_, err := fmt.Fprint(r.writer, summary)
	return err
}

// RenderStatus writes one status report.
func (r *Renderer) RenderStatus(view StatusView) error {
	if r.format == FormatJSON {
		return r.renderStatusJSON(view)
	}

	title := "latch status"
	if r.styled() {
		title = titleStyle.Render(title)
	}
	if _, err := fmt.Fprintln(r.writer, title); err != nil {
		return err
	}
	if err := r.renderProvenance(view.SourceRoot, view.ConfigSource); err != nil {
		return err
	}

	report := view.Report
	if len(report.Mappings) == 0 {
		if _, err := fmt.Fprintln(r.writer, "\nno links declared"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(r.writer); err != nil {
			return err
		}
		r.renderStatusTable(report.Mappings)
	}

	if report.Marker != nil {
		if err := r.renderMarker(report.Marker); err != nil {
			return err
		}
	}

	return r.renderStatusSummary(report)
}

// renderStatusTable writes the per-mapping table. Styled runs color
// the state cell through tablewriter's own color support, which keeps
// column widths correct.
func (r *Renderer) renderStatusTable(mappings []types.MappingStatus) {
	table := tablewriter.NewWriter(r.writer)
	table.SetHeader([]string{"Name", "State", "Target"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, m := range mappings {
		state := string(m.Classification)
		if m.State == types.LinkOccupied {
			state = fmt.Sprintf("%s (occupied)", m.Classification)
		}

		target := m.CurrentTarget
		if target == "" {
			target = "-"
		}

		row := []string{m.Mapping.Name, state, target}
		if r.styled() {
			table.Rich(row, []tablewriter.Colors{{}, stateCellColors(m.Classification), {}})
		} else {
			table.Append(row)
		}
	}

	table.Render()
}

func stateCellColors(c types.Classification) tablewriter.Colors {
	switch c {
	case types.ClassActive:
		return tablewriter.Colors{tablewriter.Bold, tablewriter.FgGreenColor}
	case types.ClassMisdirected:
		return tablewriter.Colors{tablewriter.Bold, tablewriter.FgYellowColor}
	default:
		return tablewriter.Colors{tablewriter.FgHiBlackColor}
	}
}

func (r *Renderer) renderMarker(marker *types.MarkerStatus) error {
	presence := "absent"
	if marker.Present {
		presence = "present"
	}
	line := fmt.Sprintf("\nlocal override marker %s at %s", presence, marker.Path)
	if r.styled() && marker.Present {
		line = fmt.Sprintf("\nlocal override marker %s at %s",
			warningStyle.Render(presence), marker.Path)
	}
	_, err := fmt.Fprintln(r.writer, line)
	return err
}

func (r *Renderer) renderStatusSummary(report *types.StatusReport) error {
	active := 0
	for _, m := range report.Mappings {
		if m.Classification == types.ClassActive {
			active++
		}
	}

	summary := fmt.Sprintf("\n%d mappings, %d active\n", len(report.Mappings), active)
	if report.Converged() && len(report.Mappings) > 0 {
		summary = fmt.Sprintf("\n%d mappings, all active\n", len(report.Mappings))
	}
	_, err := fmt.Fprint(r.writer, summary)
	return err
}

func (r *Renderer) renderProvenance(sourceRoot, configSource string) error {
	line := fmt.Sprintf("source: %s (config: %s)", sourceRoot, configSource)
	if r.styled() {
		line = mutedStyle.Render(line)
	}
	_, err := fmt.Fprintln(r.writer, line)
	return err
}
