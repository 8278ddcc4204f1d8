package display

import (
	"encoding/json"
	"fmt"
)

// JSON output shapes. Field names are part of the machine interface
// and stay stable independently of the internal type names.

type outcomeJSON struct {
	Name          string `json:"name"`
	Source        string `json:"source"`
	LinkPath      string `json:"link_path"`
	PriorState    string `json:"prior_state"`
	Action        string `json:"action"`
	FinalState    string `json:"final_state"`
	VerifiedState string `json:"verified_state,omitempty"`
	BackupPath    string `json:"backup_path,omitempty"`
	Error         string `json:"error,omitempty"`
}

type runJSON struct {
	SourceRoot   string        `json:"source_root"`
	ConfigSource string        `json:"config_source"`
	DryRun       bool          `json:"dry_run"`
	Converged    bool          `json:"converged"`
	ExitCode     int           `json:"exit_code"`
	Outcomes     []outcomeJSON `json:"outcomes"`
}

type mappingJSON struct {
	Name           string `json:"name"`
	Source         string `json:"source"`
	LinkPath       string `json:"link_path"`
	State          string `json:"state"`
	Classification string `json:"classification"`
	CurrentTarget  string `json:"current_target,omitempty"`
}

type markerJSON struct {
	Path    string `json:"path"`
	Present bool   `json:"present"`
}

type statusJSON struct {
	SourceRoot   string        `json:"source_root"`
	ConfigSource string        `json:"config_source"`
	Converged    bool          `json:"converged"`
	Mappings     []mappingJSON `json:"mappings"`
	Marker       *markerJSON   `json:"marker,omitempty"`
}

func (r *Renderer) renderRunJSON(view RunView) error {
	out := runJSON{
		SourceRoot:   view.SourceRoot,
		ConfigSource: view.ConfigSource,
		DryRun:       view.Result.DryRun,
		Converged:    view.Result.Converged(),
		ExitCode:     view.Result.ExitCode(),
		Outcomes:     make([]outcomeJSON, 0, len(view.Result.Outcomes)),
	}

	for _, o := range view.Result.Outcomes {
		oj := outcomeJSON{
			Name:          o.Mapping.Name,
			Source:        o.Mapping.Source,
			LinkPath:      o.Mapping.LinkPath,
			PriorState:    string(o.PriorState),
			Action:        string(o.Action),
			FinalState:    string(o.FinalState),
			VerifiedState: string(o.VerifiedState),
			BackupPath:    o.BackupPath,
		}
		if o.Err != nil {
			oj.Error = o.Err.Error()
		}
		out.Outcomes = append(out.Outcomes, oj)
	}

	return r.writeJSON(out)
}

func (r *Renderer) renderStatusJSON(view StatusView) error {
	report := view.Report
	out := statusJSON{
		SourceRoot:   view.SourceRoot,
		ConfigSource: view.ConfigSource,
		Converged:    report.Converged(),
		Mappings:     make([]mappingJSON, 0, len(report.Mappings)),
	}

	for _, m := range report.Mappings {
		out.Mappings = append(out.Mappings, mappingJSON{
			Name:           m.Mapping.Name,
			Source:         m.Mapping.Source,
			LinkPath:       m.Mapping.LinkPath,
			State:          string(m.State),
			Classification: string(m.Classification),
			CurrentTarget:  m.CurrentTarget,
		})
	}

	if report.Marker != nil {
		out.Marker = &markerJSON{Path: report.Marker.Path, Present: report.Marker.Present}
	}

	return r.writeJSON(out)
}

func (r *Renderer) writeJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.writer, string(data))
	return err
}
