// Package status derives the operator-facing view of managed mappings.
//
// Reporting is strictly read-only: every fact in a report comes from
// probing, and repeated reports leave the filesystem byte-for-byte
// untouched. Probe failures surface as errors. The one exception is the
// optional local-override marker, whose absence (or unreadability) is
// informational and deliberately swallowed.
package status

import (
	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/probe"
	"github.com/arthur-debert/latch/pkg/types"
)

// Reporter classifies managed mappings without mutating anything
type Reporter struct {
	prober *probe.Prober
	fs     types.FS
}

// New creates a Reporter over the given filesystem
func New(fs types.FS) *Reporter {
	return &Reporter{
		prober: probe.New(fs),
		fs:     fs,
	}
}

// Report probes every mapping in declaration order and classifies it.
// markerPath names the optional local-override marker file; empty
// disables the marker probe.
func (r *Reporter) Report(mappings []types.Mapping, markerPath string) (*types.StatusReport, error) {
	logger := logging.GetLogger("status")

	report := &types.StatusReport{
		Mappings: make([]types.MappingStatus, 0, len(mappings)),
	}

	for _, m := range mappings {
		state, target, err := r.prober.Probe(m.LinkPath, m.Source)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess,
				"failed to probe mapping %s", m.Name)
		}

		report.Mappings = append(report.Mappings, types.MappingStatus{
			Mapping:        m,
			State:          state,
			Classification: types.Classify(state),
			CurrentTarget:  target,
		})
	}

	if markerPath != "" {
		present := false
		if _, err := r.fs.Stat(markerPath); err == nil {
			present = true
		} else {
			// Absence is informational, never an error
			logger.Debug().Str("marker", markerPath).Msg("override marker not present")
		}
		report.Marker = &types.MarkerStatus{
			Path:    markerPath,
			Present: present,
		}
	}

	return report, nil
}
