package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/driftwatch/internal/snapshot"
)

// Data is the evaluated dashboard of one project.
type Data struct {
	// ProjectID identifies the project.
	ProjectID string `json:"project_id"`
	// ProjectName is the human-facing project name.
	ProjectName string `json:"project_name"`
	// GeneratedAt is when the dashboard was evaluated.
	GeneratedAt time.Time `json:"generated_at"`
	// Panels holds the evaluated panels that succeeded.
	Panels []PanelData `json:"panels"`
}

// PanelData is one evaluated panel.
type PanelData struct {
	// Title labels the panel.
	Title string `json:"title"`
	// Kind is counter or plot.
	Kind PanelKind `json:"kind"`
	// Series holds one entry per panel value, in declaration order.
	Series []Series `json:"series"`
}

// BuildDashboard evaluates every panel of the project over the snapshot
// history. A panel whose field path misses is logged and skipped while
// its siblings proceed; any other failure aborts the build.
func BuildDashboard(project *Project, snaps []*snapshot.Snapshot, aggs *Aggregations, logger *slog.Logger) (*Data, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data := &Data{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		GeneratedAt: time.Now().UTC(),
		Panels:      make([]PanelData, 0, len(project.Panels)),
	}
	for _, panel := range project.Panels {
		if !panel.Kind.Valid() {
			return nil, fmt.Errorf("panel %q: %w: %q", panel.Title, ErrUnknownPanelKind, panel.Kind)
		}

		series := make([]Series, 0, len(panel.Values))
		skipped := false
		for _, value := range panel.Values {
			s, err := AggregatePanel(snaps, panel.Filter, value, panel.Agg, aggs)
			if errors.Is(err, ErrFieldNotFound) {
				logger.Warn("skipping panel",
					slog.String("panel", panel.Title),
					slog.String("error", err.Error()))
				skipped = true
				break
			}
			if err != nil {
				return nil, fmt.Errorf("panel %q: %w", panel.Title, err)
			}
			series = append(series, s)
		}
		if skipped {
			continue
		}
		data.Panels = append(data.Panels, PanelData{
			Title:  panel.Title,
			Kind:   panel.Kind,
			Series: series,
		})
	}
	return data, nil
}
