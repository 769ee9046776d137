package dashboard

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/codereport-dev/codereport/internal/policy"
	"github.com/codereport-dev/codereport/internal/report"
	"github.com/codereport-dev/codereport/pkg/shared/files"
)

// heatmapFileLimit caps the heatmap at the busiest files so the table stays
// readable on large ledgers.
const heatmapFileLimit = 30

// Stats are the dashboard KPI counters. Expired and ExpiringSoon count open
// reports only, using the same evaluator the CI gate uses.
type Stats struct {
	Total        int
	Open         int
	Resolved     int
	Blocking     int
	Expired      int
	ExpiringSoon int
}

// TagBar is one row of the per-tag bar chart.
type TagBar struct {
	Tag     string
	Count   int
	Percent float64
}

// HeatmapCell is one file×tag cell.
type HeatmapCell struct {
	Tag   string
	Count int
	Level string
}

// HeatmapRow is one file row of the heatmap.
type HeatmapRow struct {
	Path  string
	Cells []HeatmapCell
}

type pageData struct {
	GeneratedAt string
	Stats       Stats
	TagBars     []TagBar
	Tags        []string
	Rows        []HeatmapRow
}

// ComputeStats aggregates the KPI counters over all reports.
func ComputeStats(entries []report.Report, ev *policy.Evaluator) Stats {
	var stats Stats
	stats.Total = len(entries)
	for i := range entries {
		e := ev.Evaluate(&entries[i])
		if e.IsOpen {
			stats.Open++
		} else {
			stats.Resolved++
		}
		if e.IsBlocking {
			stats.Blocking++
		}
		if !e.IsOpen {
			continue
		}
		switch e.ExpirationState {
		case policy.ExpirationExpired:
			stats.Expired++
		case policy.ExpirationSoon:
			stats.ExpiringSoon++
		}
	}
	return stats
}

// Generate renders the dashboard under <repo>/.codereports/html and returns
// the path of the index file.
func Generate(repoRoot string, entries []report.Report, ev *policy.Evaluator, logger hclog.Logger) (string, error) {
	data := pageData{
		GeneratedAt: ev.Today.Format(report.DateFormat),
		Stats:       ComputeStats(entries, ev),
	}
	data.TagBars, data.Tags = tagBars(entries)
	data.Rows = heatmapRows(entries, data.Tags)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render dashboard: %w", err)
	}

	outDir := filepath.Join(repoRoot, report.DataDirName, "html")
	if err := files.CreateFolderIfNotExists(outDir); err != nil {
		return "", err
	}
	indexPath := filepath.Join(outDir, "index.html")
	if err := files.WriteFileAtomic(indexPath, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	logger.Debug("dashboard generated", "path", indexPath, "reports", len(entries))
	return indexPath, nil
}

// tagBars returns the per-tag counts sorted by count descending, plus the
// ordered tag names for the heatmap header.
func tagBars(entries []report.Report) ([]TagBar, []string) {
	counts := make(map[string]int)
	for i := range entries {
		counts[entries[i].Tag]++
	}

	bars := make([]TagBar, 0, len(counts))
	for tag, n := range counts {
		bars = append(bars, TagBar{Tag: tag, Count: n})
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Count != bars[j].Count {
			return bars[i].Count > bars[j].Count
		}
		return bars[i].Tag < bars[j].Tag
	})

	max := 1
	if len(bars) > 0 {
		max = bars[0].Count
	}
	tags := make([]string, 0, len(bars))
	for i := range bars {
		bars[i].Percent = float64(bars[i].Count) / float64(max) * 100
		tags = append(tags, bars[i].Tag)
	}
	return bars, tags
}

// heatmapRows returns file×tag counts for the busiest files.
func heatmapRows(entries []report.Report, tags []string) []HeatmapRow {
	fileCounts := make(map[string]int)
	cells := make(map[string]map[string]int)
	for i := range entries {
		e := &entries[i]
		fileCounts[e.Path]++
		if cells[e.Path] == nil {
			cells[e.Path] = make(map[string]int)
		}
		cells[e.Path][e.Tag]++
	}

	paths := make([]string, 0, len(fileCounts))
	for p := range fileCounts {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if fileCounts[paths[i]] != fileCounts[paths[j]] {
			return fileCounts[paths[i]] > fileCounts[paths[j]]
		}
		return paths[i] < paths[j]
	})
	if len(paths) > heatmapFileLimit {
		paths = paths[:heatmapFileLimit]
	}

	rows := make([]HeatmapRow, 0, len(paths))
	for _, p := range paths {
		row := HeatmapRow{Path: p}
		for _, tag := range tags {
			row.Cells = append(row.Cells, HeatmapCell{
				Tag:   tag,
				Count: cells[p][tag],
				Level: heatLevel(cells[p][tag]),
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func heatLevel(count int) string {
	switch {
	case count >= 3:
		return "hi"
	case count == 2:
		return "mid"
	case count == 1:
		return "lo"
	default:
		return ""
	}
}
