package tracker

import (
	"context"
	"sort"
	"time"

	"timetrack/internal/domain"
)

// Summarize totals active time per entity for the period, clipping every
// interval to the reporting window. Live sessions contribute up to now
// without requiring a write. Projects order by priority then name;
// background tasks are listed separately.
func (t *trackerImpl) Summarize(ctx context.Context, period domain.Period) (*SummaryReport, error) {
	now := t.now()
	window := period.Window(now, t.weekStart)

	entities, sessions, err := t.loadCatalogAndSessions(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]*EntityTotal)
	for _, session := range sessions {
		d := session.DurationInWindow(window, now)
		if d <= 0 {
			continue
		}
		entity, ok := entities[session.EntityID]
		if !ok {
			continue
		}
		row, ok := totals[session.EntityID]
		if !ok {
			row = &EntityTotal{Entity: entity}
			totals[session.EntityID] = row
		}
		row.Total += d
		row.Sessions++
		if session.Status == domain.StatusRunning {
			row.Running = true
		}
	}

	report := &SummaryReport{Period: period, Window: window}
	for _, row := range totals {
		report.Total += row.Total
		if row.Entity.IsBackground() {
			report.Background = append(report.Background, *row)
		} else {
			report.Projects = append(report.Projects, *row)
		}
	}
	sortEntityTotals(report.Projects)
	sortEntityTotals(report.Background)
	return report, nil
}

// SummarizeByTag fans project totals out to their tags: a project carrying
// several tags contributes its full total to each, so tag totals may exceed
// the overall total. Untagged projects collect in a final Untagged bucket.
// Background tasks carry no meaningful tags and are excluded entirely.
func (t *trackerImpl) SummarizeByTag(ctx context.Context, period domain.Period) (*TagReport, error) {
	summary, err := t.Summarize(ctx, period)
	if err != nil {
		return nil, err
	}

	byTag := make(map[string]*TagTotal)
	addTo := func(tag string, row EntityTotal) {
		bucket, ok := byTag[tag]
		if !ok {
			bucket = &TagTotal{Tag: tag}
			byTag[tag] = bucket
		}
		bucket.Total += row.Total
		bucket.Entities++
	}

	report := &TagReport{Period: period, Window: summary.Window}
	for _, row := range summary.Projects {
		report.Total += row.Total
		if len(row.Entity.Tags) == 0 {
			addTo(UntaggedLabel, row)
			continue
		}
		for _, tag := range row.Entity.Tags {
			addTo(tag, row)
		}
	}

	for _, bucket := range byTag {
		report.Rows = append(report.Rows, *bucket)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		// Untagged always sorts last.
		if report.Rows[i].Tag == UntaggedLabel {
			return false
		}
		if report.Rows[j].Tag == UntaggedLabel {
			return true
		}
		return report.Rows[i].Tag < report.Rows[j].Tag
	})
	return report, nil
}

// SummarizeByDay buckets active time per calendar day within the period. A
// session spanning midnight contributes the overlapping portion to each day.
func (t *trackerImpl) SummarizeByDay(ctx context.Context, period domain.Period) (*DayReport, error) {
	now := t.now()
	window := period.Window(now, t.weekStart)

	_, sessions, err := t.loadCatalogAndSessions(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]time.Duration)
	for _, session := range sessions {
		if session.DurationInWindow(window, now) <= 0 {
			continue
		}
		for day := range daysTouched(session, window, now) {
			dayWindow := intersect(domain.DayWindow(day), window)
			if d := session.DurationInWindow(dayWindow, now); d > 0 {
				byDay[day] += d
			}
		}
	}

	report := &DayReport{Period: period, Window: window}
	for day, total := range byDay {
		report.Rows = append(report.Rows, DayTotal{Day: day, Total: total})
		report.Total += total
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].Day.Before(report.Rows[j].Day)
	})
	return report, nil
}

// ListSessions returns sessions overlapping the period, most recent first.
func (t *trackerImpl) ListSessions(ctx context.Context, period domain.Period, limit int) ([]*SessionDetail, error) {
	now := t.now()
	window := period.Window(now, t.weekStart)

	entities, sessions, err := t.loadCatalogAndSessions(ctx)
	if err != nil {
		return nil, err
	}

	var details []*SessionDetail
	for _, session := range sessions {
		if !session.IntersectsWindow(window, now) {
			continue
		}
		entity, ok := entities[session.EntityID]
		if !ok {
			continue
		}
		details = append(details, &SessionDetail{
			Entity:  entity,
			Session: session,
			Start:   session.StartTime(),
			End:     session.EndTime(),
			Active:  session.ActiveDuration(now),
		})
	}

	// Most recent first: open sessions ahead of closed ones, then by end,
	// then by start.
	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if (a.End == nil) != (b.End == nil) {
			return a.End == nil
		}
		if a.End != nil && b.End != nil && !a.End.Equal(*b.End) {
			return a.End.After(*b.End)
		}
		return a.Start.After(b.Start)
	})

	if limit > 0 && len(details) > limit {
		details = details[:limit]
	}
	return details, nil
}

// loadCatalogAndSessions reads entities (keyed by ID, tags loaded) and the
// replayed sessions in one pass.
func (t *trackerImpl) loadCatalogAndSessions(ctx context.Context) (map[int64]domain.Entity, []*domain.Session, error) {
	entityList, err := t.ListEntities(ctx)
	if err != nil {
		return nil, nil, err
	}
	entities := make(map[int64]domain.Entity, len(entityList))
	for _, entity := range entityList {
		entities[entity.ID] = entity
	}

	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return nil, nil, err
	}
	return entities, sessions, nil
}

func sortEntityTotals(rows []EntityTotal) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Entity.Priority != rows[j].Entity.Priority {
			return rows[i].Entity.Priority < rows[j].Entity.Priority
		}
		return rows[i].Entity.Name < rows[j].Entity.Name
	})
}

// daysTouched yields the midnight of every calendar day a session's clipped
// intervals touch.
func daysTouched(session *domain.Session, window domain.Window, now time.Time) map[time.Time]struct{} {
	days := make(map[time.Time]struct{})
	for _, iv := range session.Intervals {
		start := iv.Start
		end := now
		if iv.End != nil {
			end = *iv.End
		}
		if !window.Start.IsZero() && start.Before(window.Start) {
			start = window.Start
		}
		if !window.End.IsZero() && end.After(window.End) {
			end = window.End
		}
		for day := domain.DayWindow(start).Start; day.Before(end); day = day.AddDate(0, 0, 1) {
			days[day] = struct{}{}
		}
	}
	return days
}

// intersect narrows one window by another.
func intersect(a, b domain.Window) domain.Window {
	out := a
	if !b.Start.IsZero() && (out.Start.IsZero() || b.Start.After(out.Start)) {
		out.Start = b.Start
	}
	if !b.End.IsZero() && (out.End.IsZero() || b.End.Before(out.End)) {
		out.End = b.End
	}
	return out
}
