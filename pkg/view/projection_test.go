package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/xdr-console/pkg/models"
)

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func testEvent(hostname string, eventType models.EventType, severity models.Severity, agentID string) models.Event {
	return models.Event{
		Timestamp: testNow.Add(-30 * time.Minute),
		Hostname:  hostname,
		EventType: eventType,
		Severity:  severity,
		AgentID:   agentID,
	}
}

func sampleEvents() []models.Event {
	return []models.Event{
		testEvent("web-01", models.EventTypeNetwork, models.SeverityHigh, "a1"),
		testEvent("db-02", models.EventTypeProcess, models.SeverityLow, "a2"),
		testEvent("prod-api-03", models.EventTypeSystem, models.SeverityCritical, "a3"),
	}
}

func TestProjectEmptyDataset(t *testing.T) {
	proj := Project(nil, NewFilters(), testNow)

	assert.Empty(t, proj.Filtered)
	assert.Empty(t, proj.TypeCounts)
	assert.Zero(t, proj.Skipped)

	for _, s := range models.Severities {
		assert.Zero(t, proj.SeverityCounts[s])
	}
}

func TestProjectNoFiltersKeepsAll(t *testing.T) {
	events := sampleEvents()
	proj := Project(events, NewFilters(), testNow)

	assert.Equal(t, events, proj.Filtered)
}

func TestProjectSearchNarrows(t *testing.T) {
	events := []models.Event{
		testEvent("web-01", models.EventTypeNetwork, models.SeverityHigh, "a1"),
		testEvent("db-02", models.EventTypeProcess, models.SeverityLow, "a2"),
	}

	f := NewFilters()
	f.Set(FilterSearch, "DB")

	proj := Project(events, f, testNow)

	require.Len(t, proj.Filtered, 1)
	assert.Equal(t, "db-02", proj.Filtered[0].Hostname)
}

func TestProjectSearchCoversAgentAndProcess(t *testing.T) {
	withProcess := testEvent("web-01", models.EventTypeProcess, models.SeverityLow, "a1")
	withProcess.ProcessName = "nginx"

	events := []models.Event{
		withProcess,
		testEvent("db-02", models.EventTypeSystem, models.SeverityLow, "agent-nine"),
	}

	f := NewFilters()
	f.Set(FilterSearch, "nginx")
	assert.Len(t, Project(events, f, testNow).Filtered, 1)

	f.Set(FilterSearch, "NINE")
	proj := Project(events, f, testNow)
	require.Len(t, proj.Filtered, 1)
	assert.Equal(t, "agent-nine", proj.Filtered[0].AgentID)
}

func TestProjectSeverityHostnameConjunction(t *testing.T) {
	events := []models.Event{
		testEvent("prod-web-01", models.EventTypeNetwork, models.SeverityCritical, "a1"),
		testEvent("prod-db-02", models.EventTypeProcess, models.SeverityLow, "a2"),
		testEvent("staging-01", models.EventTypeSystem, models.SeverityCritical, "a3"),
	}

	f := NewFilters()
	f.Set(FilterSeverity, "critical")
	f.Set(FilterHostname, "prod")

	proj := Project(events, f, testNow)

	require.Len(t, proj.Filtered, 1)
	assert.Equal(t, "prod-web-01", proj.Filtered[0].Hostname)
}

func TestProjectDateCutoff(t *testing.T) {
	events := []models.Event{
		{Timestamp: time.Date(2024, 1, 10, 11, 30, 0, 0, time.UTC), Hostname: "h1", AgentID: "a1"},
		{Timestamp: time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC), Hostname: "h2", AgentID: "a2"},
		{Timestamp: time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), Hostname: "h3", AgentID: "a3"},
	}

	f := NewFilters()
	f.Set(FilterDateRange, string(RangeSixH))

	proj := Project(events, f, testNow)

	require.Len(t, proj.Filtered, 2)
	assert.Equal(t, "h1", proj.Filtered[0].Hostname)
	assert.Equal(t, "h2", proj.Filtered[1].Hostname)
}

func TestProjectDefaultRangeAppliesCutoff(t *testing.T) {
	events := []models.Event{
		{Timestamp: testNow.Add(-time.Hour), Hostname: "fresh", AgentID: "a1"},
		{Timestamp: testNow.Add(-48 * time.Hour), Hostname: "stale", AgentID: "a2"},
	}

	proj := Project(events, NewFilters(), testNow)

	require.Len(t, proj.Filtered, 1)
	assert.Equal(t, "fresh", proj.Filtered[0].Hostname)
}

func TestProjectPreservesOrderAndSubset(t *testing.T) {
	events := sampleEvents()

	f := NewFilters()
	f.Set(FilterSearch, "0") // matches all three hostnames

	proj := Project(events, f, testNow)

	// Subsequence of the input: same order, only members.
	i := 0
	for _, e := range proj.Filtered {
		for i < len(events) && events[i].Hostname != e.Hostname {
			i++
		}
		require.Less(t, i, len(events), "filtered event %q not found in input order", e.Hostname)
		i++
	}
}

func TestProjectIdempotent(t *testing.T) {
	events := sampleEvents()

	f := NewFilters()
	f.Set(FilterEventType, "network")

	once := Project(events, f, testNow)
	twice := Project(once.Filtered, f, testNow)

	assert.Equal(t, once.Filtered, twice.Filtered)
	assert.Equal(t, once.SeverityCounts, twice.SeverityCounts)
	assert.Equal(t, once.TypeCounts, twice.TypeCounts)
}

func TestProjectCounts(t *testing.T) {
	events := append(sampleEvents(),
		testEvent("web-02", models.EventTypeNetwork, models.SeverityHigh, "a4"),
		testEvent("weird-01", models.EventType("registry"), models.Severity("catastrophic"), "a5"),
	)

	proj := Project(events, NewFilters(), testNow)

	// sum(typeCounts) == |filtered|, unknown severities included.
	typeSum := 0
	for _, n := range proj.TypeCounts {
		typeSum += n
	}
	assert.Equal(t, len(proj.Filtered), typeSum)

	assert.Equal(t, 2, proj.TypeCounts[models.EventTypeNetwork])
	assert.Equal(t, 1, proj.TypeCounts[models.EventType("registry")])

	// severityCounts covers exactly the known domain; the unknown severity
	// is dropped, so the sum stays below the filtered count.
	assert.Equal(t, 2, proj.SeverityCounts[models.SeverityHigh])
	assert.Equal(t, 1, proj.SeverityCounts[models.SeverityLow])
	assert.Equal(t, 1, proj.SeverityCounts[models.SeverityCritical])
	assert.Zero(t, proj.SeverityCounts[models.SeverityMedium])

	sevSum := 0
	for _, n := range proj.SeverityCounts {
		sevSum += n
	}
	assert.Equal(t, len(proj.Filtered)-1, sevSum)
}

func TestProjectSkipsMalformedEvents(t *testing.T) {
	events := []models.Event{
		testEvent("ok-01", models.EventTypeSystem, models.SeverityLow, "a1"),
		{Hostname: "no-timestamp", AgentID: "a2"}, // zero timestamp
	}

	proj := Project(events, NewFilters(), testNow)

	require.Len(t, proj.Filtered, 1)
	assert.Equal(t, 1, proj.Skipped)
}

func TestProjectEventTypeCaseSensitive(t *testing.T) {
	events := []models.Event{
		testEvent("web-01", models.EventTypeNetwork, models.SeverityLow, "a1"),
	}

	f := NewFilters()
	f.Set(FilterEventType, "Network")

	assert.Empty(t, Project(events, f, testNow).Filtered)
}
