package domain

// TeamSource identifies which resolution strategy produced a team member.
type TeamSource string

const (
	TeamSourceMembership TeamSource = "membership"
	TeamSourceStats      TeamSource = "stats"
	TeamSourceEntries    TeamSource = "entries"
)

// AggregationView selects the bucketing granularity for summaries.
type AggregationView string

const (
	ViewDay   AggregationView = "day"
	ViewWeek  AggregationView = "week"
	ViewMonth AggregationView = "month"
)
