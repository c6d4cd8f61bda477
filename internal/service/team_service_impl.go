package service

import (
	"context"
	"sort"
	"time"

	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
)

type teamService struct {
	teams    repository.TeamRepo
	entries  repository.TimeEntryRepo
	observer UseCaseObserver
}

func NewTeamService(teams repository.TeamRepo, entries repository.TimeEntryRepo, observer UseCaseObserver) TeamService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &teamService{teams: teams, entries: entries, observer: observer}
}

// ResolveTeam resolves a project's team through an ordered chain of
// strategies: the authoritative membership store, then the store-computed
// employee breakdown, then grouping the project's raw entries by employee.
// A strategy error counts as an empty result and the next strategy runs; an
// empty team after all three is a valid outcome, not an error.
func (s *teamService) ResolveTeam(ctx context.Context, projectID string) ([]*domain.TeamMember, error) {
	started := time.Now()

	strategies := []func(context.Context, string) []*domain.TeamMember{
		s.fromMembership,
		s.fromStats,
		s.fromEntries,
	}

	var team []*domain.TeamMember
	for _, strategy := range strategies {
		if team = strategy(ctx, projectID); len(team) > 0 {
			break
		}
	}

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "team_resolve",
		Duration:  time.Since(started),
		Success:   true,
		Fields:    map[string]any{"project_id": projectID, "members": len(team)},
		StartedAt: started,
	})
	return team, nil
}

func (s *teamService) fromMembership(ctx context.Context, projectID string) []*domain.TeamMember {
	members, err := s.teams.GetProjectTeam(ctx, projectID)
	if err != nil {
		return nil
	}
	return members
}

func (s *teamService) fromStats(ctx context.Context, projectID string) []*domain.TeamMember {
	stats, err := s.teams.GetEmployeeStats(ctx, projectID)
	if err != nil {
		return nil
	}
	members := make([]*domain.TeamMember, 0, len(stats))
	for _, b := range stats {
		members = append(members, &domain.TeamMember{
			EmployeeID:   b.EmployeeID,
			Name:         domain.CoalesceStr(b.Name, derivedName(b.EmployeeID)),
			Source:       domain.TeamSourceStats,
			TotalMinutes: int(b.Hours * 60),
			TotalCost:    b.Cost,
		})
	}
	return members
}

func (s *teamService) fromEntries(ctx context.Context, projectID string) []*domain.TeamMember {
	entries, err := s.entries.List(ctx, repository.EntryFilter{ProjectID: projectID})
	if err != nil {
		return nil
	}

	minutes := make(map[string]int)
	for _, e := range entries {
		if e.EmployeeID == "" {
			continue
		}
		minutes[e.EmployeeID] += e.DurationMinutes
	}

	members := make([]*domain.TeamMember, 0, len(minutes))
	for id, min := range minutes {
		members = append(members, &domain.TeamMember{
			EmployeeID:   id,
			Name:         derivedName(id),
			Source:       domain.TeamSourceEntries,
			TotalMinutes: min,
		})
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].TotalMinutes > members[j].TotalMinutes
	})
	return members
}

// derivedName synthesizes a display name when only an employee ID is known.
func derivedName(employeeID string) string {
	short := employeeID
	if len(short) > 8 {
		short = short[:8]
	}
	return "Employee " + short
}
