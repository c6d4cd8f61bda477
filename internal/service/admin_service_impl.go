package service

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/internal/db"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
)

type adminService struct {
	uow       db.UnitOfWork
	projects  repository.ProjectRepo
	tasks     repository.TaskRepo
	employees repository.EmployeeRepo
	teams     repository.TeamRepo
	observer  UseCaseObserver
}

// NewAdminService manages reference records. CreateProject runs inside the
// unit of work so a project and its initial tasks commit together.
func NewAdminService(
	uow db.UnitOfWork,
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	employees repository.EmployeeRepo,
	teams repository.TeamRepo,
	observer UseCaseObserver,
) AdminService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &adminService{
		uow:       uow,
		projects:  projects,
		tasks:     tasks,
		employees: employees,
		teams:     teams,
		observer:  observer,
	}
}

func (s *adminService) CreateProject(ctx context.Context, p *domain.Project, taskNames []string) error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	var err error
	if s.uow != nil {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return createProjectWithTasks(ctx, repository.NewSQLiteProjectRepo(tx), repository.NewSQLiteTaskRepo(tx), p, taskNames)
		})
	} else {
		// Remote backends own their consistency; writes go straight through.
		err = createProjectWithTasks(ctx, s.projects, s.tasks, p, taskNames)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:    "project_create",
		Success: true,
		Fields:  map[string]any{"project_id": p.ID, "task_count": len(taskNames)},
	})
	return nil
}

func createProjectWithTasks(ctx context.Context, projects repository.ProjectRepo, tasks repository.TaskRepo, p *domain.Project, taskNames []string) error {
	if err := projects.Create(ctx, p); err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	for _, name := range taskNames {
		task := &domain.Task{ProjectID: p.ID, Name: name}
		if err := tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("creating task %q: %w", name, err)
		}
	}
	return nil
}

func (s *adminService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *adminService) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *adminService) AddEmployee(ctx context.Context, e *domain.Employee) error {
	if e.Name == "" {
		return fmt.Errorf("employee name is required")
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (s *adminService) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *adminService) AddMember(ctx context.Context, projectID, employeeID string) error {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return fmt.Errorf("looking up project: %w", err)
	}
	if err := s.teams.AddMember(ctx, projectID, employeeID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
