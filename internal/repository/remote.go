package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tallyhq/tally/internal/domain"
)

// RemoteStore is the REST client for a remote time-entry store. It implements
// the same adapter interfaces as the SQLite store, so services are unaware of
// which backend they run against.
type RemoteStore struct {
	baseURL string
	client  *http.Client
}

// NewRemoteStore creates a RemoteStore for the given base URL, e.g.
// "https://api.example.com/v1". A nil client gets a 15s-timeout default.
func NewRemoteStore(baseURL string, client *http.Client) *RemoteStore {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// timeEntryDTO is the wire shape for time entries.
type timeEntryDTO struct {
	ID                string     `json:"id,omitempty"`
	TaskID            string     `json:"taskId"`
	EmployeeID        string     `json:"employeeId,omitempty"`
	ProjectID         string     `json:"projectId,omitempty"`
	WorkDate          string     `json:"workDate"`
	StartTime         time.Time  `json:"startTime"`
	EndTime           time.Time  `json:"endTime"`
	OriginalStartTime *time.Time `json:"originalStartTime,omitempty"`
	OriginalEndTime   *time.Time `json:"originalEndTime,omitempty"`
	DurationMinutes   int        `json:"durationMinutes"`
	Description       string     `json:"description,omitempty"`
	CreatedAt         time.Time  `json:"createdAt,omitempty"`
	UpdatedAt         time.Time  `json:"updatedAt,omitempty"`
}

func toEntryDTO(e *domain.TimeEntry) timeEntryDTO {
	return timeEntryDTO{
		ID:                e.ID,
		TaskID:            e.TaskID,
		EmployeeID:        e.EmployeeID,
		ProjectID:         e.ProjectID,
		WorkDate:          e.WorkDate,
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		OriginalStartTime: e.OriginalStartTime,
		OriginalEndTime:   e.OriginalEndTime,
		DurationMinutes:   e.DurationMinutes,
		Description:       e.Description,
	}
}

func (d timeEntryDTO) toDomain() *domain.TimeEntry {
	return &domain.TimeEntry{
		ID:                d.ID,
		TaskID:            d.TaskID,
		EmployeeID:        d.EmployeeID,
		ProjectID:         d.ProjectID,
		WorkDate:          d.WorkDate,
		StartTime:         d.StartTime,
		EndTime:           d.EndTime,
		OriginalStartTime: d.OriginalStartTime,
		OriginalEndTime:   d.OriginalEndTime,
		DurationMinutes:   d.DurationMinutes,
		Description:       d.Description,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (s *RemoteStore) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	var out timeEntryDTO
	if err := s.do(ctx, http.MethodPost, "/time-entries", nil, toEntryDTO(e), &out); err != nil {
		return nil, fmt.Errorf("creating time entry: %w", err)
	}
	return out.toDomain(), nil
}

func (s *RemoteStore) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	var out timeEntryDTO
	if err := s.do(ctx, http.MethodGet, "/time-entries/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching time entry: %w", err)
	}
	return out.toDomain(), nil
}

func (s *RemoteStore) List(ctx context.Context, f EntryFilter) ([]*domain.TimeEntry, error) {
	q := url.Values{}
	setIf(q, "taskId", f.TaskID)
	setIf(q, "employeeId", f.EmployeeID)
	setIf(q, "projectId", f.ProjectID)
	setIf(q, "startDate", f.StartDate)
	setIf(q, "endDate", f.EndDate)

	var out []timeEntryDTO
	if err := s.do(ctx, http.MethodGet, "/time-entries", q, nil, &out); err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	entries := make([]*domain.TimeEntry, len(out))
	for i, d := range out {
		entries[i] = d.toDomain()
	}
	return entries, nil
}

func (s *RemoteStore) Update(ctx context.Context, e *domain.TimeEntry) error {
	if err := s.do(ctx, http.MethodPut, "/time-entries/"+url.PathEscape(e.ID), nil, toEntryDTO(e), nil); err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	return nil
}

func (s *RemoteStore) Delete(ctx context.Context, id string) error {
	if err := s.do(ctx, http.MethodDelete, "/time-entries/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return nil
}

type teamMemberDTO struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

func (s *RemoteStore) GetProjectTeam(ctx context.Context, projectID string) ([]*domain.TeamMember, error) {
	var out []teamMemberDTO
	path := "/projects/" + url.PathEscape(projectID) + "/team"
	if err := s.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching project team: %w", err)
	}
	members := make([]*domain.TeamMember, len(out))
	for i, d := range out {
		members[i] = &domain.TeamMember{
			EmployeeID: d.EmployeeID,
			Name:       d.Name,
			Source:     domain.TeamSourceMembership,
		}
	}
	return members, nil
}

func (s *RemoteStore) AddMember(ctx context.Context, projectID, employeeID string) error {
	path := "/projects/" + url.PathEscape(projectID) + "/team"
	body := teamMemberDTO{EmployeeID: employeeID}
	if err := s.do(ctx, http.MethodPost, path, nil, body, nil); err != nil {
		return fmt.Errorf("adding project member: %w", err)
	}
	return nil
}

type breakdownDTO struct {
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name"`
	Hours      float64 `json:"hours"`
	Cost       float64 `json:"cost"`
}

func (s *RemoteStore) GetEmployeeStats(ctx context.Context, projectID string) ([]*domain.EmployeeBreakdown, error) {
	var out []breakdownDTO
	path := "/projects/" + url.PathEscape(projectID) + "/employee-stats"
	if err := s.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching employee stats: %w", err)
	}
	stats := make([]*domain.EmployeeBreakdown, len(out))
	for i, d := range out {
		stats[i] = &domain.EmployeeBreakdown{
			EmployeeID: d.EmployeeID,
			Name:       d.Name,
			Hours:      d.Hours,
			Cost:       d.Cost,
		}
	}
	return stats, nil
}

type employeeDTO struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	MonthlySalary float64  `json:"monthlySalary"`
	HourlyRate    *float64 `json:"hourlyRate,omitempty"`
}

func (s *RemoteStore) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	var out employeeDTO
	body := employeeDTO{ID: e.ID, Name: e.Name, MonthlySalary: e.MonthlySalary, HourlyRate: e.HourlyRate}
	if err := s.do(ctx, http.MethodPost, "/employees", nil, body, &out); err != nil {
		return fmt.Errorf("creating employee: %w", err)
	}
	if out.ID != "" {
		e.ID = out.ID
	}
	return nil
}

func (s *RemoteStore) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	var out employeeDTO
	if err := s.do(ctx, http.MethodGet, "/employees/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching employee: %w", err)
	}
	return &domain.Employee{ID: out.ID, Name: out.Name, MonthlySalary: out.MonthlySalary, HourlyRate: out.HourlyRate}, nil
}

func (s *RemoteStore) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	var out []employeeDTO
	if err := s.do(ctx, http.MethodGet, "/employees", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	employees := make([]*domain.Employee, len(out))
	for i, d := range out {
		employees[i] = &domain.Employee{ID: d.ID, Name: d.Name, MonthlySalary: d.MonthlySalary, HourlyRate: d.HourlyRate}
	}
	return employees, nil
}

// RemoteEmployeeRepo adapts RemoteStore's employee endpoints to the
// EmployeeRepo interface. A separate type is needed because the method set
// of RemoteStore is already claimed by the time entry operations.
type RemoteEmployeeRepo struct {
	store *RemoteStore
}

func NewRemoteEmployeeRepo(store *RemoteStore) *RemoteEmployeeRepo {
	return &RemoteEmployeeRepo{store: store}
}

func (r *RemoteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	return r.store.CreateEmployee(ctx, e)
}

func (r *RemoteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return r.store.GetEmployee(ctx, id)
}

func (r *RemoteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	return r.store.ListEmployees(ctx)
}

type projectDTO struct {
	ID       string  `json:"id,omitempty"`
	ClientID string  `json:"clientId,omitempty"`
	Name     string  `json:"name"`
	Budget   float64 `json:"budget"`
}

func (s *RemoteStore) CreateProject(ctx context.Context, p *domain.Project) error {
	var out projectDTO
	body := projectDTO{ID: p.ID, ClientID: p.ClientID, Name: p.Name, Budget: p.Budget}
	if err := s.do(ctx, http.MethodPost, "/projects", nil, body, &out); err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	if out.ID != "" {
		p.ID = out.ID
	}
	return nil
}

func (s *RemoteStore) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var out projectDTO
	if err := s.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	return &domain.Project{ID: out.ID, ClientID: out.ClientID, Name: out.Name, Budget: out.Budget}, nil
}

func (s *RemoteStore) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	var out []projectDTO
	if err := s.do(ctx, http.MethodGet, "/projects", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	projects := make([]*domain.Project, len(out))
	for i, d := range out {
		projects[i] = &domain.Project{ID: d.ID, ClientID: d.ClientID, Name: d.Name, Budget: d.Budget}
	}
	return projects, nil
}

type taskDTO struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
}

func (s *RemoteStore) CreateTask(ctx context.Context, t *domain.Task) error {
	var out taskDTO
	body := taskDTO{ID: t.ID, ProjectID: t.ProjectID, Name: t.Name}
	if err := s.do(ctx, http.MethodPost, "/tasks", nil, body, &out); err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	if out.ID != "" {
		t.ID = out.ID
	}
	return nil
}

func (s *RemoteStore) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var out taskDTO
	if err := s.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	return &domain.Task{ID: out.ID, ProjectID: out.ProjectID, Name: out.Name}, nil
}

func (s *RemoteStore) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	q := url.Values{}
	setIf(q, "projectId", projectID)
	var out []taskDTO
	if err := s.do(ctx, http.MethodGet, "/tasks", q, nil, &out); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	tasks := make([]*domain.Task, len(out))
	for i, d := range out {
		tasks[i] = &domain.Task{ID: d.ID, ProjectID: d.ProjectID, Name: d.Name}
	}
	return tasks, nil
}

// RemoteProjectRepo adapts RemoteStore's project endpoints to ProjectRepo,
// for the same method-set reason as RemoteEmployeeRepo.
type RemoteProjectRepo struct {
	store *RemoteStore
}

func NewRemoteProjectRepo(store *RemoteStore) *RemoteProjectRepo {
	return &RemoteProjectRepo{store: store}
}

func (r *RemoteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return r.store.CreateProject(ctx, p)
}

func (r *RemoteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.store.GetProject(ctx, id)
}

func (r *RemoteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	return r.store.ListProjects(ctx)
}

// RemoteTaskRepo adapts RemoteStore's task endpoints to TaskRepo.
type RemoteTaskRepo struct {
	store *RemoteStore
}

func NewRemoteTaskRepo(store *RemoteStore) *RemoteTaskRepo {
	return &RemoteTaskRepo{store: store}
}

func (r *RemoteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return r.store.CreateTask(ctx, t)
}

func (r *RemoteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.store.GetTask(ctx, id)
}

func (r *RemoteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return r.store.ListTasks(ctx, projectID)
}

// Compile-time interface checks.
var (
	_ TimeEntryRepo = (*RemoteStore)(nil)
	_ TeamRepo      = (*RemoteStore)(nil)
	_ EmployeeRepo  = (*RemoteEmployeeRepo)(nil)
	_ ProjectRepo   = (*RemoteProjectRepo)(nil)
	_ TaskRepo      = (*RemoteTaskRepo)(nil)
	_ TimeEntryRepo = (*SQLiteTimeEntryRepo)(nil)
	_ TeamRepo      = (*SQLiteTeamRepo)(nil)
	_ EmployeeRepo  = (*SQLiteEmployeeRepo)(nil)
	_ ProjectRepo   = (*SQLiteProjectRepo)(nil)
	_ TaskRepo      = (*SQLiteTaskRepo)(nil)
)

// do issues one JSON request. 404 maps to ErrNotFound; other non-2xx
// statuses surface the response body.
func (s *RemoteStore) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func setIf(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}
