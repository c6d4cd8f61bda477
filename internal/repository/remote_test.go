package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/testutil"
)

func TestRemoteStore_CreateAndGet(t *testing.T) {
	var posted timeEntryDTO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/time-entries":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
			posted.ID = "srv-1"
			posted.CreatedAt = time.Now().UTC()
			posted.UpdatedAt = posted.CreatedAt
			json.NewEncoder(w).Encode(posted)
		case r.Method == http.MethodGet && r.URL.Path == "/time-entries/srv-1":
			json.NewEncoder(w).Encode(posted)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, srv.Client())
	ctx := context.Background()

	stored, err := store.Create(ctx, testutil.NewEntry("task-1"))
	require.NoError(t, err)
	assert.Equal(t, "srv-1", stored.ID, "store assigns the id")
	assert.Equal(t, "task-1", posted.TaskID)
	assert.Equal(t, "2024-01-08", posted.WorkDate)

	fetched, err := store.GetByID(ctx, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, 60, fetched.DurationMinutes)
}

func TestRemoteStore_ListSendsFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]timeEntryDTO{})
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, srv.Client())
	_, err := store.List(context.Background(), EntryFilter{
		TaskID:    "t1",
		StartDate: "2024-01-07",
		EndDate:   "2024-01-13",
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "taskId=t1")
	assert.Contains(t, gotQuery, "startDate=2024-01-07")
	assert.Contains(t, gotQuery, "endDate=2024-01-13")
	assert.NotContains(t, gotQuery, "employeeId")
}

func TestRemoteStore_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, srv.Client())
	_, err := store.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoteStore_ServerErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "persistence backend down", http.StatusBadGateway)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, srv.Client())
	_, err := store.List(context.Background(), EntryFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "persistence backend down")
}

func TestRemoteStore_TeamAndStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects/p1/team":
			json.NewEncoder(w).Encode([]teamMemberDTO{{EmployeeID: "e1", Name: "Asha"}})
		case "/projects/p1/employee-stats":
			json.NewEncoder(w).Encode([]breakdownDTO{{EmployeeID: "e1", Name: "Asha", Hours: 12, Cost: 3000}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, srv.Client())
	ctx := context.Background()

	team, err := store.GetProjectTeam(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "Asha", team[0].Name)

	stats, err := store.GetEmployeeStats(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 3000.0, stats[0].Cost)
}

func TestRemoteStore_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	store := NewRemoteStore(srv.URL, srv.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := store.List(ctx, EntryFilter{})
	assert.Error(t, err)
}
