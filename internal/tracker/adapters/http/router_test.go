package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trackerhttp "exercisetracker/internal/tracker/adapters/http"
	"exercisetracker/internal/tracker/adapters/memory"
	"exercisetracker/internal/tracker/app"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type testServer struct {
	app *fiber.App
}

func newServer(t *testing.T, legacy bool) *testServer {
	t.Helper()

	dir := t.TempDir()
	views := filepath.Join(dir, "views")
	public := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(views, 0o755))
	require.NoError(t, os.MkdirAll(public, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(views, "index.html"), []byte("<h1>Exercise Tracker</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(public, "style.css"), []byte("body{}"), 0o600))

	now := func() time.Time { return time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC) }
	repo := memory.NewUserRepository()

	fiberApp := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	trackerhttp.SetupRouter(fiberApp, trackerhttp.Services{
		Users:     app.NewUserUseCase(repo),
		Exercises: app.NewExerciseUseCase(repo, now),
		Logs:      app.NewLogUseCase(repo, legacy),
	}, trackerhttp.Options{StaticDir: public, ViewsDir: views})

	return &testServer{app: fiberApp}
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, string) {
	t.Helper()
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func (s *testServer) get(t *testing.T, target string) (int, string) {
	t.Helper()
	return s.do(t, httptest.NewRequest(fiber.MethodGet, target, nil))
}

func (s *testServer) postJSON(t *testing.T, target, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return s.do(t, req)
}

func (s *testServer) postForm(t *testing.T, target string, form url.Values) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return s.do(t, req)
}

func (s *testServer) createUser(t *testing.T, username string) string {
	t.Helper()
	status, body := s.postJSON(t, "/api/users", `{"username":"`+username+`"}`)
	require.Equal(t, fiber.StatusOK, status, body)

	var resp struct {
		Username string `json:"username"`
		ID       string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func (s *testServer) addExercise(t *testing.T, userID, body string) {
	t.Helper()
	status, resp := s.postJSON(t, "/api/users/"+userID+"/exercises", body)
	require.Equal(t, fiber.StatusOK, status, resp)
}

func TestPages(t *testing.T) {
	s := newServer(t, false)

	status, body := s.get(t, "/api/hello")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":"hello exercise tracker"}`, body)

	status, body = s.get(t, "/")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "Exercise Tracker")

	status, body = s.get(t, "/public/style.css")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "body{}", body)

	status, body = s.get(t, "/nowhere")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Route not found"}`, body)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t, false)
	s.get(t, "/api/hello")

	status, body := s.get(t, "/metrics")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "tracker_http_requests_total")
}

func TestUsers(t *testing.T) {
	s := newServer(t, false)

	t.Run("empty tracker lists nobody", func(t *testing.T) {
		status, body := s.get(t, "/api/users")
		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `[]`, body)
	})

	aliceID := s.createUser(t, "alice")

	t.Run("form encoded body", func(t *testing.T) {
		status, body := s.postForm(t, "/api/users", url.Values{"username": {"bob"}})
		require.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, body, `"username":"bob"`)
	})

	t.Run("empty username", func(t *testing.T) {
		status, body := s.postJSON(t, "/api/users", `{"username":"  "}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.JSONEq(t, `{"message":"username cannot be empty"}`, body)
	})

	t.Run("list", func(t *testing.T) {
		status, body := s.get(t, "/api/users")
		require.Equal(t, fiber.StatusOK, status)

		var users []map[string]string
		require.NoError(t, json.Unmarshal([]byte(body), &users))
		require.Len(t, users, 2)
		assert.Equal(t, map[string]string{"username": "alice", "_id": aliceID}, users[0])
	})

	t.Run("filter by username", func(t *testing.T) {
		status, body := s.get(t, "/api/users?username=alice")
		require.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `[{"username":"alice","_id":"`+aliceID+`"}]`, body)
	})

	t.Run("filter without matches", func(t *testing.T) {
		status, body := s.get(t, "/api/users?username=nobody")
		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `[]`, body)
	})
}

func TestAddExercise(t *testing.T) {
	s := newServer(t, false)
	userID := s.createUser(t, "alice")

	t.Run("explicit date", func(t *testing.T) {
		status, body := s.postJSON(t, "/api/users/"+userID+"/exercises",
			`{"description":"run","duration":30,"date":"2024-01-05"}`)
		require.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"username":"alice","description":"run","duration":30,"date":"Fri Jan 05 2024","_id":"`+userID+`"}`, body)
	})

	t.Run("browser style dates", func(t *testing.T) {
		for _, date := range []string{"January 5, 2024", "01/05/2024", "Jan 5 2024"} {
			status, body := s.postJSON(t, "/api/users/"+userID+"/exercises",
				`{"description":"walk","duration":15,"date":"`+date+`"}`)
			require.Equal(t, fiber.StatusOK, status, date)
			assert.Contains(t, body, `"date":"Fri Jan 05 2024"`, date)
		}
	})

	t.Run("date defaults to today", func(t *testing.T) {
		status, body := s.postForm(t, "/api/users/"+userID+"/exercises",
			url.Values{"description": {"swim"}, "duration": {"45min"}})
		require.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, body, `"date":"Sun Mar 10 2024"`)
		assert.Contains(t, body, `"duration":45`)
	})

	t.Run("duration as string", func(t *testing.T) {
		status, body := s.postJSON(t, "/api/users/"+userID+"/exercises", `{"description":"row","duration":"20"}`)
		require.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, body, `"duration":20`)
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := map[string]string{
			`{"description":"","duration":10}`:                      "description cannot be empty",
			`{"description":"run","duration":"abc"}`:                "duration must be a positive integer",
			`{"description":"run","duration":0}`:                    "duration must be a positive integer",
			`{"description":"run","duration":5,"date":"not-a-day"}`: "date is not a valid calendar date",
		}
		for body, message := range cases {
			status, resp := s.postJSON(t, "/api/users/"+userID+"/exercises", body)
			assert.Equal(t, fiber.StatusBadRequest, status, body)
			assert.JSONEq(t, `{"message":"`+message+`"}`, resp, body)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		status, body := s.postJSON(t, "/api/users/does-not-exist/exercises", `{"description":"run","duration":30}`)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.JSONEq(t, `{"message":"could not find a user with that ID"}`, body)
	})

	t.Run("count follows the log", func(t *testing.T) {
		status, body := s.get(t, "/api/users/"+userID+"/logs")
		require.Equal(t, fiber.StatusOK, status)

		var doc struct {
			Count int                   `json:"count"`
			Log   []jsoniter.RawMessage `json:"log"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &doc))
		assert.Equal(t, 6, doc.Count)
		assert.Len(t, doc.Log, 6)
	})
}

func seedLog(t *testing.T, s *testServer) string {
	t.Helper()
	userID := s.createUser(t, "alice")
	s.addExercise(t, userID, `{"description":"a","duration":10,"date":"2024-01-01"}`)
	s.addExercise(t, userID, `{"description":"b","duration":20,"date":"2024-01-05"}`)
	s.addExercise(t, userID, `{"description":"c","duration":30,"date":"2024-01-10"}`)
	return userID
}

func logDescriptions(t *testing.T, body string) (int, []string) {
	t.Helper()
	var resp struct {
		Count int `json:"count"`
		Log   []struct {
			Description string `json:"description"`
		} `json:"log"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	out := make([]string, 0, len(resp.Log))
	for _, e := range resp.Log {
		out = append(out, e.Description)
	}
	return resp.Count, out
}

func TestGetLog(t *testing.T) {
	s := newServer(t, false)
	userID := seedLog(t, s)

	t.Run("no query returns the full document", func(t *testing.T) {
		status, body := s.get(t, "/api/users/"+userID+"/logs")
		require.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{
			"_id": "`+userID+`",
			"username": "alice",
			"count": 3,
			"log": [
				{"description":"a","duration":10,"date":"Mon Jan 01 2024"},
				{"description":"b","duration":20,"date":"Fri Jan 05 2024"},
				{"description":"c","duration":30,"date":"Wed Jan 10 2024"}
			]
		}`, body)
	})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"unrelated key keeps everything", "?foo=bar", []string{"a", "b", "c"}},
		{"from inclusive", "?from=2024-01-05", []string{"b", "c"}},
		{"to inclusive", "?to=2024-01-05", []string{"a", "b"}},
		{"range", "?from=2024-01-02&to=2024-01-09", []string{"b"}},
		{"limit alone", "?limit=2", []string{"a", "b"}},
		{"range with limit", "?from=2024-01-01&to=2024-01-10&limit=1", []string{"a"}},
		{"invalid from", "?from=yesterday", []string{}},
		{"zero limit", "?limit=0", []string{}},
		{"non-numeric limit", "?limit=many", []string{}},
		{"limit with trailing text", "?limit=2abc", []string{"a", "b"}},
		{"fractional limit", "?limit=1.5", []string{"a"}},
		{"long month name", "?from=January%205,%202024", []string{"b", "c"}},
		{"us numeric date", "?to=01/05/2024", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := s.get(t, "/api/users/"+userID+"/logs"+tt.query)
			require.Equal(t, fiber.StatusOK, status)

			count, got := logDescriptions(t, body)
			assert.Equal(t, 3, count, "count is the total, not the filtered length")
			assert.Equal(t, tt.want, got)
			assert.Contains(t, body, `"_id":"`+userID+`"`)
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		status, body := s.get(t, "/api/users/missing/logs?limit=1")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.JSONEq(t, `{"message":"could not find user with that ID"}`, body)
	})
}

func TestGetLogLegacyMode(t *testing.T) {
	s := newServer(t, true)
	userID := seedLog(t, s)

	status, body := s.get(t, "/api/users/"+userID+"/logs?to=2024-01-05")
	require.Equal(t, fiber.StatusOK, status)

	_, got := logDescriptions(t, body)
	assert.Empty(t, got)
}
