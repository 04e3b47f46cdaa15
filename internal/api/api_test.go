package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/api"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/app/progression"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/infra/catalog"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/infra/sqlite"
)

type fixedClock struct{ day domain.DayKey }

func (c fixedClock) Now() time.Time {
	t, _ := c.day.Time()
	return t.Add(12 * time.Hour)
}

func (c fixedClock) Today() domain.DayKey { return c.day }

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cat := catalog.Default()
	eng := progression.New(db, progression.NewLedger(db, cat), cat,
		fixedClock{day: "2026-08-31"}, progression.DefaultOptions())

	ts := httptest.NewServer(api.NewServer(eng, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func registerLearner(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/learners", map[string]string{"name": "Romi"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d", resp.StatusCode)
	}
	var p struct {
		ID string `json:"id"`
	}
	decode(t, resp, &p)
	if p.ID == "" {
		t.Fatal("no learner ID returned")
	}
	return p.ID
}

func TestAPI_Health(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status %d", resp.StatusCode)
	}
}

func TestAPI_RegisterAndProfile(t *testing.T) {
	ts := testServer(t)
	id := registerLearner(t, ts)

	resp, err := http.Get(ts.URL + "/api/learners/" + id)
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	var body struct {
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
		Level int `json:"level"`
	}
	decode(t, resp, &body)
	if body.Profile.Name != "Romi" || body.Level != 0 {
		t.Errorf("unexpected profile: %+v", body)
	}
}

func TestAPI_ProfileNotFound(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/learners/missing")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAPI_CompleteTask(t *testing.T) {
	ts := testServer(t)
	id := registerLearner(t, ts)

	resp := postJSON(t, fmt.Sprintf("%s/api/learners/%s/tasks/mat-01/complete", ts.URL, id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status %d", resp.StatusCode)
	}
	var body struct {
		Profile struct {
			XP     int `json:"xp"`
			Streak int `json:"streak"`
		} `json:"profile"`
	}
	decode(t, resp, &body)
	if body.Profile.XP != 2 || body.Profile.Streak != 1 {
		t.Errorf("unexpected result: %+v", body.Profile)
	}

	resp = postJSON(t, fmt.Sprintf("%s/api/learners/%s/tasks/nope/complete", ts.URL, id), nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown task, got %d", resp.StatusCode)
	}
}

func TestAPI_Claim(t *testing.T) {
	ts := testServer(t)
	id := registerLearner(t, ts)
	url := fmt.Sprintf("%s/api/learners/%s/claims", ts.URL, id)

	resp := postJSON(t, url, map[string]string{"kind": "daily", "period_key": "2026-08-31"})
	var res domain.ClaimResult
	decode(t, resp, &res)
	if !res.Granted || res.Amount.XP != 5 {
		t.Errorf("expected granted 5 XP, got %+v", res)
	}

	resp = postJSON(t, url, map[string]string{"kind": "daily", "period_key": "2026-08-31"})
	decode(t, resp, &res)
	if res.Granted {
		t.Error("replay must not grant")
	}

	// Milestone not reached yet maps to 409.
	resp = postJSON(t, url, map[string]string{"kind": "streak", "period_key": "streak-7"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resp.StatusCode)
	}
}

func TestAPI_ClaimRejectsUnearnedRewards(t *testing.T) {
	ts := testServer(t)
	id := registerLearner(t, ts)
	url := fmt.Sprintf("%s/api/learners/%s/claims", ts.URL, id)

	// An uncompleted task's reward cannot be claimed directly.
	resp := postJSON(t, url, map[string]string{"kind": "task", "period_key": "mat-01"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for unearned task reward, got %d", resp.StatusCode)
	}

	// Neither can a section bonus with zero tasks done.
	resp = postJSON(t, url, map[string]string{"kind": "section", "period_key": "2026-08-31::matematyka"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for uncleared section, got %d", resp.StatusCode)
	}

	// The profile is untouched by the rejections.
	resp, err := http.Get(ts.URL + "/api/learners/" + id)
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	var body struct {
		Profile struct {
			XP   int `json:"xp"`
			Gems int `json:"gems"`
		} `json:"profile"`
	}
	decode(t, resp, &body)
	if body.Profile.XP != 0 || body.Profile.Gems != 0 {
		t.Errorf("rejected claims changed the profile: %+v", body.Profile)
	}
}

func TestAPI_ClaimStatus(t *testing.T) {
	ts := testServer(t)
	id := registerLearner(t, ts)
	statusURL := fmt.Sprintf("%s/api/learners/%s/claims?kind=daily&period_key=2026-08-31", ts.URL, id)

	resp, err := http.Get(statusURL)
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	var status struct {
		Claimed bool                `json:"claimed"`
		Amount  domain.RewardAmount `json:"amount"`
	}
	decode(t, resp, &status)
	if status.Claimed || status.Amount.XP != 5 {
		t.Errorf("expected unclaimed 5 XP, got %+v", status)
	}

	postJSON(t, fmt.Sprintf("%s/api/learners/%s/claims", ts.URL, id),
		map[string]string{"kind": "daily", "period_key": "2026-08-31"}).Body.Close()

	resp, err = http.Get(statusURL)
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	decode(t, resp, &status)
	if !status.Claimed {
		t.Error("expected claimed after POST")
	}
}

func TestAPI_ChallengeAndUnlocks(t *testing.T) {
	ts := testServer(t)
	id := registerLearner(t, ts)

	resp, err := http.Get(fmt.Sprintf("%s/api/learners/%s/challenge", ts.URL, id))
	if err != nil {
		t.Fatalf("GET challenge: %v", err)
	}
	var task domain.Task
	decode(t, resp, &task)
	if task.ID == "" {
		t.Error("empty challenge task")
	}

	resp, err = http.Get(fmt.Sprintf("%s/api/learners/%s/unlocks", ts.URL, id))
	if err != nil {
		t.Fatalf("GET unlocks: %v", err)
	}
	var state struct {
		Corridors []string `json:"corridors"`
	}
	decode(t, resp, &state)
	if len(state.Corridors) == 0 {
		t.Error("expected prerequisite-free corridors to be open")
	}
}

func TestAPI_ClassesAndLeaderboard(t *testing.T) {
	ts := testServer(t)
	id := registerLearner(t, ts)

	resp := postJSON(t, ts.URL+"/api/classes", map[string]string{"label": "4B", "created_by": "teacher-1"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create class status %d", resp.StatusCode)
	}
	var class domain.Class
	decode(t, resp, &class)

	resp = postJSON(t, fmt.Sprintf("%s/api/learners/%s/class", ts.URL, id), map[string]string{"code": class.Code})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join class status %d", resp.StatusCode)
	}

	postJSON(t, fmt.Sprintf("%s/api/learners/%s/tasks/his-01/complete", ts.URL, id), nil).Body.Close()

	resp, err := http.Get(ts.URL + "/api/leaderboard")
	if err != nil {
		t.Fatalf("GET leaderboard: %v", err)
	}
	var board struct {
		Entries []domain.RankingEntry `json:"entries"`
	}
	decode(t, resp, &board)
	if len(board.Entries) != 1 || board.Entries[0].TotalXP != 3 {
		t.Errorf("unexpected leaderboard: %+v", board.Entries)
	}

	resp, err = http.Get(ts.URL + "/api/hall-of-fame")
	if err != nil {
		t.Fatalf("GET hall of fame: %v", err)
	}
	var fame struct {
		Rows []domain.HallOfFameRow `json:"rows"`
	}
	decode(t, resp, &fame)
	if len(fame.Rows) != 1 || fame.Rows[0].XP != 3 {
		t.Errorf("unexpected hall of fame: %+v", fame.Rows)
	}
}
