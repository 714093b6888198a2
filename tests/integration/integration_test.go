package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тестовые структуры данных соответствующие API
type loginRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type userPayload struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email"`
	TeamID      *string `json:"team_id"`
	Role        string  `json:"role"`
	Onboarded   bool    `json:"onboarded"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type memberPayload struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Position    string `json:"position"`
}

type ideaPayload struct {
	ProblemStatement string   `json:"problem_statement"`
	Evidence         string   `json:"evidence"`
	SolutionOverview string   `json:"solution_overview"`
	Domain           string   `json:"domain"`
	TargetAudience   string   `json:"target_audience"`
	ImpactStatement  string   `json:"impact_statement"`
	AttachmentRefs   []string `json:"attachment_refs"`
}

type prototypePayload struct {
	DeckLink      string `json:"deck_link"`
	RepoLink      string `json:"repo_link"`
	DesignLink    string `json:"design_link"`
	CostModel     string `json:"cost_model"`
	ExecutionPlan string `json:"execution_plan"`
}

type teamPayload struct {
	TeamID           string          `json:"team_id"`
	Name             string          `json:"name"`
	InviteCode       string          `json:"invite_code"`
	LeaderID         string          `json:"leader_id"`
	Status           string          `json:"status"`
	Theme            string          `json:"theme"`
	Tags             []string        `json:"tags"`
	Members          []memberPayload `json:"members"`
	SubmissionStatus string          `json:"submission_status"`
	Shortlisted      bool            `json:"shortlisted"`
	PitchSlotID      *string         `json:"pitch_slot_id"`
}

type teamResponse struct {
	Team teamPayload `json:"team"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type submissionPayload struct {
	TeamID          string            `json:"team_id"`
	Status          string            `json:"status"`
	Idea            ideaPayload       `json:"idea"`
	Prototype       *prototypePayload `json:"prototype"`
	PrototypeStatus string            `json:"prototype_status"`
	Shortlisted     bool              `json:"shortlisted"`
}

type submissionResponse struct {
	Submission submissionPayload `json:"submission"`
}

type slotPayload struct {
	SlotID   string  `json:"slot_id"`
	StartsAt string  `json:"starts_at"`
	EndsAt   string  `json:"ends_at"`
	Status   string  `json:"status"`
	TeamID   *string `json:"team_id"`
	Phase    string  `json:"phase"`
}

type slotsResponse struct {
	Slots []slotPayload `json:"slots"`
}

type scorePayload struct {
	JudgeID  string         `json:"judge_id"`
	TeamID   string         `json:"team_id"`
	Criteria map[string]int `json:"criteria"`
	Total    int            `json:"total"`
	Feedback string         `json:"feedback"`
}

type scoreResponse struct {
	Score scorePayload `json:"score"`
}

type judgeEntryPayload struct {
	JudgeID string `json:"judge_id"`
	Total   int    `json:"total"`
}

type teamResultPayload struct {
	TeamID        string              `json:"team_id"`
	TeamName      string              `json:"team_name"`
	Entries       []judgeEntryPayload `json:"entries"`
	CombinedTotal int                 `json:"combined_total"`
}

type resultsResponse struct {
	Results []teamResultPayload `json:"results"`
}

// login выполняет вход (первый вход создает пользователя)
func login(t *testing.T, env *TestEnvironment, email, name string) loginResponse {
	t.Helper()

	resp := env.MakeJSONRequest(t, http.MethodPost, "/auth/login", loginRequest{Email: email, DisplayName: name}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, "login for %s", email)

	var out loginResponse
	DecodeResponse(t, resp, &out)
	require.NotEmpty(t, out.Token)
	require.NotEmpty(t, out.User.UserID)
	return out
}

// promoteToJudge выставляет роль judge напрямую в БД (вне API)
func promoteToJudge(t *testing.T, env *TestEnvironment, userID string) {
	t.Helper()

	tag, err := env.DB.Exec(context.Background(), `UPDATE users SET role = 'judge' WHERE user_id = $1`, userID)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()

	var out errorResponse
	DecodeResponse(t, resp, &out)
	return out.Error.Code
}

// TestE2E_TeamLifecycle тестирует создание команды, вступление,
// лимит размера, передачу лидерства и выход
func TestE2E_TeamLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)
	env.WaitForHealthCheck(t)

	leader := login(t, env, "lena@test.dev", "Lena")
	var team teamPayload

	t.Run("Create Team", func(t *testing.T) {
		resp := env.MakeJSONRequest(t, http.MethodPost, "/teams", map[string]any{
			"name":     "Orbit",
			"theme":    "fintech",
			"tags":     []string{"go", "postgres"},
			"position": "backend",
		}, leader.Token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out teamResponse
		DecodeResponse(t, resp, &out)
		team = out.Team

		assert.Equal(t, "Orbit", team.Name)
		assert.Equal(t, leader.User.UserID, team.LeaderID)
		assert.Len(t, team.InviteCode, 6)
		require.Len(t, team.Members, 1)
		assert.Equal(t, leader.User.UserID, team.Members[0].UserID)

		// Профиль создателя атомарно указывает на команду
		me := env.MakeRequest(t, http.MethodGet, "/users/me", nil, leader.Token)
		require.Equal(t, http.StatusOK, me.StatusCode)
		var profile userPayload
		DecodeResponse(t, me, &profile)
		require.NotNil(t, profile.TeamID)
		assert.Equal(t, team.TeamID, *profile.TeamID)
	})

	t.Run("Duplicate Name Rejected", func(t *testing.T) {
		other := login(t, env, "oleg@test.dev", "Oleg")

		// Нормализованное название совпадает с "Orbit"
		resp := env.MakeJSONRequest(t, http.MethodPost, "/teams", map[string]any{"name": "  ORBIT  "}, other.Token)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "NAME_TAKEN", decodeError(t, resp))
	})

	t.Run("Join Until Full", func(t *testing.T) {
		for i := 2; i <= 4; i++ {
			member := login(t, env, fmt.Sprintf("member%d@test.dev", i), fmt.Sprintf("Member %d", i))
			resp := env.MakeJSONRequest(t, http.MethodPost, "/teams/join", map[string]any{
				"invite_code": team.InviteCode,
			}, member.Token)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var out teamResponse
			DecodeResponse(t, resp, &out)
			assert.Len(t, out.Team.Members, i)
		}

		// Пятый участник получает отказ по лимиту размера
		fifth := login(t, env, "member5@test.dev", "Member 5")
		resp := env.MakeJSONRequest(t, http.MethodPost, "/teams/join", map[string]any{
			"invite_code": team.InviteCode,
		}, fifth.Token)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "TEAM_FULL", decodeError(t, resp))
	})

	t.Run("Join Is Idempotent", func(t *testing.T) {
		member := login(t, env, "member2@test.dev", "Member 2")
		resp := env.MakeJSONRequest(t, http.MethodPost, "/teams/join", map[string]any{
			"invite_code": team.InviteCode,
		}, member.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out teamResponse
		DecodeResponse(t, resp, &out)
		assert.Len(t, out.Team.Members, 4)
	})

	t.Run("Unknown Invite Code", func(t *testing.T) {
		stray := login(t, env, "stray@test.dev", "Stray")
		resp := env.MakeJSONRequest(t, http.MethodPost, "/teams/join", map[string]any{
			"invite_code": "ZZZZZZ",
		}, stray.Token)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "INVALID_CODE", decodeError(t, resp))
	})

	t.Run("Search By Prefix", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/teams/search?prefix=orb", nil, leader.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Teams []struct {
				TeamID      string `json:"team_id"`
				Name        string `json:"name"`
				MemberCount int    `json:"member_count"`
			} `json:"teams"`
		}
		DecodeResponse(t, resp, &out)
		require.Len(t, out.Teams, 1)
		assert.Equal(t, team.TeamID, out.Teams[0].TeamID)
		assert.Equal(t, 4, out.Teams[0].MemberCount)
	})

	t.Run("Leader Must Transfer Before Leaving", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/teams/leave", nil, leader.Token)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "LEADER_MUST_TRANSFER", decodeError(t, resp))

		member := login(t, env, "member2@test.dev", "Member 2")
		transfer := env.MakeJSONRequest(t, http.MethodPost, "/teams/transfer-leader", map[string]any{
			"new_leader_id": member.User.UserID,
		}, leader.Token)
		require.Equal(t, http.StatusOK, transfer.StatusCode)

		var out teamResponse
		DecodeResponse(t, transfer, &out)
		assert.Equal(t, member.User.UserID, out.Team.LeaderID)

		// Бывший лидер теперь может выйти
		leave := env.MakeRequest(t, http.MethodPost, "/teams/leave", nil, leader.Token)
		require.Equal(t, http.StatusOK, leave.StatusCode)
		leave.Body.Close()

		get := env.MakeRequest(t, http.MethodGet, "/teams/"+team.TeamID, nil, member.Token)
		require.Equal(t, http.StatusOK, get.StatusCode)
		DecodeResponse(t, get, &out)
		assert.Equal(t, "active", out.Team.Status)
		assert.Len(t, out.Team.Members, 3)
	})

	t.Run("Sole Member Leave Disbands Team", func(t *testing.T) {
		solo := login(t, env, "solo@test.dev", "Solo")
		create := env.MakeJSONRequest(t, http.MethodPost, "/teams", map[string]any{"name": "Lone Wolves"}, solo.Token)
		require.Equal(t, http.StatusCreated, create.StatusCode)

		var created teamResponse
		DecodeResponse(t, create, &created)

		leave := env.MakeRequest(t, http.MethodPost, "/teams/leave", nil, solo.Token)
		require.Equal(t, http.StatusOK, leave.StatusCode)
		leave.Body.Close()

		get := env.MakeRequest(t, http.MethodGet, "/teams/"+created.Team.TeamID, nil, solo.Token)
		require.Equal(t, http.StatusOK, get.StatusCode)
		var out teamResponse
		DecodeResponse(t, get, &out)
		assert.Equal(t, "disbanded", out.Team.Status)
		assert.Empty(t, out.Team.Members)

		// Код распущенной команды больше не действует
		join := env.MakeJSONRequest(t, http.MethodPost, "/teams/join", map[string]any{
			"invite_code": created.Team.InviteCode,
		}, solo.Token)
		require.Equal(t, http.StatusNotFound, join.StatusCode)
		join.Body.Close()
	})
}

// TestE2E_SubmissionWorkflow тестирует автосохранение черновика,
// отправку заявки и заморозку после отправки
func TestE2E_SubmissionWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)
	env.WaitForHealthCheck(t)

	leader := login(t, env, "lena@test.dev", "Lena")
	member := login(t, env, "oleg@test.dev", "Oleg")
	admin := login(t, env, adminEmail, "Admin")
	require.Equal(t, "admin", admin.User.Role)

	create := env.MakeJSONRequest(t, http.MethodPost, "/teams", map[string]any{"name": "Orbit"}, leader.Token)
	require.Equal(t, http.StatusCreated, create.StatusCode)
	var created teamResponse
	DecodeResponse(t, create, &created)
	teamID := created.Team.TeamID

	join := env.MakeJSONRequest(t, http.MethodPost, "/teams/join", map[string]any{
		"invite_code": created.Team.InviteCode,
	}, member.Token)
	require.Equal(t, http.StatusOK, join.StatusCode)
	join.Body.Close()

	// Пустые строки в черновике значимы и должны сохраняться как есть
	draft := ideaPayload{
		ProblemStatement: "Campus parking is a lottery",
		Evidence:         "",
		SolutionOverview: "Realtime occupancy map",
		Domain:           "mobility",
		TargetAudience:   "students",
		ImpactStatement:  "",
		AttachmentRefs:   []string{},
	}

	t.Run("Draft Autosave Roundtrip", func(t *testing.T) {
		resp := env.MakeJSONRequest(t, http.MethodPut, "/submission/idea/draft", draft, leader.Token)
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
		resp.Body.Close()

		// Ждем дебаунс автосохранения (100ms в тестовой конфигурации)
		time.Sleep(500 * time.Millisecond)

		get := env.MakeRequest(t, http.MethodGet, "/submission", nil, leader.Token)
		require.Equal(t, http.StatusOK, get.StatusCode)
		var out submissionResponse
		DecodeResponse(t, get, &out)

		assert.Equal(t, "pending", out.Submission.Status)
		assert.Equal(t, draft, out.Submission.Idea)
	})

	t.Run("Only Leader Edits Draft", func(t *testing.T) {
		resp := env.MakeJSONRequest(t, http.MethodPut, "/submission/idea/draft", draft, member.Token)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "NOT_LEADER", decodeError(t, resp))
	})

	final := draft
	final.Evidence = "300 complaints in the student survey"

	t.Run("Submit Freezes Payload", func(t *testing.T) {
		resp := env.MakeJSONRequest(t, http.MethodPost, "/submission/idea/submit", final, leader.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out submissionResponse
		DecodeResponse(t, resp, &out)
		assert.Equal(t, "submitted", out.Submission.Status)
		assert.Equal(t, final, out.Submission.Idea)

		// Повторная отправка отклоняется
		again := env.MakeJSONRequest(t, http.MethodPost, "/submission/idea/submit", final, leader.Token)
		require.Equal(t, http.StatusConflict, again.StatusCode)
		assert.Equal(t, "ALREADY_SUBMITTED", decodeError(t, again))
	})

	t.Run("Autosave After Submit Is Ignored", func(t *testing.T) {
		stale := final
		stale.ProblemStatement = "edited after the deadline"

		resp := env.MakeJSONRequest(t, http.MethodPut, "/submission/idea/draft", stale, leader.Token)
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
		resp.Body.Close()

		time.Sleep(500 * time.Millisecond)

		get := env.MakeRequest(t, http.MethodGet, "/submission", nil, leader.Token)
		require.Equal(t, http.StatusOK, get.StatusCode)
		var out submissionResponse
		DecodeResponse(t, get, &out)

		assert.Equal(t, "submitted", out.Submission.Status)
		assert.Equal(t, final, out.Submission.Idea, "frozen payload must not change")
	})

	proto := prototypePayload{
		DeckLink:      "https://deck.test/orbit",
		RepoLink:      "https://git.test/orbit",
		DesignLink:    "",
		CostModel:     "free tier",
		ExecutionPlan: "ship in two weekends",
	}

	t.Run("Prototype Requires Shortlist", func(t *testing.T) {
		resp := env.MakeJSONRequest(t, http.MethodPost, "/submission/prototype/submit", proto, leader.Token)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "NOT_ELIGIBLE", decodeError(t, resp))

		shortlist := env.MakeJSONRequest(t, http.MethodPost, "/admin/teams/"+teamID+"/shortlist", map[string]any{
			"shortlisted": true,
		}, admin.Token)
		require.Equal(t, http.StatusOK, shortlist.StatusCode)
		shortlist.Body.Close()

		submit := env.MakeJSONRequest(t, http.MethodPost, "/submission/prototype/submit", proto, leader.Token)
		require.Equal(t, http.StatusOK, submit.StatusCode)
		var out submissionResponse
		DecodeResponse(t, submit, &out)
		assert.Equal(t, "submitted", out.Submission.PrototypeStatus)
		require.NotNil(t, out.Submission.Prototype)
		assert.Equal(t, proto, *out.Submission.Prototype)
	})

	t.Run("Admin Route Requires Admin Role", func(t *testing.T) {
		resp := env.MakeJSONRequest(t, http.MethodPost, "/admin/teams/"+teamID+"/shortlist", map[string]any{
			"shortlisted": false,
		}, leader.Token)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})
}

// TestE2E_SlotBooking тестирует конкурентное бронирование слотов:
// ровно один победитель на слот, смена слота освобождает прежний
func TestE2E_SlotBooking(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)
	env.WaitForHealthCheck(t)

	admin := login(t, env, adminEmail, "Admin")

	// Инвентарь из трех слотов
	base := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	slots := make([]map[string]any, 0, 3)
	for i := 0; i < 3; i++ {
		starts := base.Add(time.Duration(i) * 15 * time.Minute)
		slots = append(slots, map[string]any{
			"slot_id":   fmt.Sprintf("S%d", i+1),
			"starts_at": starts.Format(time.RFC3339),
			"ends_at":   starts.Add(10 * time.Minute).Format(time.RFC3339),
		})
	}
	seed := env.MakeJSONRequest(t, http.MethodPost, "/admin/slots", map[string]any{"slots": slots}, admin.Token)
	require.Equal(t, http.StatusCreated, seed.StatusCode)
	seed.Body.Close()

	// Две команды-соперника
	tokens := make([]string, 2)
	for i := range tokens {
		user := login(t, env, fmt.Sprintf("captain%d@test.dev", i+1), fmt.Sprintf("Captain %d", i+1))
		tokens[i] = user.Token

		resp := env.MakeJSONRequest(t, http.MethodPost, "/teams", map[string]any{
			"name": fmt.Sprintf("Team %d", i+1),
		}, user.Token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	t.Run("Concurrent Booking Has One Winner", func(t *testing.T) {
		statuses := make([]int, len(tokens))
		var wg sync.WaitGroup
		for i, token := range tokens {
			wg.Add(1)
			go func(i int, token string) {
				defer wg.Done()
				resp := env.MakeRequest(t, http.MethodPost, "/slots/S1/book", nil, token)
				statuses[i] = resp.StatusCode
				resp.Body.Close()
			}(i, token)
		}
		wg.Wait()

		wins, losses := 0, 0
		for _, status := range statuses {
			switch status {
			case http.StatusOK:
				wins++
			case http.StatusConflict:
				losses++
			}
		}
		assert.Equal(t, 1, wins, "exactly one booking succeeds")
		assert.Equal(t, len(tokens)-1, losses, "the rest observe the slot as taken")

		list := env.MakeRequest(t, http.MethodGet, "/slots", nil, tokens[0])
		require.Equal(t, http.StatusOK, list.StatusCode)
		var out slotsResponse
		DecodeResponse(t, list, &out)
		booked := 0
		for _, slot := range out.Slots {
			if slot.SlotID == "S1" {
				assert.Equal(t, "booked", slot.Status)
				require.NotNil(t, slot.TeamID)
			}
			if slot.Status == "booked" {
				booked++
			}
		}
		assert.Equal(t, 1, booked)
	})

	t.Run("Rebooking Swaps Slots", func(t *testing.T) {
		// Определяем победителя S1 по успешной повторной брони
		var winner string
		for _, token := range tokens {
			resp := env.MakeRequest(t, http.MethodPost, "/slots/S1/book", nil, token)
			if resp.StatusCode == http.StatusOK {
				winner = token
			}
			resp.Body.Close()
		}
		require.NotEmpty(t, winner, "the S1 holder rebooks its own slot as a no-op")

		resp := env.MakeRequest(t, http.MethodPost, "/slots/S2/book", nil, winner)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		list := env.MakeRequest(t, http.MethodGet, "/slots", nil, winner)
		var out slotsResponse
		DecodeResponse(t, list, &out)
		for _, slot := range out.Slots {
			switch slot.SlotID {
			case "S1":
				// Прежний слот освобожден той же транзакцией
				assert.Equal(t, "open", slot.Status)
				assert.Nil(t, slot.TeamID)
			case "S2":
				assert.Equal(t, "booked", slot.Status)
			}
		}
	})

	t.Run("Release Frees The Slot", func(t *testing.T) {
		var holder string
		for _, token := range tokens {
			resp := env.MakeRequest(t, http.MethodPost, "/slots/S2/book", nil, token)
			if resp.StatusCode == http.StatusOK {
				holder = token
			}
			resp.Body.Close()
		}
		require.NotEmpty(t, holder)

		release := env.MakeRequest(t, http.MethodPost, "/slots/release", nil, holder)
		require.Equal(t, http.StatusOK, release.StatusCode)
		release.Body.Close()

		list := env.MakeRequest(t, http.MethodGet, "/slots", nil, holder)
		var out slotsResponse
		DecodeResponse(t, list, &out)
		for _, slot := range out.Slots {
			assert.Equal(t, "open", slot.Status, "slot %s", slot.SlotID)
		}
	})
}

// TestE2E_Judging тестирует независимые оценки жюри, серверный
// пересчет итога и агрегацию результатов
func TestE2E_Judging(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)
	env.WaitForHealthCheck(t)

	leader := login(t, env, "lena@test.dev", "Lena")
	create := env.MakeJSONRequest(t, http.MethodPost, "/teams", map[string]any{"name": "Orbit"}, leader.Token)
	require.Equal(t, http.StatusCreated, create.StatusCode)
	var created teamResponse
	DecodeResponse(t, create, &created)
	teamID := created.Team.TeamID

	judge1 := login(t, env, "judge1@test.dev", "Judge One")
	judge2 := login(t, env, "judge2@test.dev", "Judge Two")
	promoteToJudge(t, env, judge1.User.UserID)
	promoteToJudge(t, env, judge2.User.UserID)

	// Роль в токене обновляется при повторном входе
	judge1 = login(t, env, "judge1@test.dev", "Judge One")
	judge2 = login(t, env, "judge2@test.dev", "Judge Two")
	require.Equal(t, "judge", judge1.User.Role)

	t.Run("Student Cannot Score", func(t *testing.T) {
		resp := env.MakeJSONRequest(t, http.MethodPost, "/judging/scores", map[string]any{
			"team_id":  teamID,
			"criteria": map[string]int{"innovation": 10},
		}, leader.Token)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Independent Judge Scores", func(t *testing.T) {
		first := env.MakeJSONRequest(t, http.MethodPost, "/judging/scores", map[string]any{
			"team_id":  teamID,
			"criteria": map[string]int{"innovation": 25, "impact": 20, "feasibility": 15, "presentation": 12},
			"feedback": "solid idea",
		}, judge1.Token)
		require.Equal(t, http.StatusOK, first.StatusCode)
		var score1 scoreResponse
		DecodeResponse(t, first, &score1)
		assert.Equal(t, 72, score1.Score.Total)

		second := env.MakeJSONRequest(t, http.MethodPost, "/judging/scores", map[string]any{
			"team_id":  teamID,
			"criteria": map[string]int{"innovation": 25, "impact": 25, "feasibility": 20, "presentation": 15},
		}, judge2.Token)
		require.Equal(t, http.StatusOK, second.StatusCode)
		var score2 scoreResponse
		DecodeResponse(t, second, &score2)
		assert.Equal(t, 85, score2.Score.Total)

		// Каждый судья видит только собственную оценку
		mine := env.MakeRequest(t, http.MethodGet, "/judging/scores/"+teamID, nil, judge1.Token)
		require.Equal(t, http.StatusOK, mine.StatusCode)
		var own scoreResponse
		DecodeResponse(t, mine, &own)
		assert.Equal(t, judge1.User.UserID, own.Score.JudgeID)
		assert.Equal(t, 72, own.Score.Total)
	})

	t.Run("Results Aggregate Without Merging", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/judging/results", nil, judge1.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out resultsResponse
		DecodeResponse(t, resp, &out)

		require.Len(t, out.Results, 1)
		result := out.Results[0]
		assert.Equal(t, teamID, result.TeamID)
		require.Len(t, result.Entries, 2)
		assert.Equal(t, 157, result.CombinedTotal)

		totals := []int{result.Entries[0].Total, result.Entries[1].Total}
		assert.ElementsMatch(t, []int{72, 85}, totals, "both scores survive intact")
	})

	t.Run("Server Clamps And Recomputes", func(t *testing.T) {
		resp := env.MakeJSONRequest(t, http.MethodPost, "/judging/scores", map[string]any{
			"team_id":  teamID,
			"criteria": map[string]int{"innovation": 999, "bribery": 100},
		}, judge1.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out scoreResponse
		DecodeResponse(t, resp, &out)

		assert.Equal(t, 25, out.Score.Criteria["innovation"])
		assert.NotContains(t, out.Score.Criteria, "bribery")
		assert.Equal(t, 25, out.Score.Total)

		// Повторная отправка перезаписала оценку судьи, не добавила новую
		results := env.MakeRequest(t, http.MethodGet, "/judging/results", nil, judge1.Token)
		var agg resultsResponse
		DecodeResponse(t, results, &agg)
		require.Len(t, agg.Results, 1)
		require.Len(t, agg.Results[0].Entries, 2)
		assert.Equal(t, 110, agg.Results[0].CombinedTotal)
	})

	t.Run("Score Unknown Team", func(t *testing.T) {
		resp := env.MakeJSONRequest(t, http.MethodPost, "/judging/scores", map[string]any{
			"team_id":  "missing-team",
			"criteria": map[string]int{"innovation": 10},
		}, judge1.Token)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}
