package service

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

// JudgeEntry represents one judge's independent score for a team
type JudgeEntry struct {
	JudgeID   string `json:"judge_id"`
	JudgeName string `json:"judge_name"`
	Total     int    `json:"total"`
}

// TeamResult represents the read-side reduction of a team's scores.
// Judges' entries stay independent; aggregation happens here, never
// in the scoring write path.
type TeamResult struct {
	TeamID        string       `json:"team_id"`
	TeamName      string       `json:"team_name"`
	Shortlisted   bool         `json:"shortlisted"`
	Entries       []JudgeEntry `json:"entries"`
	JudgeCount    int          `json:"judge_count"`
	CombinedTotal int          `json:"combined_total"`
}

// ResultsService handles read-side judging aggregation queries
type ResultsService struct {
	db *pgxpool.Pool
}

// NewResultsService creates a new ResultsService
func NewResultsService(db *pgxpool.Pool) *ResultsService {
	return &ResultsService{db: db}
}

// GetResults returns per-team results over all scored teams, ordered
// by combined total descending
func (s *ResultsService) GetResults(ctx context.Context) ([]TeamResult, error) {
	query := `
		SELECT t.team_id, t.name, t.shortlisted, s.judge_id, u.display_name, s.total
		FROM scores s
		INNER JOIN teams t ON t.team_id = s.team_id
		INNER JOIN users u ON u.user_id = s.judge_id
		ORDER BY t.team_id, s.judge_id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byTeam := make(map[string]*TeamResult)
	order := []string{}
	for rows.Next() {
		var teamID, teamName string
		var shortlisted bool
		var entry JudgeEntry
		if err := rows.Scan(&teamID, &teamName, &shortlisted, &entry.JudgeID, &entry.JudgeName, &entry.Total); err != nil {
			return nil, err
		}

		result := byTeam[teamID]
		if result == nil {
			result = &TeamResult{TeamID: teamID, TeamName: teamName, Shortlisted: shortlisted}
			byTeam[teamID] = result
			order = append(order, teamID)
		}
		result.Entries = append(result.Entries, entry)
		result.JudgeCount++
		result.CombinedTotal += entry.Total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	results := make([]TeamResult, 0, len(order))
	for _, teamID := range order {
		results = append(results, *byTeam[teamID])
	}

	// Highest combined total first
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CombinedTotal > results[j].CombinedTotal
	})

	return results, nil
}

// GetTeamResult returns the result reduction for a single team
func (s *ResultsService) GetTeamResult(ctx context.Context, teamID string) (*TeamResult, error) {
	query := `
		SELECT t.team_id, t.name, t.shortlisted, s.judge_id, u.display_name, s.total
		FROM scores s
		INNER JOIN teams t ON t.team_id = s.team_id
		INNER JOIN users u ON u.user_id = s.judge_id
		WHERE t.team_id = $1
		ORDER BY s.judge_id
	`

	rows, err := s.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &TeamResult{TeamID: teamID}
	for rows.Next() {
		var entry JudgeEntry
		if err := rows.Scan(&result.TeamID, &result.TeamName, &result.Shortlisted, &entry.JudgeID, &entry.JudgeName, &entry.Total); err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, entry)
		result.JudgeCount++
		result.CombinedTotal += entry.Total
	}

	return result, rows.Err()
}
