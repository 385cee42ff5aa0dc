package statsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dugoutlabs/dugout/internal/platform/logging"
	"github.com/dugoutlabs/dugout/internal/platform/resilience"
	"github.com/dugoutlabs/dugout/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Logger:     logging.NewNop(),
	})
	return client, server
}

const scheduleBody = `{
  "dates": [
    {
      "date": "2025-08-28",
      "games": [
        {"gamePk": 777001, "officialDate": "2025-08-28", "status": {"detailedState": "Final"}},
        {"gamePk": 777002, "officialDate": "2025-08-28", "status": {"detailedState": "In Progress"}}
      ]
    }
  ]
}`

func TestScheduleGames(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.RawQuery)
		_, _ = w.Write([]byte(scheduleBody))
	}))

	games, err := client.ScheduleGames(context.Background(), 121, "2025-08-28")
	if err != nil {
		t.Fatalf("ScheduleGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].GamePk != 777001 || games[0].Status != "Final" || games[0].OfficialDate != "2025-08-28" {
		t.Fatalf("unexpected first game: %+v", games[0])
	}
	query := gotQuery.Load().(string)
	for _, want := range []string{"sportId=1", "teamId=121", "date=2025-08-28"} {
		if !containsParam(query, want) {
			t.Fatalf("query %q missing %q", query, want)
		}
	}
}

func containsParam(query, param string) bool {
	for _, part := range strings.Split(query, "&") {
		if part == param {
			return true
		}
	}
	return false
}

const feedBody = `{
  "gameData": {
    "game": {"pk": 777001},
    "datetime": {"officialDate": "2025-08-28"},
    "status": {"detailedState": "Final"},
    "teams": {
      "away": {"id": 121, "name": "New York Mets"},
      "home": {"id": 143, "name": "Philadelphia Phillies"}
    },
    "venue": {"name": "Citizens Bank Park"}
  },
  "liveData": {
    "linescore": {
      "innings": [
        {"num": 1, "away": {"runs": 2}, "home": {"runs": 0}},
        {"num": 2, "away": {"runs": 0}, "home": {"runs": 1}}
      ],
      "teams": {"away": {"runs": 2}, "home": {"runs": 1}}
    },
    "boxscore": {
      "teams": {
        "away": {
          "team": {"id": 121, "name": "New York Mets"},
          "players": {
            "ID501": {
              "person": {"id": 501, "fullName": "Pete Alonso"},
              "position": {"abbreviation": "1B"},
              "battingOrder": "300",
              "stats": {
                "batting": {"atBats": 4, "plateAppearances": 4, "hits": 2, "homeRuns": 1, "rbi": 2, "runs": 1},
                "pitching": {}
              }
            },
            "ID601": {
              "person": {"id": 601, "fullName": "Kodai Senga"},
              "position": {"abbreviation": "P"},
              "stats": {
                "batting": {},
                "pitching": {"inningsPitched": "6.2", "gamesStarted": 1, "battersFaced": 26, "hits": 5, "earnedRuns": 2, "baseOnBalls": 1, "strikeOuts": 8}
              }
            },
            "ID999": {
              "person": {"id": 999, "fullName": "Bench Player"},
              "position": {"abbreviation": "C"},
              "stats": {"batting": {}, "pitching": {}}
            }
          }
        },
        "home": {
          "team": {"id": 143, "name": "Philadelphia Phillies"},
          "players": {}
        }
      }
    }
  }
}`

func TestFeedLive_ExtractsDomainModels(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1.1/game/777001/feed/live" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(feedBody))
	}))

	feed, err := client.FeedLive(context.Background(), 777001)
	if err != nil {
		t.Fatalf("FeedLive: %v", err)
	}

	s := feed.Summary
	if s.GamePk != 777001 || s.Status != "Final" || s.GameDate != "2025-08-28" {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.AwayTeamName != "New York Mets" || s.AwayScore != 2 || s.HomeScore != 1 {
		t.Fatalf("unexpected teams/score: %+v", s)
	}
	if len(feed.Linescore) != 2 || feed.Linescore[0].AwayRuns != 2 || feed.Linescore[1].HomeRuns != 1 {
		t.Fatalf("unexpected linescore: %+v", feed.Linescore)
	}
	if len(feed.Raw) == 0 {
		t.Fatalf("expected raw payload to be retained")
	}

	// The bench player with an empty line is skipped.
	if len(feed.Players) != 2 {
		t.Fatalf("expected 2 players, got %d: %+v", len(feed.Players), feed.Players)
	}
	batter := feed.Players[0]
	if batter.PlayerID != 501 || !batter.Batted || batter.Batting.HomeRuns != 1 || batter.BattingOrder != 300 {
		t.Fatalf("unexpected batter: %+v", batter)
	}
	pitcher := feed.Players[1]
	if pitcher.PlayerID != 601 || !pitcher.Pitched || !pitcher.Started {
		t.Fatalf("unexpected pitcher: %+v", pitcher)
	}
	if pitcher.Pitching.Outs != 20 || pitcher.Pitching.Strikeouts != 8 {
		t.Fatalf("unexpected pitching line: %+v", pitcher.Pitching)
	}
}

const standingsBody = `{
  "records": [
    {
      "league": {"id": 104, "name": "National League"},
      "division": {"id": 204, "name": "National League East"},
      "teamRecords": [
        {"team": {"id": 121, "name": "New York Mets"}, "wins": 88, "losses": 74},
        {"team": {"id": 143, "name": "Philadelphia Phillies"}, "wins": 90, "losses": 72}
      ]
    }
  ]
}`

func TestFetchStandings_EnrichesRecords(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(standingsBody))
	}))

	records, err := client.FetchStandings(context.Background())
	if err != nil {
		t.Fatalf("FetchStandings: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	league, ok := records[0]["league"].(map[string]any)
	if !ok || league["name"] != "National League" {
		t.Fatalf("expected enriched league, got %+v", records[0])
	}
	division, ok := records[0]["division"].(map[string]any)
	if !ok || division["name"] != "National League East" {
		t.Fatalf("expected enriched division, got %+v", records[0])
	}
}

func TestDoJSON_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(scheduleBody))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	if _, err := client.ScheduleGames(context.Background(), 121, "2025-08-28"); err != nil {
		t.Fatalf("expected retry to recover: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestDoJSON_TerminalStatusDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	if _, err := client.ScheduleGames(context.Background(), 121, "2025-08-28"); err == nil {
		t.Fatalf("expected terminal failure")
	}
	if calls.Load() != 1 {
		t.Fatalf("404 should not be retried, got %d attempts", calls.Load())
	}
}

func TestDoJSON_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := client.ScheduleGames(ctx, 121, "2025-08-28"); err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}

	_, err := client.ScheduleGames(ctx, 121, "2025-08-28")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected circuit rejection, got %v", err)
	}
}
