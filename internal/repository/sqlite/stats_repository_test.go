package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/davide/gamereview/internal/analysis"
	"github.com/davide/gamereview/internal/board"
	"github.com/davide/gamereview/internal/models"
	"github.com/davide/gamereview/internal/repository"
	"github.com/davide/gamereview/internal/repository/sqlite"
	"github.com/davide/gamereview/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	games   repository.GameRepository
	reports repository.ReportRepository
	repo    repository.StatsRepository
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.games = sqlite.NewGameRepository(s.db)
	s.reports = sqlite.NewReportRepository(s.db)
	s.repo = sqlite.NewStatsRepository(s.db)
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) TestSummaryEmptyDatabase() {
	stats, err := s.repo.Summary(context.Background())
	s.Require().NoError(err)
	s.Equal(0, stats.TotalGames)
	s.Equal(0, stats.AnalyzedGames)
	s.Equal(0, stats.TotalMoves)
	s.Equal(0.0, stats.AvgAccuracy)
	s.Empty(stats.Classifications)
}

func (s *StatsRepositorySuite) TestSummary() {
	ctx := context.Background()

	analyzed, err := s.games.Insert(ctx, models.Game{
		PGN: "1. e4 e5", AnalysisStatus: models.StatusCompleted, PlayedAt: time.Now().UTC(),
	})
	s.Require().NoError(err)
	_, err = s.games.Insert(ctx, models.Game{
		PGN: "1. d4 d5", AnalysisStatus: models.StatusFailed, PlayedAt: time.Now().UTC(),
	})
	s.Require().NoError(err)
	_, err = s.games.Insert(ctx, models.Game{
		PGN: "1. c4 e5", PlayedAt: time.Now().UTC(),
	})
	s.Require().NoError(err)

	report := &analysis.GameReport{
		Moves: []analysis.MoveRecord{
			{Ply: 0, Color: board.White, MoveUCI: "e2e4", FENBefore: "f0", FENAfter: "f1",
				Classification: analysis.LabelBest},
			{Ply: 1, Color: board.Black, MoveUCI: "e7e5", FENBefore: "f1", FENAfter: "f2",
				Classification: analysis.LabelBest},
			{Ply: 2, Color: board.White, MoveUCI: "g1f3", FENBefore: "f2", FENAfter: "f3",
				Classification: analysis.LabelExcellent},
			{Ply: 3, Color: board.Black, MoveUCI: "d7d6", FENBefore: "f3", FENAfter: "f4",
				Err: "engine timeout"},
		},
		WhiteAccuracy: analysis.AccuracySummary{Harmonic: 90, Weighted: 90, Final: 90, Moves: 2},
		BlackAccuracy: analysis.AccuracySummary{Harmonic: 70, Weighted: 70, Final: 70, Moves: 1},
	}
	s.Require().NoError(s.reports.SaveReport(ctx, analyzed, report))

	stats, err := s.repo.Summary(ctx)
	s.Require().NoError(err)

	s.Equal(3, stats.TotalGames)
	s.Equal(1, stats.AnalyzedGames)
	s.Equal(1, stats.FailedGames)
	s.Equal(3, stats.TotalMoves, "failed plies are not counted as analyzed moves")
	s.InDelta(80, stats.AvgAccuracy, 1e-9)

	s.Require().Len(stats.Classifications, 2)
	s.Equal("best", stats.Classifications[0].Label)
	s.Equal(2, stats.Classifications[0].Count)
	s.Equal("excellent", stats.Classifications[1].Label)
	s.Equal(1, stats.Classifications[1].Count)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
