package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/hyperhustle/hustle-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	start   time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) finisher(id, name string, clicks int, after time.Duration) *model.Player {
	ft := s.start.Add(after)
	return &model.Player{
		ID:         model.PlayerID(id),
		Username:   name,
		Clicks:     clicks,
		Finished:   true,
		FinishTime: &ft,
	}
}

func (s *ServiceSuite) game(players ...*model.Player) *model.Game {
	g := &model.Game{
		ID:        "ABC123",
		Status:    model.GameStatusActive,
		StartedAt: &s.start,
		Players:   make(map[model.PlayerID]*model.Player),
	}
	for _, p := range players {
		g.Players[p.ID] = p
	}
	return g
}

func (s *ServiceSuite) TestNilGameYieldsNoEntries() {
	s.Empty(s.service.Compute(nil))
}

func (s *ServiceSuite) TestSortsByClicksThenTime() {
	a := s.finisher("a", "A", 5, 1*time.Second)
	b := s.finisher("b", "B", 3, 5*time.Second)
	c := &model.Player{ID: "c", Username: "C", Clicks: 1} // not finished

	entries := s.service.Compute(s.game(a, b, c))
	s.Require().Len(entries, 2)
	s.Equal("B", entries[0].Username)
	s.Equal("A", entries[1].Username)
}

func (s *ServiceSuite) TestClickTieBrokenByTime() {
	fast := s.finisher("a", "Fast", 4, 2*time.Second)
	slow := s.finisher("b", "Slow", 4, 9*time.Second)

	entries := s.service.Compute(s.game(slow, fast))
	s.Require().Len(entries, 2)
	s.Equal("Fast", entries[0].Username)
	s.Equal(2*time.Second, entries[0].TimeTaken)
	s.Equal("Slow", entries[1].Username)
}

func (s *ServiceSuite) TestResignedFinisherExcluded() {
	p := s.finisher("a", "A", 2, time.Second)
	p.Resigned = true

	s.Empty(s.service.Compute(s.game(p)))
}

func (s *ServiceSuite) TestFinisherWithoutTimeExcluded() {
	p := &model.Player{ID: "a", Username: "A", Clicks: 2, Finished: true}

	s.Empty(s.service.Compute(s.game(p)))
}

func (s *ServiceSuite) TestRecomputedFromScratch() {
	a := s.finisher("a", "A", 5, time.Second)
	g := s.game(a)

	first := s.service.Compute(g)
	s.Require().Len(first, 1)

	// Mutating a previous result must not affect later computations
	first[0].Clicks = 999

	second := s.service.Compute(g)
	s.Require().Len(second, 1)
	s.Equal(5, second[0].Clicks)
}
