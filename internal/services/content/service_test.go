package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hyperhustle/hustle-go/internal/notify"
	"github.com/hyperhustle/hustle-go/internal/testutil"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><script>alert("nope")</script><style>body{}</style></head>
<body>
<div id="mw-content-text">
<p>An <a href="/wiki/Association_football">association football</a> match,
see also <a href="/wiki/Ball#History">ball history</a> and
<a href="/wiki/Association_football">football again</a>.
External: <a href="https://example.com/outside">outside</a>.</p>
<script>alert("inline")</script>
</div>
</body>
</html>`

type ServiceTestSuite struct {
	suite.Suite
	server   *httptest.Server
	recorder *notify.Recorder
	service  *Service
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wiki/Football":
			_, _ = w.Write([]byte(samplePage))
		default:
			http.NotFound(w, r)
		}
	}))
	s.recorder = notify.NewRecorder()
	s.service = New(s.server.URL, s.server.Client(), s.recorder, testutil.NopLogger())
}

func (s *ServiceTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ServiceTestSuite) TestFetchSanitizes() {
	page, err := s.service.Fetch(context.Background(), "/wiki/Football")
	s.Require().NoError(err)

	s.False(page.Placeholder)
	s.Equal("/wiki/Football", page.Ref)
	s.Equal("Football", page.Title)
	s.NotContains(page.HTML, "<script")
	s.NotContains(page.HTML, "alert(")
	s.NotContains(page.HTML, "https://example.com/outside\"")
}

func (s *ServiceTestSuite) TestFetchExtractsDedupedLinks() {
	page, err := s.service.Fetch(context.Background(), "/wiki/Football")
	s.Require().NoError(err)

	s.Require().Len(page.Links, 2)
	s.Equal(Link{Ref: "/wiki/Association_football", Title: "Association football"}, page.Links[0])
	// Fragment stripped by normalization
	s.Equal(Link{Ref: "/wiki/Ball", Title: "Ball"}, page.Links[1])
}

func (s *ServiceTestSuite) TestFetchNormalizesRef() {
	page, err := s.service.Fetch(context.Background(), "/wiki/Football?useskin=vector#History")
	s.Require().NoError(err)
	s.Equal("/wiki/Football", page.Ref)
}

func (s *ServiceTestSuite) TestFetchFailureYieldsPlaceholder() {
	page, err := s.service.Fetch(context.Background(), "/wiki/No_such_page")
	s.Require().NoError(err)

	s.True(page.Placeholder)
	s.Contains(page.HTML, "No such page")

	notifications := s.recorder.All()
	s.Require().Len(notifications, 1)
	s.Equal(notify.KindError, notifications[0].Kind)
}
