package integration

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	api "github.com/ManiacAyu/RetainSure-urlShortner/internal/api/http"
	"github.com/ManiacAyu/RetainSure-urlShortner/internal/service"
	"github.com/ManiacAyu/RetainSure-urlShortner/internal/storage/memory"
)

const (
	baseURL     = "http://localhost:8080"
	maxAttempts = 100
)

type APITestSuite struct {
	suite.Suite
	server *httptest.Server
	e      *httpexpect.Expect
}

func (suite *APITestSuite) SetupSubTest() {
	logger := httplog.NewLogger("", httplog.Options{Writer: io.Discard})

	store := memory.New()
	urlSvc := service.NewURLService(store, maxAttempts)
	router := api.NewRouter(logger, urlSvc, baseURL)

	suite.server = httptest.NewServer(router)
	suite.e = httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  suite.server.URL,
		Reporter: httpexpect.NewAssertReporter(suite.T()),
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	})
}

func (suite *APITestSuite) TearDownSubTest() {
	suite.server.Close()
}

func (suite *APITestSuite) shorten(url string) string {
	resp := suite.e.POST("/api/shorten").
		WithJSON(map[string]string{"url": url}).
		Expect().
		Status(http.StatusCreated).
		JSON().Object()

	return resp.Value("short_code").String().Raw()
}

func (suite *APITestSuite) TestShortenRedirectStats() {
	suite.Run("full lifecycle", func() {
		resp := suite.e.POST("/api/shorten").
			WithJSON(map[string]string{"url": "www.example.com"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()

		resp.HasValue("original_url", "https://www.example.com")

		shortCode := resp.Value("short_code").String().Raw()
		suite.Len(shortCode, 6)
		resp.HasValue("short_url", baseURL+"/"+shortCode)

		suite.e.GET("/api/stats/" + shortCode).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("url", "https://www.example.com").
			HasValue("clicks", 0)

		suite.e.GET("/" + shortCode).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://www.example.com")

		suite.e.GET("/api/stats/" + shortCode).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("short_code", shortCode).
			HasValue("clicks", 1)
	})

	suite.Run("distinct urls get distinct codes", func() {
		first := suite.shorten("https://example.com/one")
		second := suite.shorten("https://example.com/two")

		suite.NotEqual(first, second)

		suite.e.GET("/" + first).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://example.com/one")
		suite.e.GET("/" + second).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://example.com/two")
	})

	suite.Run("concurrent clicks are all counted", func() {
		const clicks = 25

		shortCode := suite.shorten("https://example.com")

		client := suite.server.Client()
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}

		g := new(errgroup.Group)
		for i := 0; i < clicks; i++ {
			g.Go(func() error {
				resp, err := client.Get(suite.server.URL + "/" + shortCode)
				if err != nil {
					return err
				}
				return resp.Body.Close()
			})
		}
		suite.NoError(g.Wait())

		suite.e.GET("/api/stats/" + shortCode).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("clicks", clicks)
	})
}

func (suite *APITestSuite) TestShortenRejectsInvalidInput() {
	suite.Run("empty body", func() {
		suite.e.POST("/api/shorten").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("status", "error")
	})

	suite.Run("empty url", func() {
		suite.e.POST("/api/shorten").
			WithJSON(map[string]string{"url": ""}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("status", "error")
	})

	suite.Run("no valid host", func() {
		suite.e.POST("/api/shorten").
			WithJSON(map[string]string{"url": "not-a-valid-url"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("error", "Invalid URL")
	})
}

func (suite *APITestSuite) TestLookupFailures() {
	suite.Run("malformed short code", func() {
		suite.e.GET("/api/stats/abc-12").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("error", "Invalid short code")
	})

	suite.Run("well-formed but never issued", func() {
		suite.e.GET("/abc123").
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("error", "Not found")

		suite.e.GET("/api/stats/abc123").
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("error", "Not found")
	})
}

func (suite *APITestSuite) TestHealth() {
	suite.Run("root and api health", func() {
		suite.e.GET("/").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("status", "healthy")

		suite.e.GET("/api/health").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("status", "ok")
	})
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
