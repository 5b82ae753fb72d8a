package scorecard_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/mgeis2/ssc-to-monday/internal/adapters/scorecard"
	. "github.com/smartystreets/goconvey/convey"
)

// fakePortfolio serves a paginated companies endpoint backed by a slice of
// JSON entry fragments.
func fakePortfolio(t *testing.T, entries []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		end := offset + limit
		if end > len(entries) {
			end = len(entries)
		}
		var page []string
		if offset < len(entries) {
			page = entries[offset:end]
		}

		next := ""
		if end < len(entries) {
			next = `"next":{"href":"more"}`
		}
		// links.next is an object in the real API; the client only cares
		// whether it is present.
		body := `{"entries":[`
		for i, e := range page {
			if i > 0 {
				body += ","
			}
			body += e
		}
		body += `],"links":{` + next + `}}`

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
}

func TestPortfolio(t *testing.T) {
	Convey("Given a portfolio endpoint", t, func() {
		ctx := context.Background()

		Convey("When the portfolio spans several pages", func() {
			var entries []string
			for i := 0; i < 5; i++ {
				entries = append(entries,
					fmt.Sprintf(`{"domain":"Vendor%d.example.com","score":%d,"grade":"B"}`, i, 70+i))
			}
			srv := fakePortfolio(t, entries)
			defer srv.Close()

			c := scorecard.New("good-key", "pf-1",
				scorecard.WithBaseURL(srv.URL),
				scorecard.WithPageSize(2),
			)
			got, err := c.Portfolio(ctx)

			Convey("Then every page is consumed and domains are normalized", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 5)
				So(got[0].Domain, ShouldEqual, "vendor0.example.com")
				So(got[4].Domain, ShouldEqual, "vendor4.example.com")
				So(*got[0].Score, ShouldEqual, 70)
				So(got[0].Grade, ShouldEqual, "B")
			})
		})

		Convey("When the portfolio exceeds the configured ceiling", func() {
			var entries []string
			for i := 0; i < 10; i++ {
				entries = append(entries,
					fmt.Sprintf(`{"domain":"v%d.example.com","score":50,"grade":"C"}`, i))
			}
			srv := fakePortfolio(t, entries)
			defer srv.Close()

			c := scorecard.New("good-key", "pf-1",
				scorecard.WithBaseURL(srv.URL),
				scorecard.WithPageSize(3),
				scorecard.WithMaxDomains(4),
			)
			got, err := c.Portfolio(ctx)

			Convey("Then no more than the ceiling is returned", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 4)
			})
		})

		Convey("When an entry is missing its score or grade", func() {
			srv := fakePortfolio(t, []string{
				`{"domain":"a.example.com","score":82}`,
				`{"domain":"b.example.com","grade":"A"}`,
			})
			defer srv.Close()

			c := scorecard.New("good-key", "pf-1", scorecard.WithBaseURL(srv.URL))
			got, err := c.Portfolio(ctx)

			Convey("Then the entry is kept with the field absent", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got[0].Grade, ShouldBeEmpty)
				So(got[0].Rated(), ShouldBeFalse)
				So(got[1].Score, ShouldBeNil)
				So(got[1].Rated(), ShouldBeFalse)
			})
		})

		Convey("When the API key is rejected", func() {
			srv := fakePortfolio(t, nil)
			defer srv.Close()

			c := scorecard.New("bad-key", "pf-1", scorecard.WithBaseURL(srv.URL))
			_, err := c.Portfolio(ctx)

			Convey("Then the error wraps ErrAuth", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, scorecard.ErrAuth), ShouldBeTrue)
			})
		})

		Convey("When a page request fails", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			c := scorecard.New("good-key", "pf-1", scorecard.WithBaseURL(srv.URL))
			_, err := c.Portfolio(ctx)

			Convey("Then the error wraps ErrPageFetch and nothing is returned", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, scorecard.ErrPageFetch), ShouldBeTrue)
			})
		})

		Convey("When the portfolio is empty", func() {
			srv := fakePortfolio(t, nil)
			defer srv.Close()

			c := scorecard.New("good-key", "pf-1", scorecard.WithBaseURL(srv.URL))
			got, err := c.Portfolio(ctx)

			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})
	})
}
