package model_test

import (
	"testing"

	"github.com/mgeis2/ssc-to-monday/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScoredDomainRated(t *testing.T) {
	Convey("Given scored domain entries", t, func() {
		Convey("When both score and grade are present", func() {
			s := model.ScoredDomain{Domain: "example.com", Score: model.Float64(82), Grade: "B"}
			So(s.Rated(), ShouldBeTrue)
		})

		Convey("When the score is absent", func() {
			s := model.ScoredDomain{Domain: "example.com", Grade: "B"}
			So(s.Rated(), ShouldBeFalse)
		})

		Convey("When the grade is absent", func() {
			s := model.ScoredDomain{Domain: "example.com", Score: model.Float64(82)}
			So(s.Rated(), ShouldBeFalse)
		})

		Convey("When both are absent", func() {
			s := model.ScoredDomain{Domain: "example.com"}
			So(s.Rated(), ShouldBeFalse)
		})
	})
}
