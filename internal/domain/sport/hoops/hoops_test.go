package hoops_test

import (
	"testing"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/sport"
	hoops "github.com/okian/prospect/internal/domain/sport/hoops"
	. "github.com/smartystreets/goconvey/convey"
)

func flatSnapshot(level int) *model.RatingsSnapshot {
	attrs := make(map[string]int)
	for _, name := range hoops.AttributeNames() {
		attrs[name] = level
	}
	return &model.RatingsSnapshot{Season: 2026, Attrs: attrs}
}

func TestStrategyShape(t *testing.T) {
	Convey("Given the hoops strategy", t, func() {
		s := hoops.New()

		Convey("Then its identity should be stable", func() {
			So(s.Name(), ShouldEqual, "hoops")
			So(s.MultiPosition(), ShouldBeFalse)
		})

		Convey("Then every role should be eligible as primary", func() {
			So(s.IneligiblePrimary().Cardinality(), ShouldEqual, 0)
		})

		Convey("Then the role list should be G, F, C", func() {
			So(s.Positions(), ShouldResemble, []model.Position{hoops.G, hoops.F, hoops.C})
		})
	})
}

func TestOverall(t *testing.T) {
	Convey("Given the hoops strategy", t, func() {
		s := hoops.New()

		Convey("When the attribute vector is flat", func() {
			snap := flatSnapshot(70)

			Convey("Then overall should equal that level regardless of position", func() {
				So(s.Overall(snap, hoops.G), ShouldEqual, 70)
				So(s.Overall(snap, hoops.C), ShouldEqual, 70)
				So(s.Overall(snap, ""), ShouldEqual, 70)
			})
		})

		Convey("When attributes are empty", func() {
			So(s.Overall(&model.RatingsSnapshot{}, hoops.G), ShouldEqual, 0)
		})
	})
}

func TestPrimaryPosition(t *testing.T) {
	Convey("Given the hoops strategy", t, func() {
		s := hoops.New()

		Convey("When the profile is interior-heavy", func() {
			snap := flatSnapshot(60)
			snap.Attrs["rebounding"] = 90
			snap.Attrs["defense"] = 85

			So(s.PrimaryPosition(snap), ShouldEqual, hoops.C)
		})

		Convey("When the profile is perimeter-heavy", func() {
			snap := flatSnapshot(60)
			snap.Attrs["passing"] = 88
			snap.Attrs["handling"] = 86

			So(s.PrimaryPosition(snap), ShouldEqual, hoops.G)
		})

		Convey("When the profile is balanced", func() {
			snap := flatSnapshot(60)

			So(s.PrimaryPosition(snap), ShouldEqual, hoops.F)
		})
	})
}

func TestDevelopSeason(t *testing.T) {
	Convey("Given the hoops strategy", t, func() {
		s := hoops.New()

		Convey("When a veteran past the growth horizon develops", func() {
			snap := flatSnapshot(80)
			s.DevelopSeason(snap, 31, sport.NoCoaching, sport.NewSeededSource(5, 0))

			Convey("Then physical attributes should decline at least as fast as skills", func() {
				So(snap.Attrs["athleticism"], ShouldBeLessThanOrEqualTo, 80)
			})
		})

		Convey("When the same seed develops two identical snapshots", func() {
			a := flatSnapshot(55)
			b := flatSnapshot(55)
			s.DevelopSeason(a, 21, 8, sport.NewSeededSource(11, 2))
			s.DevelopSeason(b, 21, 8, sport.NewSeededSource(11, 2))

			So(a.Attrs, ShouldResemble, b.Attrs)
		})
	})
}

func TestWeightGrowth(t *testing.T) {
	Convey("Given the hoops strategy", t, func() {
		Convey("Then body mass should not be modeled", func() {
			So(hoops.New().WeightGrowth(80, 70), ShouldEqual, 0)
		})
	})
}

func TestCoefficients(t *testing.T) {
	Convey("Given the built-in regression table", t, func() {
		table := hoops.Coefficients()
		s := hoops.New()

		Convey("Then every role plus the neutral row should be present", func() {
			for _, pos := range s.Positions() {
				_, ok := table[pos]
				So(ok, ShouldBeTrue)
			}
			_, ok := table[model.Position("")]
			So(ok, ShouldBeTrue)
		})
	})
}
