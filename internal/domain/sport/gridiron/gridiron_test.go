package gridiron_test

import (
	"testing"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/sport"
	gridiron "github.com/okian/prospect/internal/domain/sport/gridiron"
	. "github.com/smartystreets/goconvey/convey"
)

func flatSnapshot(level int) *model.RatingsSnapshot {
	attrs := make(map[string]int)
	for _, name := range gridiron.AttributeNames() {
		attrs[name] = level
	}
	return &model.RatingsSnapshot{Season: 2026, Attrs: attrs}
}

func TestStrategyShape(t *testing.T) {
	Convey("Given the gridiron strategy", t, func() {
		s := gridiron.New()

		Convey("Then its identity should be stable", func() {
			So(s.Name(), ShouldEqual, "gridiron")
			So(s.MultiPosition(), ShouldBeTrue)
		})

		Convey("Then its position list should be canonical and unique", func() {
			ps := s.Positions()
			So(len(ps), ShouldEqual, 13)
			So(ps[0], ShouldEqual, gridiron.QB)

			seen := make(map[model.Position]bool)
			for _, p := range ps {
				So(seen[p], ShouldBeFalse)
				seen[p] = true
			}
		})

		Convey("Then return specialists should be ineligible as primary", func() {
			banned := s.IneligiblePrimary()
			So(banned.Contains(gridiron.KR), ShouldBeTrue)
			So(banned.Contains(gridiron.PR), ShouldBeTrue)
			So(banned.Contains(gridiron.QB), ShouldBeFalse)
		})

		Convey("And mutating the returned position slice should not leak", func() {
			ps := s.Positions()
			ps[0] = "XX"
			So(s.Positions()[0], ShouldEqual, gridiron.QB)
		})
	})
}

func TestOverall(t *testing.T) {
	Convey("Given the gridiron strategy", t, func() {
		s := gridiron.New()

		Convey("When the attribute vector is flat", func() {
			snap := flatSnapshot(60)

			Convey("Then every position should rate at that level", func() {
				for _, pos := range s.Positions() {
					So(s.Overall(snap, pos), ShouldEqual, 60)
				}
			})
		})

		Convey("When throwing dominates", func() {
			snap := flatSnapshot(50)
			snap.Attrs["throwing"] = 95
			snap.Attrs["awareness"] = 90

			Convey("Then QB should outrate RB", func() {
				So(s.Overall(snap, gridiron.QB), ShouldBeGreaterThan, s.Overall(snap, gridiron.RB))
			})

			Convey("And QB should be the primary position", func() {
				So(s.PrimaryPosition(snap), ShouldEqual, gridiron.QB)
			})
		})

		Convey("When speed dominates everything else", func() {
			snap := flatSnapshot(40)
			snap.Attrs["speed"] = 99
			snap.Attrs["agility"] = 95
			snap.Attrs["carrying"] = 90

			Convey("Then primary should never be a return-only code", func() {
				primary := s.PrimaryPosition(snap)
				So(primary, ShouldNotEqual, gridiron.KR)
				So(primary, ShouldNotEqual, gridiron.PR)
			})
		})

		Convey("When an unknown position is asked for", func() {
			snap := flatSnapshot(60)

			Convey("Then the overall should be zero", func() {
				So(s.Overall(snap, "??"), ShouldEqual, 0)
			})
		})

		Convey("Then overalls should always stay within bounds", func() {
			for _, level := range []int{0, 1, 50, 99, 100} {
				snap := flatSnapshot(level)
				for _, pos := range s.Positions() {
					o := s.Overall(snap, pos)
					So(o, ShouldBeGreaterThanOrEqualTo, 0)
					So(o, ShouldBeLessThanOrEqualTo, 100)
				}
			}
		})
	})
}

func TestDevelopSeason(t *testing.T) {
	Convey("Given the gridiron strategy", t, func() {
		s := gridiron.New()

		Convey("When a young player develops with neutral coaching", func() {
			snap := flatSnapshot(50)
			rng := sport.NewSeededSource(7, 0)
			s.DevelopSeason(snap, 20, sport.NoCoaching, rng)

			Convey("Then attributes should grow within the age-curve band", func() {
				for _, name := range gridiron.AttributeNames() {
					So(snap.Attrs[name], ShouldBeGreaterThanOrEqualTo, 51) // base 3, noise -2
					So(snap.Attrs[name], ShouldBeLessThanOrEqualTo, 55)   // base 3, noise +2
				}
			})
		})

		Convey("When a declining player develops", func() {
			snap := flatSnapshot(80)
			rng := sport.NewSeededSource(7, 0)
			s.DevelopSeason(snap, 31, sport.NoCoaching, rng)

			Convey("Then attributes should drift down or hold", func() {
				for _, name := range gridiron.AttributeNames() {
					So(snap.Attrs[name], ShouldBeLessThanOrEqualTo, 81) // base -1, noise +2
				}
			})
		})

		Convey("When the same seed develops two identical snapshots", func() {
			a := flatSnapshot(50)
			b := flatSnapshot(50)
			s.DevelopSeason(a, 22, 10, sport.NewSeededSource(42, 1))
			s.DevelopSeason(b, 22, 10, sport.NewSeededSource(42, 1))

			Convey("Then the results should be identical", func() {
				So(a.Attrs, ShouldResemble, b.Attrs)
			})
		})

		Convey("When attributes sit at the cap", func() {
			snap := flatSnapshot(100)
			s.DevelopSeason(snap, 19, 1, sport.NewSeededSource(3, 0))

			Convey("Then they should stay clamped to 100", func() {
				for _, name := range gridiron.AttributeNames() {
					So(snap.Attrs[name], ShouldEqual, 100)
				}
			})
		})
	})
}

func TestWeightGrowth(t *testing.T) {
	Convey("Given the gridiron strategy", t, func() {
		s := gridiron.New()

		Convey("When frame and strength are typical", func() {
			So(s.WeightGrowth(74, 60), ShouldEqual, 200)
		})

		Convey("When the frame is taller or stronger", func() {
			So(s.WeightGrowth(78, 60), ShouldBeGreaterThan, s.WeightGrowth(74, 60))
			So(s.WeightGrowth(74, 90), ShouldBeGreaterThan, s.WeightGrowth(74, 60))
		})

		Convey("When height is missing", func() {
			So(s.WeightGrowth(0, 60), ShouldEqual, 0)
		})
	})
}

func TestCoefficients(t *testing.T) {
	Convey("Given the built-in regression table", t, func() {
		table := gridiron.Coefficients()
		s := gridiron.New()

		Convey("Then every valid position should have a row", func() {
			for _, pos := range s.Positions() {
				_, ok := table[pos]
				So(ok, ShouldBeTrue)
			}
		})

		Convey("Then rows should project growth for a young average player", func() {
			// age 20, overall 60
			for _, c := range table {
				projected := c.Intercept + c.Age*20 + c.Overall*60 + c.Interaction*20*60
				So(projected, ShouldBeGreaterThan, 60)
				So(projected, ShouldBeLessThanOrEqualTo, 100)
			}
		})
	})
}

func TestTagger(t *testing.T) {
	Convey("Given the gridiron skill tagger", t, func() {
		tagger := gridiron.Tagger()

		Convey("When a snapshot has an elite arm", func() {
			snap := flatSnapshot(50)
			snap.Attrs["throwing"] = 95
			snap.Attrs["awareness"] = 90

			tags := tagger.Tags(snap)

			Convey("Then arm tags should be awarded in rule order", func() {
				So(tags, ShouldContain, "cannon_arm")
				So(tags, ShouldContain, "field_general")
				So(tags[0], ShouldEqual, "cannon_arm")
			})
		})

		Convey("When a snapshot is mediocre everywhere", func() {
			snap := flatSnapshot(55)

			Convey("Then no tags should be awarded", func() {
				So(tagger.Tags(snap), ShouldBeEmpty)
			})
		})
	})
}
