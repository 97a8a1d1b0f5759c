package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	service "github.com/okian/prospect/internal/app"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/potential"
	. "github.com/smartystreets/goconvey/convey"
)

// waitForSnapshots polls until every listed player carries the wanted
// number of snapshots or the deadline passes.
func waitForSnapshots(ctx context.Context, svc *service.Service, ids []string, want int, deadline time.Duration) bool {
	limit := time.Now().Add(deadline)
	for time.Now().Before(limit) {
		done := true
		for _, id := range ids {
			p, err := svc.GetPlayer(ctx, id)
			if err != nil || len(p.Snapshots) < want {
				done = false
				break
			}
		}
		if done {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a fully wired service", t, func() {
		svc := service.New(
			service.WithSeed(101),
			service.WithWorkerCount(2),
			service.WithQueueSize(1000),
			service.WithGuardSize(500),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		So(svc.Start(ctx), ShouldBeNil)

		Convey("When a draft class is created and developed end-to-end", func() {
			ids := make([]string, 0, 6)
			for i := 0; i < 6; i++ {
				p := rookie(fmt.Sprintf("Prospect %02d", i))
				p.Born.Year = 2004 + i%3
				p.Current().Attrs["throwing"] = 60 + i*5
				p.Current().Attrs["awareness"] = 50 + i*3

				created, err := svc.CreatePlayer(ctx, p)
				So(err, ShouldBeNil)
				ids = append(ids, created.ID)
			}

			Convey("Then the board holds the whole class with dense ranks", func() {
				entries, err := svc.TopN(ctx, 50)

				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 6)
				So(entries[0].Rank, ShouldEqual, 1)
				for i := 1; i < len(entries); i++ {
					So(entries[i].Rank, ShouldBeGreaterThanOrEqualTo, entries[i-1].Rank)
					if entries[i].Overall == entries[i-1].Overall && entries[i].Potential == entries[i-1].Potential {
						So(entries[i].Rank, ShouldEqual, entries[i-1].Rank)
					} else {
						So(entries[i].Rank, ShouldEqual, entries[i-1].Rank+1)
					}
				}
			})

			Convey("And when every player develops one season", func() {
				for _, id := range ids {
					So(svc.RequestDevelop(ctx, id, service.DevelopRequest{Years: 1}), ShouldBeNil)
				}

				So(waitForSnapshots(ctx, svc, ids, 2, 10*time.Second), ShouldBeTrue)

				Convey("Then histories grow and invariants hold", func() {
					for _, id := range ids {
						p, err := svc.GetPlayer(ctx, id)
						So(err, ShouldBeNil)
						So(len(p.Snapshots), ShouldEqual, 2)

						cur := p.Current()
						So(cur.Season, ShouldEqual, 2027)
						So(cur.Overall, ShouldBeBetweenOrEqual, 0, 100)
						So(cur.Potential, ShouldBeBetweenOrEqual, cur.Overall, 100)

						// Prior snapshot is frozen history.
						So(p.Snapshots[0].Season, ShouldEqual, 2026)

						// Undrafted players keep their draft record in
						// sync with the latest snapshot.
						So(p.Undrafted(), ShouldBeTrue)
						So(p.Draft.Overall, ShouldEqual, cur.Overall)
						So(p.Draft.Potential, ShouldEqual, cur.Potential)
					}
				})

				Convey("Then the board reflects the developed ratings", func() {
					for _, id := range ids {
						p, err := svc.GetPlayer(ctx, id)
						So(err, ShouldBeNil)

						entry, err := svc.Rank(ctx, id)
						So(err, ShouldBeNil)
						So(entry.Overall, ShouldEqual, p.Current().Overall)
						So(entry.Potential, ShouldEqual, p.Current().Potential)
					}
				})

				Convey("And a second pass into the same season stays blocked", func() {
					for _, id := range ids {
						// The completed pass keeps its reservation; the
						// next season is a fresh key.
						So(svc.RequestDevelop(ctx, id, service.DevelopRequest{Years: 1}), ShouldBeNil)
					}
					So(waitForSnapshots(ctx, svc, ids, 3, 10*time.Second), ShouldBeTrue)
				})
			})

			Convey("And when a player ages past the growth horizon", func() {
				id := ids[0]
				p, err := svc.GetPlayer(ctx, id)
				So(err, ShouldBeNil)

				years := potential.GrowthHorizonAge - p.Age(p.Current().Season)
				So(years, ShouldBeGreaterThan, 0)
				So(svc.RequestDevelop(ctx, id, service.DevelopRequest{Years: years}), ShouldBeNil)
				So(waitForSnapshots(ctx, svc, []string{id}, 1+years, 15*time.Second), ShouldBeTrue)

				Convey("Then potential converges to overall", func() {
					aged, err := svc.GetPlayer(ctx, id)
					So(err, ShouldBeNil)

					cur := aged.Current()
					So(aged.Age(cur.Season), ShouldBeGreaterThanOrEqualTo, potential.GrowthHorizonAge)
					So(cur.Potential, ShouldEqual, cur.Overall)
				})
			})

			Convey("And when a player is removed", func() {
				So(svc.RemovePlayer(ctx, ids[0]), ShouldBeNil)

				_, err := svc.GetPlayer(ctx, ids[0])
				So(err, ShouldNotBeNil)

				entries, terr := svc.TopN(ctx, 50)
				So(terr, ShouldBeNil)
				So(entries, ShouldHaveLength, 5)
			})
		})

		Convey("When a bulk-generation pass rolls a rookie forward", func() {
			p := rookie("Rolled Forward")
			created, err := svc.CreatePlayer(ctx, p)
			So(err, ShouldBeNil)
			bornBefore := created.Born.Year

			So(svc.RequestDevelop(ctx, created.ID, service.DevelopRequest{Years: 3, NewPlayer: true}), ShouldBeNil)

			deadline := time.Now().Add(10 * time.Second)
			var rolled *model.Player
			for time.Now().Before(deadline) {
				rolled, err = svc.GetPlayer(ctx, created.ID)
				So(err, ShouldBeNil)
				if rolled.Born.Year != bornBefore {
					break
				}
				time.Sleep(10 * time.Millisecond)
			}

			Convey("Then the birth year shifts back without adding history", func() {
				So(rolled.Born.Year, ShouldEqual, bornBefore-3)
				So(len(rolled.Snapshots), ShouldEqual, 1)
			})
		})
	})
}
