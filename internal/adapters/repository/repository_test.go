package repository_test

import (
	"errors"
	"testing"

	"github.com/okian/headcount/internal/adapters/repository"
	"github.com/okian/headcount/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistrictRepository(t *testing.T) {
	Convey("Given a district repository with data in several categories", t, func() {
		repo := repository.NewDistrictRepository()
		repo.Enrollments().Upsert("Colorado").RecordKindergartenParticipation(2010, 0.5)
		repo.Enrollments().Upsert("academy 20").RecordKindergartenParticipation(2010, 0.4)
		repo.StatewideTests().Upsert("ACADEMY 20").RecordGradeProficiency(model.ThirdGrade, model.Math, 2010, 0.8)
		repo.EconomicProfiles().Upsert("YUMA SCHOOL DISTRICT 1").RecordTitleI(2010, 0.2)

		Convey("Then names are normalized and kept in load order", func() {
			So(repo.Names(), ShouldResemble, []string{"COLORADO", "ACADEMY 20", "YUMA SCHOOL DISTRICT 1"})
			So(repo.Count(), ShouldEqual, 3)
		})

		Convey("Then lookup is case-insensitive", func() {
			d, ok := repo.FindByName("Academy 20")
			So(ok, ShouldBeTrue)
			So(d.Name(), ShouldEqual, "ACADEMY 20")
			v, ok := d.Enrollment().KindergartenParticipationInYear(2010)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0.4)
		})

		Convey("Then the baseline resolves through its alias", func() {
			d, ok := repo.FindByName("statewide")
			So(ok, ShouldBeTrue)
			So(d.Name(), ShouldEqual, "COLORADO")
			So(repo.IsBaseline("STATEWIDE"), ShouldBeTrue)
			So(repo.IsBaseline("COLORADO"), ShouldBeTrue)
			So(repo.IsBaseline("ACADEMY 20"), ShouldBeFalse)
		})

		Convey("Then a district only in economic data has empty other categories", func() {
			d, ok := repo.FindByName("YUMA SCHOOL DISTRICT 1")
			So(ok, ShouldBeTrue)
			So(d.Enrollment().KindergartenParticipationByYear().Len(), ShouldEqual, 0)
		})

		Convey("Then unknown names are reported", func() {
			_, ok := repo.FindByName("NOWHERE")
			So(ok, ShouldBeFalse)

			_, err := repo.Find("NOWHERE")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			_, err = repo.Find("  ")
			So(errors.Is(err, repository.ErrInvalidName), ShouldBeTrue)
		})

		Convey("Then Upsert returns the existing record", func() {
			again := repo.Enrollments().Upsert("ACADEMY 20")
			v, _ := again.KindergartenParticipationInYear(2010)
			So(v, ShouldEqual, 0.4)
			So(repo.Enrollments().Count(), ShouldEqual, 2)
		})
	})

	Convey("Given baseline rows keyed under different aliases", t, func() {
		repo := repository.NewDistrictRepository()
		repo.Enrollments().Upsert("Colorado").RecordKindergartenParticipation(2010, 0.5)
		repo.Enrollments().Upsert("COLORADO").RecordGraduationRate(2010, 0.8)
		repo.EconomicProfiles().Upsert("STATEWIDE").RecordChildrenInPoverty(2010, 0.2)
		repo.StatewideTests().Upsert("statewide").RecordGradeProficiency(model.ThirdGrade, model.Math, 2010, 0.7)

		Convey("Then every category stores them under the one baseline name", func() {
			So(repo.Names(), ShouldResemble, []string{"COLORADO"})
			So(repo.EconomicProfiles().Names(), ShouldResemble, []string{"COLORADO"})
			So(repo.StatewideTests().Names(), ShouldResemble, []string{"COLORADO"})
		})

		Convey("Then either alias finds the economic data", func() {
			for _, name := range []string{"STATEWIDE", "Colorado"} {
				d, ok := repo.FindByName(name)
				So(ok, ShouldBeTrue)
				So(d.Name(), ShouldEqual, "COLORADO")
				So(d.EconomicProfile().ChildrenInPoverty()[2010], ShouldEqual, 0.2)
			}
		})
	})

	Convey("Given shared category stores and a custom baseline", t, func() {
		economics := repository.NewEconomicProfileRepository()
		repo := repository.NewDistrictRepository(
			repository.WithEconomicProfiles(economics),
			repository.WithBaseline("state total"),
		)
		economics.Upsert("Statewide").RecordTitleI(2010, 0.1)

		Convey("Then writes through the shared store fold onto the baseline", func() {
			So(repo.Names(), ShouldResemble, []string{"STATE TOTAL"})
			_, ok := economics.FindByName("state total")
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given a repository with a custom baseline", t, func() {
		repo := repository.NewDistrictRepository(
			repository.WithBaseline("state total"),
			repository.WithBaselineAliases("all districts"),
		)

		Convey("Then aliases fold onto the configured baseline", func() {
			So(repo.Baseline(), ShouldEqual, "STATE TOTAL")
			So(repo.Canonical("All Districts"), ShouldEqual, "STATE TOTAL")
			So(repo.Canonical("statewide"), ShouldEqual, "STATE TOTAL")
		})
	})
}
