package analyst_test

import (
	"errors"
	"testing"

	"github.com/okian/headcount/internal/adapters/repository"
	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVariation(t *testing.T) {
	Convey("Given the variation calculators", t, func() {
		Convey("When dividing 0.25 by 0.75", func() {
			v, err := analyst.Variation(0.25, 0.75)

			Convey("Then the ratio is rounded to three places", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0.333)
			})
		})

		Convey("When the baseline is zero", func() {
			_, err := analyst.Variation(0.5, 0)

			Convey("Then it reports empty data", func() {
				So(errors.Is(err, analyst.ErrEmptyData), ShouldBeTrue)
			})
		})

		Convey("When averaging an empty series", func() {
			_, err := analyst.Average(model.TimeSeries{})

			Convey("Then it reports empty data", func() {
				So(errors.Is(err, analyst.ErrEmptyData), ShouldBeTrue)
			})
		})

		Convey("When averaging a series", func() {
			avg, err := analyst.Average(model.TimeSeries{2007: 0.2, 2008: 0.4})

			Convey("Then it returns the arithmetic mean", func() {
				So(err, ShouldBeNil)
				So(avg, ShouldAlmostEqual, 0.3, 1e-12)
			})
		})
	})
}

func TestKindergartenParticipation(t *testing.T) {
	Convey("Given an analyst over the fixture districts", t, func() {
		a := analyst.New(newFixtureRepository())

		Convey("When comparing a district against the baseline", func() {
			v, err := a.KindergartenParticipationRateVariation("ACADEMY 20", "COLORADO")

			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.8)

			Convey("Then the STATEWIDE alias resolves to the same baseline", func() {
				alias, err := a.KindergartenParticipationRateVariation("academy 20", "statewide")
				So(err, ShouldBeNil)
				So(alias, ShouldEqual, v)
			})
		})

		Convey("When comparing every district with itself", func() {
			for _, name := range []string{"COLORADO", "ACADEMY 20", "PUEBLO CITY 60", "ASPEN 1", "NO DATA DISTRICT"} {
				v, err := a.KindergartenParticipationRateVariation(name, name)

				Convey("Then "+name+" has unit variation", func() {
					So(err, ShouldBeNil)
					So(v, ShouldEqual, 1.0)
				})
			}
		})

		Convey("When the against district is missing", func() {
			_, err := a.KindergartenParticipationRateVariation("ACADEMY 20", "")

			Convey("Then it reports insufficient information", func() {
				So(errors.Is(err, analyst.ErrInsufficientInformation), ShouldBeTrue)
			})
		})

		Convey("When a district is unknown", func() {
			_, err := a.KindergartenParticipationRateVariation("ATLANTIS", "COLORADO")

			Convey("Then it reports an unknown district", func() {
				So(errors.Is(err, analyst.ErrUnknownDistrict), ShouldBeTrue)
				So(errors.Is(err, analyst.ErrUnknownData), ShouldBeTrue)
			})
		})

		Convey("When computing the variation trend", func() {
			trend, err := a.KindergartenParticipationRateVariationTrend("ACADEMY 20", "COLORADO")

			Convey("Then only years both districts report are compared", func() {
				So(err, ShouldBeNil)
				So(trend, ShouldResemble, model.TimeSeries{2007: 1.0, 2008: 0.667})
			})
		})

		Convey("When comparing participation with graduation", func() {
			v, err := a.KindergartenParticipationAgainstHighSchoolGraduation("ACADEMY 20")

			Convey("Then the intra-district ratio is returned", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0.8)
			})
		})

		Convey("When a district has no graduation data", func() {
			_, err := a.KindergartenParticipationAgainstHighSchoolGraduation("NO DATA DISTRICT")

			Convey("Then it reports empty data", func() {
				So(errors.Is(err, analyst.ErrEmptyData), ShouldBeTrue)
			})
		})

		Convey("When comparing participation with household income", func() {
			v, err := a.KindergartenParticipationAgainstHouseholdIncome("ACADEMY 20")

			Convey("Then participation variation is divided by income variation", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0.4)
			})
		})
	})
}

func TestCorrelation(t *testing.T) {
	Convey("Given an analyst over the fixture districts", t, func() {
		a := analyst.New(newFixtureRepository())

		Convey("When building targets", func() {
			_, neither := analyst.NewTarget("", nil)
			_, both := analyst.NewTarget("ACADEMY 20", []string{"ASPEN 1"})
			single, errSingle := analyst.NewTarget("ACADEMY 20", nil)
			empty, errEmpty := analyst.NewTarget("", []string{})

			Convey("Then exactly one of for and across is accepted", func() {
				So(errors.Is(neither, analyst.ErrInsufficientInformation), ShouldBeTrue)
				So(errors.Is(both, analyst.ErrInsufficientInformation), ShouldBeTrue)
				So(errSingle, ShouldBeNil)
				So(single.IsAcross(), ShouldBeFalse)
				So(single.Names(), ShouldResemble, []string{"ACADEMY 20"})
				So(errEmpty, ShouldBeNil)
				So(empty.IsAcross(), ShouldBeTrue)
			})
		})

		Convey("When the target is the zero value", func() {
			_, err := a.Correlates(analyst.KindergartenGraduation, analyst.Target{})

			Convey("Then it reports insufficient information", func() {
				So(errors.Is(err, analyst.ErrInsufficientInformation), ShouldBeTrue)
			})
		})

		Convey("When judging kindergarten against graduation", func() {
			academy, err := a.KindergartenParticipationCorrelatesWithHighSchoolGraduation(analyst.For("ACADEMY 20"))
			So(err, ShouldBeNil)
			pueblo, err := a.KindergartenParticipationCorrelatesWithHighSchoolGraduation(analyst.For("PUEBLO CITY 60"))
			So(err, ShouldBeNil)

			Convey("Then ratios inside the band correlate", func() {
				So(academy, ShouldBeTrue)
				So(pueblo, ShouldBeFalse)
			})
		})

		Convey("When the target is the statewide baseline", func() {
			for _, c := range []analyst.Correlation{analyst.KindergartenGraduation, analyst.KindergartenIncome} {
				statewide, err := a.Correlates(c, analyst.For("STATEWIDE"))
				So(err, ShouldBeNil)
				colorado, err := a.Correlates(c, analyst.For("COLORADO"))
				So(err, ShouldBeNil)

				Convey("Then "+c.String()+" is false by definition", func() {
					So(statewide, ShouldBeFalse)
					So(colorado, ShouldBeFalse)
				})
			}
		})

		Convey("When judging across districts", func() {
			all, err := a.KindergartenParticipationCorrelatesWithHighSchoolGraduation(analyst.Across("ACADEMY 20", "ASPEN 1"))
			So(err, ShouldBeNil)
			mixed, err := a.KindergartenParticipationCorrelatesWithHighSchoolGraduation(analyst.Across("ACADEMY 20", "PUEBLO CITY 60"))
			So(err, ShouldBeNil)
			none, err := a.KindergartenParticipationCorrelatesWithHighSchoolGraduation(analyst.Across())
			So(err, ShouldBeNil)

			Convey("Then every district must correlate", func() {
				So(all, ShouldBeTrue)
				So(mixed, ShouldBeFalse)
				So(none, ShouldBeFalse)
			})
		})

		Convey("When an across district is unknown", func() {
			_, err := a.KindergartenParticipationCorrelatesWithHighSchoolGraduation(analyst.Across("ACADEMY 20", "ATLANTIS"))

			Convey("Then the lookup error propagates", func() {
				So(errors.Is(err, analyst.ErrUnknownDistrict), ShouldBeTrue)
			})
		})

		Convey("When judging kindergarten against household income", func() {
			academy, err := a.KindergartenParticipationCorrelatesWithHouseholdIncome(analyst.For("ACADEMY 20"))
			So(err, ShouldBeNil)
			pueblo, err := a.KindergartenParticipationCorrelatesWithHouseholdIncome(analyst.For("PUEBLO CITY 60"))
			So(err, ShouldBeNil)
			withBaseline, err := a.KindergartenParticipationCorrelatesWithHouseholdIncome(analyst.Across("PUEBLO CITY 60", "COLORADO"))
			So(err, ShouldBeNil)

			Convey("Then the income band decides", func() {
				So(academy, ShouldBeFalse)
				So(pueblo, ShouldBeTrue)
				So(withBaseline, ShouldBeFalse)
			})
		})

		Convey("When counting all correlations", func() {
			graduation, err := a.CountAllCorrelations(analyst.KindergartenGraduation)
			So(err, ShouldBeNil)
			income, err := a.CountAllCorrelations(analyst.KindergartenIncome)
			So(err, ShouldBeNil)

			Convey("Then not every district correlates", func() {
				So(graduation, ShouldEqual, 2)
				So(income, ShouldEqual, 1)
				So(graduation, ShouldBeLessThan, len(fixtureDistricts))
			})
		})

		Convey("When the bands are widened", func() {
			th := analyst.DefaultThresholds()
			th.GraduationBand = analyst.Band{Lower: 0.5, Upper: 1.5}
			wide := analyst.New(newFixtureRepository(), analyst.WithThresholds(th))
			n, err := wide.CountAllCorrelations(analyst.KindergartenGraduation)

			Convey("Then more districts correlate", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 3)
			})
		})

		Convey("When parsing family names", func() {
			c, err := analyst.ParseCorrelation("kindergarten-graduation")
			So(err, ShouldBeNil)
			_, bad := analyst.ParseCorrelation("weather")

			Convey("Then hyphens and underscores are accepted", func() {
				So(c, ShouldEqual, analyst.KindergartenGraduation)
				So(errors.Is(bad, analyst.ErrUnknownData), ShouldBeTrue)
			})
		})
	})
}

func TestGrowthQuery(t *testing.T) {
	Convey("Given growth query validation", t, func() {
		Convey("When the grade is missing", func() {
			_, err := analyst.NewGrowthQuery(0, analyst.WithSubject(model.Math))

			Convey("Then it reports insufficient information", func() {
				So(errors.Is(err, analyst.ErrInsufficientInformation), ShouldBeTrue)
			})
		})

		Convey("When the grade is not tested", func() {
			_, err := analyst.NewGrowthQuery(10)

			Convey("Then it reports unknown data", func() {
				So(errors.Is(err, analyst.ErrUnknownData), ShouldBeTrue)
			})
		})

		Convey("When weights sum to exactly one", func() {
			_, err := analyst.NewGrowthQuery(model.EighthGrade, analyst.WithWeighting(map[model.Subject]float64{
				model.Math: 0.5, model.Reading: 0.5, model.Writing: 0.0,
			}))

			Convey("Then the query is accepted", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When weights sum to 1.1", func() {
			_, err := analyst.NewGrowthQuery(model.EighthGrade, analyst.WithWeighting(map[model.Subject]float64{
				model.Math: 0.6, model.Reading: 0.5, model.Writing: 0.0,
			}))

			Convey("Then it reports unknown data", func() {
				So(errors.Is(err, analyst.ErrUnknownData), ShouldBeTrue)
			})
		})

		Convey("When a weight is negative", func() {
			_, err := analyst.NewGrowthQuery(model.ThirdGrade, analyst.WithWeighting(map[model.Subject]float64{
				model.Math: 1.5, model.Reading: -0.5,
			}))

			Convey("Then it reports unknown data", func() {
				So(errors.Is(err, analyst.ErrUnknownData), ShouldBeTrue)
			})
		})

		Convey("When top is negative", func() {
			_, err := analyst.NewGrowthQuery(model.ThirdGrade, analyst.WithTop(-1))

			Convey("Then it reports unknown data", func() {
				So(errors.Is(err, analyst.ErrUnknownData), ShouldBeTrue)
			})
		})

		Convey("When parsing a weighting string", func() {
			w, err := analyst.ParseWeighting("math:0.5, reading:0.5,writing:0")
			_, bad := analyst.ParseWeighting("math=1")

			Convey("Then subjects and weights are read", func() {
				So(err, ShouldBeNil)
				So(w, ShouldResemble, map[model.Subject]float64{model.Math: 0.5, model.Reading: 0.5, model.Writing: 0})
				So(errors.Is(bad, analyst.ErrUnknownData), ShouldBeTrue)
			})
		})
	})
}

func TestGrowthRanking(t *testing.T) {
	Convey("Given an analyst over the fixture districts", t, func() {
		a := analyst.New(newFixtureRepository())

		Convey("When listing third grade math growth", func() {
			pairs, err := a.DistrictsAndGrowths(model.ThirdGrade, []model.Subject{model.Math})

			Convey("Then pairs follow repository order", func() {
				So(err, ShouldBeNil)
				So(pairs, ShouldResemble, []types.GrowthEntry{
					{Name: "COLORADO", Growth: 0.1},
					{Name: "ACADEMY 20", Growth: 0.3},
					{Name: "PUEBLO CITY 60", Growth: 0.1},
					{Name: "ASPEN 1", Growth: 0.1},
				})
			})

			Convey("Then the single top district is the maximum", func() {
				top, err := analyst.FindSingleTopDistrictGrowth(pairs)
				So(err, ShouldBeNil)
				So(top, ShouldResemble, types.GrowthEntry{Rank: 1, Name: "ACADEMY 20", Growth: 0.3})
			})
		})

		Convey("When reducing tied pairs", func() {
			top, err := analyst.FindSingleTopDistrictGrowth([]types.GrowthEntry{
				{Name: "B", Growth: 0.1},
				{Name: "A", Growth: 0.1},
			})

			Convey("Then the smaller name wins", func() {
				So(err, ShouldBeNil)
				So(top.Name, ShouldEqual, "A")
			})
		})

		Convey("When reducing no pairs", func() {
			_, err := analyst.FindSingleTopDistrictGrowth(nil)

			Convey("Then it reports empty data", func() {
				So(errors.Is(err, analyst.ErrEmptyData), ShouldBeTrue)
			})
		})

		Convey("When ranking the top three in math", func() {
			q, err := analyst.NewGrowthQuery(model.ThirdGrade, analyst.WithSubject(model.Math), analyst.WithTop(3))
			So(err, ShouldBeNil)
			first, err := a.TopGrowth(q)
			So(err, ShouldBeNil)
			second, err := a.TopGrowth(q)
			So(err, ShouldBeNil)

			Convey("Then ties are broken by name and the order is stable", func() {
				So(first, ShouldResemble, []types.GrowthEntry{
					{Rank: 1, Name: "ACADEMY 20", Growth: 0.3},
					{Rank: 2, Name: "ASPEN 1", Growth: 0.1},
					{Rank: 3, Name: "COLORADO", Growth: 0.1},
				})
				So(second, ShouldResemble, first)
			})
		})

		Convey("When asking for more entries than districts", func() {
			q, err := analyst.NewGrowthQuery(model.ThirdGrade, analyst.WithSubject(model.Math), analyst.WithTop(10))
			So(err, ShouldBeNil)
			entries, err := a.TopGrowth(q)

			Convey("Then the ranking is truncated", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 4)
			})
		})

		Convey("When no subject is given", func() {
			q, err := analyst.NewGrowthQuery(model.ThirdGrade)
			So(err, ShouldBeNil)
			top, err := a.TopDistrictGrowth(q)
			So(err, ShouldBeNil)
			all, err := a.TopGrowth(analyst.GrowthQuery{Grade: model.ThirdGrade, Top: 5})
			So(err, ShouldBeNil)

			Convey("Then subjects are averaged and incomplete districts are skipped", func() {
				So(top, ShouldResemble, types.GrowthEntry{Rank: 1, Name: "ACADEMY 20", Growth: 0.167})
				So(all, ShouldResemble, []types.GrowthEntry{
					{Rank: 1, Name: "ACADEMY 20", Growth: 0.167},
					{Rank: 2, Name: "PUEBLO CITY 60", Growth: 0.167},
					{Rank: 3, Name: "COLORADO", Growth: 0.083},
				})
			})
		})

		Convey("When subjects are weighted", func() {
			q, err := analyst.NewGrowthQuery(model.ThirdGrade, analyst.WithWeighting(map[model.Subject]float64{
				model.Math: 0.2, model.Reading: 0.8, model.Writing: 0,
			}))
			So(err, ShouldBeNil)
			top, err := a.TopDistrictGrowth(q)

			Convey("Then the weighted sum decides the leader", func() {
				So(err, ShouldBeNil)
				So(top.Name, ShouldEqual, "PUEBLO CITY 60")
				So(top.Growth, ShouldEqual, 0.26)
			})
		})

		Convey("When a subject the district lacks carries zero weight", func() {
			q, err := analyst.NewGrowthQuery(model.ThirdGrade, analyst.WithTop(10), analyst.WithWeighting(map[model.Subject]float64{
				model.Math: 1, model.Reading: 0, model.Writing: 0,
			}))
			So(err, ShouldBeNil)
			weighted, err := a.TopGrowth(q)
			So(err, ShouldBeNil)
			mathOnly, err := a.TopGrowth(analyst.GrowthQuery{Grade: model.ThirdGrade, Subject: model.Math, Top: 10})
			So(err, ShouldBeNil)

			Convey("Then the district is still ranked", func() {
				So(weighted, ShouldResemble, mathOnly)
				So(weighted, ShouldContain, types.GrowthEntry{Rank: 2, Name: "ASPEN 1", Growth: 0.1})
			})
		})

		Convey("When writing carries weight and a district has one writing point", func() {
			q, err := analyst.NewGrowthQuery(model.ThirdGrade, analyst.WithTop(10), analyst.WithWeighting(map[model.Subject]float64{
				model.Math: 0.5, model.Reading: 0.25, model.Writing: 0.25,
			}))
			So(err, ShouldBeNil)
			entries, err := a.TopGrowth(q)
			So(err, ShouldBeNil)
			writing, err := a.DistrictsAndGrowths(model.ThirdGrade, []model.Subject{model.Writing})
			So(err, ShouldBeNil)

			Convey("Then a single point has no growth and the district is left out", func() {
				So(entries, ShouldHaveLength, 3)
				for _, e := range entries {
					So(e.Name, ShouldNotEqual, "ASPEN 1")
				}
				for _, p := range writing {
					So(p.Name, ShouldNotEqual, "ASPEN 1")
				}
			})
		})

		Convey("When a grade has no data", func() {
			q, err := analyst.NewGrowthQuery(model.EighthGrade, analyst.WithWeighting(map[model.Subject]float64{
				model.Math: 0.5, model.Reading: 0.5, model.Writing: 0,
			}))
			So(err, ShouldBeNil)
			entries, err := a.TopGrowth(q)
			So(err, ShouldBeNil)
			_, topErr := a.TopDistrictGrowth(q)

			Convey("Then the ranking is empty and there is no leader", func() {
				So(entries, ShouldBeEmpty)
				So(errors.Is(topErr, analyst.ErrEmptyData), ShouldBeTrue)
			})
		})

		Convey("When the query is invalid", func() {
			_, missing := a.TopGrowth(analyst.GrowthQuery{Subject: model.Math})
			_, unknown := a.TopGrowth(analyst.GrowthQuery{Grade: 10})

			Convey("Then validation errors are returned", func() {
				So(errors.Is(missing, analyst.ErrInsufficientInformation), ShouldBeTrue)
				So(errors.Is(unknown, analyst.ErrUnknownData), ShouldBeTrue)
			})
		})
	})
}

func TestResultSets(t *testing.T) {
	Convey("Given an analyst over the fixture districts", t, func() {
		a := analyst.New(newFixtureRepository())

		Convey("When selecting high poverty and high graduation districts", func() {
			rs, err := a.HighPovertyAndHighSchoolGraduation()
			So(err, ShouldBeNil)

			Convey("Then only districts above every threshold match", func() {
				matching := rs.MatchingDistricts()
				So(matching, ShouldHaveLength, 1)
				So(matching[0].Name(), ShouldEqual, "PUEBLO CITY 60")
				So(matching[0].Value(), ShouldEqual, 0.9)
				poverty, ok := matching[0].Metric(analyst.MetricChildrenInPoverty)
				So(ok, ShouldBeTrue)
				So(poverty, ShouldEqual, 0.3)
			})

			Convey("Then the statewide entry carries the baseline averages", func() {
				So(rs.StatewideAverage().Name(), ShouldEqual, "COLORADO")
				So(rs.StatewideAverage().Value(), ShouldEqual, 0.8)
			})
		})

		Convey("When selecting high income disparity districts", func() {
			rs, err := a.HighIncomeDisparity()
			So(err, ShouldBeNil)

			Convey("Then income and poverty must both exceed the baseline", func() {
				matching := rs.MatchingDistricts()
				So(matching, ShouldHaveLength, 1)
				So(matching[0].Name(), ShouldEqual, "ASPEN 1")
				So(matching[0].Value(), ShouldEqual, 90000.0)
				v, ok := matching[0].Metric(analyst.MetricIncomeVariation)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1.8)
				So(rs.StatewideAverage().Value(), ShouldEqual, 50000.0)
			})
		})

		Convey("When thresholds are lowered", func() {
			th := analyst.DefaultThresholds()
			th.Poverty, th.Lunch, th.Graduation = 0, 0, 0
			th.IncomeDisparity, th.IncomePoverty = 0, 0
			loose := analyst.New(newFixtureRepository(), analyst.WithThresholds(th))
			poverty, err := loose.HighPovertyAndHighSchoolGraduation()
			So(err, ShouldBeNil)
			income, err := loose.HighIncomeDisparity()
			So(err, ShouldBeNil)

			Convey("Then the baseline is still never a match", func() {
				for _, rs := range []types.ResultSet{poverty, income} {
					So(rs.MatchingDistricts(), ShouldHaveLength, 3)
					for _, e := range rs.MatchingDistricts() {
						So(e.Name(), ShouldNotEqual, "COLORADO")
					}
				}
			})
		})
	})
}

func TestResultSetsWithAliasedBaselineRows(t *testing.T) {
	Convey("Given baseline enrollment under Colorado and economics under STATEWIDE", t, func() {
		repo := repository.NewDistrictRepository()
		state := repo.Enrollments().Upsert("Colorado")
		state.RecordGraduationRate(2010, 0.8)
		economy := repo.EconomicProfiles().Upsert("STATEWIDE")
		economy.RecordChildrenInPoverty(2010, 0.2)
		economy.RecordFreeOrReducedLunchPercentage(2010, 0.4)

		repo.Enrollments().Upsert("Pueblo City 60").RecordGraduationRate(2010, 0.9)
		pueblo := repo.EconomicProfiles().Upsert("Pueblo City 60")
		pueblo.RecordChildrenInPoverty(2010, 0.3)
		pueblo.RecordFreeOrReducedLunchPercentage(2010, 0.6)

		rs, err := analyst.New(repo).HighPovertyAndHighSchoolGraduation()

		Convey("Then the baseline is one district with all of its data", func() {
			So(err, ShouldBeNil)
			So(repo.Names(), ShouldResemble, []string{"COLORADO", "PUEBLO CITY 60"})
			So(rs.StatewideAverage().Name(), ShouldEqual, "COLORADO")
			So(rs.StatewideAverage().Value(), ShouldEqual, 0.8)
			So(rs.MatchingDistricts(), ShouldHaveLength, 1)
			So(rs.MatchingDistricts()[0].Name(), ShouldEqual, "PUEBLO CITY 60")
		})
	})
}

func TestGrowthRank(t *testing.T) {
	Convey("Given an analyst over the fixture districts", t, func() {
		a := analyst.New(newFixtureRepository())
		math := analyst.GrowthQuery{Grade: model.ThirdGrade, Subject: model.Math}

		Convey("When placing a district in the math ranking", func() {
			entry, ranked, err := a.GrowthRank(math, "pueblo city 60")

			Convey("Then its position among every ranked district is returned", func() {
				So(err, ShouldBeNil)
				So(entry, ShouldResemble, types.GrowthEntry{Rank: 4, Name: "PUEBLO CITY 60", Growth: 0.1})
				So(ranked, ShouldEqual, 4)
			})
		})

		Convey("When placing the baseline through its alias", func() {
			entry, _, err := a.GrowthRank(math, "STATEWIDE")

			Convey("Then the baseline is ranked like any district", func() {
				So(err, ShouldBeNil)
				So(entry.Name, ShouldEqual, "COLORADO")
				So(entry.Rank, ShouldEqual, 3)
			})
		})

		Convey("When the district lacks data for a combined query", func() {
			_, ranked, err := a.GrowthRank(analyst.GrowthQuery{Grade: model.ThirdGrade}, "ASPEN 1")

			Convey("Then it reports empty data and the ranked count", func() {
				So(errors.Is(err, analyst.ErrEmptyData), ShouldBeTrue)
				So(ranked, ShouldEqual, 3)
			})
		})

		Convey("When the district or query is invalid", func() {
			_, _, unknown := a.GrowthRank(math, "NOWHERE")
			_, _, invalid := a.GrowthRank(analyst.GrowthQuery{}, "ACADEMY 20")

			Convey("Then the matching error kinds are returned", func() {
				So(errors.Is(unknown, analyst.ErrUnknownDistrict), ShouldBeTrue)
				So(errors.Is(invalid, analyst.ErrInsufficientInformation), ShouldBeTrue)
			})
		})
	})
}
