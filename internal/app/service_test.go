package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/headcount/internal/adapters/loader"
	"github.com/okian/headcount/internal/adapters/repository"
	service "github.com/okian/headcount/internal/app"
	"github.com/okian/headcount/internal/config"
	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const testDataDir = "../adapters/loader/testdata"

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// testSources lists the files present under the loader testdata.
func testSources() map[string]string {
	all := config.DefaultSources()
	delete(all, config.SourceReading)
	delete(all, config.SourceWriting)
	return all
}

func newTestService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithDataDir(testDataDir),
		service.WithSources(testSources()),
	}
	return service.New(append(base, opts...)...)
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should not be started", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["started"], ShouldEqual, false)
			So(svc.Baseline(), ShouldEqual, "COLORADO")
		})

		Convey("Then queries report that the data is not loaded", func() {
			_, err := svc.TopGrowth(analyst.GrowthQuery{Grade: model.ThirdGrade})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Analyst()
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(svc.Names(), ShouldBeEmpty)
		})
	})

	Convey("Given a service built from config", t, func() {
		cfg := config.New(context.Background())
		cfg.DataDir = testDataDir
		cfg.Sources = testSources()
		cfg.GraduationBandLower = 0.9
		svc := service.New(service.WithConfig(cfg))

		Convey("Then the configured thresholds reach the analyst", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()
			a, err := svc.Analyst()
			So(err, ShouldBeNil)
			So(a.Thresholds().GraduationBand, ShouldResemble, analyst.Band{Lower: 0.9, Upper: 1.5})
		})
	})
}

func TestThresholdsFromConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := config.New(context.Background())

		Convey("Then it maps onto the default analyst thresholds", func() {
			So(service.ThresholdsFromConfig(cfg), ShouldResemble, analyst.DefaultThresholds())
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service over the test data", t, func() {
		svc := newTestService()
		// Ensure service is stopped after test
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["districts"], ShouldEqual, 4)
				So(stats["records"], ShouldEqual, 54)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.Summary().Districts, ShouldEqual, 4)
			})

			Convey("And the districts are served", func() {
				So(svc.Names(), ShouldResemble, []string{"COLORADO", "ACADEMY 20", "ADAMS COUNTY 14", "WILEY RE-13 JT"})
				d, err := svc.Find("academy 20")
				So(err, ShouldBeNil)
				So(d.Name(), ShouldEqual, "ACADEMY 20")
				_, err = svc.Find("NOWHERE")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service pointed at a missing directory", t, func() {
		svc := service.New(service.WithDataDir("does-not-exist"), service.WithSources(testSources()))

		Convey("Then Start fails with a read error", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, loader.ErrReadSource), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given a service over a prepared repository", t, func() {
		repo := repository.NewDistrictRepository()
		repo.Enrollments().Upsert("Colorado").RecordKindergartenParticipation(2010, 0.5)
		repo.Enrollments().Upsert("Somewhere").RecordKindergartenParticipation(2010, 0.25)
		svc := service.New(service.WithRepository(repo))
		defer svc.Stop()

		Convey("Then Start serves it without reading files", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Summary().Districts, ShouldEqual, 2)
			v, err := svc.KindergartenParticipationRateVariation("SOMEWHERE", "COLORADO")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.5)
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a started service over the test data", t, func() {
		svc := newTestService()
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then kindergarten variation is computed against the baseline", func() {
			v, err := svc.KindergartenParticipationRateVariation("ACADEMY 20", "STATEWIDE")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.834)

			trend, err := svc.KindergartenParticipationRateVariationTrend("ACADEMY 20", "COLORADO")
			So(err, ShouldBeNil)
			So(trend.Years(), ShouldResemble, []int{2007, 2008})
		})

		Convey("Then only WILEY RE-13 JT participation correlates with graduation", func() {
			ok, err := svc.Correlates(analyst.KindergartenGraduation, analyst.For("WILEY RE-13 JT"))
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			ok, err = svc.Correlates(analyst.KindergartenGraduation, analyst.For("ACADEMY 20"))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			n, err := svc.CountAllCorrelations(analyst.KindergartenGraduation)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)

			ok, err = svc.Correlates(analyst.KindergartenGraduation, analyst.For("STATEWIDE"))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Then WILEY RE-13 JT leads third grade math growth", func() {
			q, err := analyst.NewGrowthQuery(model.ThirdGrade, analyst.WithSubject(model.Math))
			So(err, ShouldBeNil)
			top, err := svc.TopGrowth(q)
			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 1)
			So(top[0].Name, ShouldEqual, "WILEY RE-13 JT")
			So(top[0].Growth, ShouldEqual, 0.3)
		})

		Convey("Then the result sets carry the statewide averages", func() {
			rs, err := svc.HighIncomeDisparity()
			So(err, ShouldBeNil)
			So(rs.MatchingDistricts(), ShouldBeEmpty)
			So(rs.StatewideAverage().Name(), ShouldEqual, "COLORADO")
			So(rs.StatewideAverage().Value(), ShouldEqual, 56339)

			rs, err = svc.HighPovertyAndHighSchoolGraduation()
			So(err, ShouldBeNil)
			So(rs.MatchingDistricts(), ShouldBeEmpty)
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newTestService()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And queries fail until it is started again", func() {
				_, err := svc.HighIncomeDisparity()
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(svc.Start(ctx), ShouldBeNil)
				_, err = svc.HighIncomeDisparity()
				So(err, ShouldBeNil)
			})

			Convey("And stopping twice is safe", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}
