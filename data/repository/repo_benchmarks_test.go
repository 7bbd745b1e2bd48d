package repository

import (
	"testing"
	"time"

	"events-scheduler/data/models"
	"events-scheduler/data/timefmt"

	"github.com/brianvoe/gofakeit/v7"
)

func benchmarkEvent(faker *gofakeit.Faker) models.Event {
	start := faker.DateRange(
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
	)
	return models.Event{
		Name:     faker.LoremIpsumSentence(4),
		Location: faker.City(),
		Start:    timefmt.StorageTime(start.Format(timefmt.StorageLayout)),
	}
}

func BenchmarkCreate(b *testing.B) {
	defer handleRecover("BenchmarkCreate")
	faker := gofakeit.New(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := testRepo.Create(benchmarkEvent(faker)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkQueryEvents(b *testing.B) {
	defer handleRecover("BenchmarkQueryEvents")
	faker := gofakeit.New(0)

	for i := 0; i < 1000; i++ {
		if _, err := testRepo.Create(benchmarkEvent(faker)); err != nil {
			b.Fatalf("Could not seed DB: %s", err)
		}
	}

	params := map[string]string{"perPage": "100"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := testRepo.QueryEvents(params); err != nil {
			b.Fatal(err)
		}
	}
}
