package navigator_test

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/household-expenses/internal/core/events"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/navigator"
	"github.com/frahmantamala/household-expenses/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Navigator", func() {
	var (
		ctx     context.Context
		fetched []month.Key
		nav     *navigator.Navigator
	)

	sync := func(ctx context.Context, key month.Key) error {
		fetched = append(fetched, key)
		return nil
	}

	BeforeEach(func() {
		ctx = context.Background()
		fetched = nil
		nav = navigator.New(time.Date(2024, time.January, 31, 15, 0, 0, 0, time.UTC), sync)
	})

	It("normalizes the start to the first of the month", func() {
		Expect(nav.Current()).To(Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
		Expect(nav.Key()).To(Equal(month.Key("2024-01")))
		Expect(nav.PrevKey()).To(Equal(month.Key("2023-12")))
	})

	It("fetches on every transition, including a return to a seen month", func() {
		Expect(nav.Next(ctx)).To(Succeed())
		Expect(nav.Prev(ctx)).To(Succeed())

		Expect(nav.Key()).To(Equal(month.Key("2024-01")))
		Expect(fetched).To(Equal([]month.Key{"2024-02", "2024-01"}))
	})

	It("rolls over year boundaries", func() {
		Expect(nav.Prev(ctx)).To(Succeed())
		Expect(nav.Key()).To(Equal(month.Key("2023-12")))

		nav.SetSync(nil)
		for i := 0; i < 13; i++ {
			Expect(nav.Next(ctx)).To(Succeed())
		}
		Expect(nav.Key()).To(Equal(month.Key("2025-01")))
	})

	It("jumps to the month of a date", func() {
		Expect(nav.Set(ctx, time.Date(2023, time.March, 17, 0, 0, 0, 0, time.UTC))).To(Succeed())
		Expect(nav.Key()).To(Equal(month.Key("2023-03")))
		Expect(fetched).To(Equal([]month.Key{"2023-03"}))
	})

	It("keeps the new month when the sync fails", func() {
		boom := errors.New("boom")
		nav.SetSync(func(context.Context, month.Key) error { return boom })

		Expect(nav.Next(ctx)).To(MatchError(boom))
		Expect(nav.Key()).To(Equal(month.Key("2024-02")))
	})

	It("announces month changes on the bus", func() {
		bus := events.NewEventBus(logger.Discard())
		got := make(chan string, 1)
		bus.Subscribe(events.EventTypeMonthChanged, func(ctx context.Context, e events.Event) error {
			got <- e.Payload().(map[string]interface{})["month_key"].(string)
			return nil
		})

		nav = navigator.New(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), sync, navigator.WithBus(bus))
		Expect(nav.Next(ctx)).To(Succeed())
		Eventually(got).Should(Receive(Equal("2024-06")))
	})
})
