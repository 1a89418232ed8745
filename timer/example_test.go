package timer_test

import (
	"context"
	"fmt"
	"time"

	"github.com/ghettovoice/countdown/timer"
	"github.com/ghettovoice/countdown/timer/timertest"
)

func ExampleStartNew() {
	sched := timertest.NewManualScheduler()

	t, err := timer.StartNew(context.Background(), time.Second, 3*time.Second,
		func(remaining time.Duration) { fmt.Println("left:", remaining) },
		&timer.Options{
			Scheduler:  sched,
			OnComplete: func() { fmt.Println("done") },
		},
	)
	if err != nil {
		panic(err)
	}

	sched.Advance(5 * time.Second)
	fmt.Println("state:", t.State())
	// Output:
	// left: 2s
	// left: 1s
	// done
	// state: stopped
}

func ExampleTimer_Pause() {
	ctx := context.Background()
	sched := timertest.NewManualScheduler()

	t, err := timer.New(time.Second, 3*time.Second,
		func(remaining time.Duration) { fmt.Println("left:", remaining) },
		&timer.Options{Scheduler: sched},
	)
	if err != nil {
		panic(err)
	}

	_ = t.Start(ctx)
	sched.Advance(time.Second)
	_ = t.Pause(ctx)
	sched.Advance(time.Minute)
	fmt.Println("state:", t.State(), "remaining:", t.Remaining())

	_ = t.Start(ctx)
	sched.Advance(time.Second)
	// Output:
	// left: 2s
	// state: paused remaining: 2s
	// left: 1s
}
