package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalGetSet(t *testing.T) {
	hub := NewHub()
	sig := NewSignal(hub, 1)

	assert.Equal(t, 1, sig.Get())
	sig.Set(5)
	assert.Equal(t, 5, sig.Get())
}

func TestSignalSubscribe(t *testing.T) {
	hub := NewHub()
	sig := NewSignal(hub, "a")

	var seen []string
	cancel := sig.Subscribe(func(v string) { seen = append(seen, v) })

	sig.Set("b")
	sig.Set("c")
	require.Equal(t, []string{"b", "c"}, seen)

	cancel()
	sig.Set("d")
	assert.Equal(t, []string{"b", "c"}, seen, "cancelled subscriber must not fire")
}

func TestBatchCoalescesNotifications(t *testing.T) {
	hub := NewHub()
	sig := NewSignal(hub, 0)

	var seen []int
	sig.Subscribe(func(v int) { seen = append(seen, v) })

	hub.Batch(func() {
		sig.Set(1)
		sig.Set(2)
		sig.Set(3)
	})

	assert.Equal(t, []int{3}, seen, "one notification with the final value")
}

func TestBatchObserverNeverSeesTornState(t *testing.T) {
	hub := NewHub()
	message := NewSignal(hub, "draft")
	attachments := NewSignal(hub, []string{"a.jpg"})

	// When either cell announces, the other must already hold its new value.
	checked := 0
	check := func() {
		assert.Equal(t, "", message.Get())
		assert.Empty(t, attachments.Get())
		checked++
	}
	message.Watch(check)
	attachments.Watch(check)

	hub.Batch(func() {
		message.Set("")
		attachments.Set([]string{})
	})

	assert.Equal(t, 2, checked)
}

func TestNestedBatchFlushesOnce(t *testing.T) {
	hub := NewHub()
	sig := NewSignal(hub, 0)

	fired := 0
	sig.Subscribe(func(int) { fired++ })

	hub.Batch(func() {
		sig.Set(1)
		hub.Batch(func() {
			sig.Set(2)
		})
		assert.Equal(t, 0, fired, "no notification before the outer batch ends")
	})

	assert.Equal(t, 1, fired)
	assert.Equal(t, 2, sig.Get())
}

func TestComputedRecomputesOnRead(t *testing.T) {
	hub := NewHub()
	a := NewSignal(hub, 2)
	b := NewSignal(hub, 3)
	sum := NewComputed(hub, func() int { return a.Get() + b.Get() }, a, b)

	assert.Equal(t, 5, sum.Get())
	a.Set(10)
	assert.Equal(t, 13, sum.Get())
}

func TestComputedNotifiesOncePerBatch(t *testing.T) {
	hub := NewHub()
	a := NewSignal(hub, 1)
	b := NewSignal(hub, 1)
	sum := NewComputed(hub, func() int { return a.Get() + b.Get() }, a, b)

	var seen []int
	sum.Subscribe(func(v int) { seen = append(seen, v) })

	hub.Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	assert.Equal(t, []int{30}, seen, "both dependency changes collapse into one notification")
}

func TestBatchDedupesChainedDerivations(t *testing.T) {
	hub := NewHub()
	a := NewSignal(hub, 1)
	b := NewSignal(hub, 1)
	sum := NewComputed(hub, func() int { return a.Get() + b.Get() }, a, b)
	label := NewComputed(hub, func() string {
		if sum.Get() > 10 {
			return "big"
		}
		return "small"
	}, sum)

	var seen []string
	label.Subscribe(func(v string) { seen = append(seen, v) })

	hub.Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	assert.Equal(t, []string{"big"}, seen, "the whole derivation chain settles with one notification")
}

func TestComputedChains(t *testing.T) {
	hub := NewHub()
	page := NewSignal(hub, 1)
	total := NewSignal(hub, 3)
	hasNext := NewComputed(hub, func() bool { return page.Get() < total.Get() }, page, total)
	label := NewComputed(hub, func() string {
		if hasNext.Get() {
			return "more"
		}
		return "end"
	}, hasNext)

	assert.Equal(t, "more", label.Get())

	var seen []string
	label.Subscribe(func(v string) { seen = append(seen, v) })

	page.Set(3)
	assert.Equal(t, "end", label.Get())
	require.NotEmpty(t, seen)
	assert.Equal(t, "end", seen[len(seen)-1])
}
