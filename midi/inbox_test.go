package midi

import (
	"sync"
	"testing"
)

func TestInboxDropsWhenFull(t *testing.T) {
	in := newInbox(2)
	ev := Event{Kind: EventNoteOn, Number: 11, Value: 100}
	if !in.push(ev) || !in.push(ev) {
		t.Fatal("push into empty queue failed")
	}
	if in.push(ev) {
		t.Error("push into full queue succeeded")
	}
}

func TestInboxPushAfterClose(t *testing.T) {
	in := newInbox(4)
	in.push(Event{Kind: EventNoteOn, Number: 11, Value: 1})
	in.close()
	in.close()

	if in.push(Event{Kind: EventNoteOn, Number: 12, Value: 1}) {
		t.Error("push after close succeeded")
	}

	var got []Event
	for ev := range in.ch {
		got = append(got, ev)
	}
	if len(got) != 1 || got[0].Number != 11 {
		t.Errorf("drained %v", got)
	}
}

func TestInboxConcurrentClose(t *testing.T) {
	in := newInbox(8)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 1000; n++ {
				in.push(Event{Kind: EventCC, Number: 91, Value: 127})
			}
		}()
	}
	go func() {
		for range in.ch {
		}
	}()
	in.close()
	wg.Wait()
}
