package speech_test

import (
	"testing"
	"time"

	"github.com/ijwilabs/ijwi/internal/speech"
	"github.com/ijwilabs/ijwi/pkg/provider/tts/mock"
	"github.com/ijwilabs/ijwi/pkg/types"
)

// waitClosed fails the test if ch does not close within two seconds.
func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

// waitSpoken polls until the mock speaker has recorded at least n utterances.
func waitSpoken(t *testing.T, sp *mock.Speaker, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(sp.Spoken()) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d utterances, have %d", n, len(sp.Spoken()))
}

func TestQueueSpeaksInOrder(t *testing.T) {
	t.Parallel()

	sp := &mock.Speaker{}
	q := speech.New(sp)
	defer q.Close()

	first := q.Enqueue("first", types.SpeechOptions{})
	second := q.Enqueue("second", types.SpeechOptions{})

	waitClosed(t, first, "first utterance")
	waitClosed(t, second, "second utterance")

	spoken := sp.Spoken()
	if len(spoken) != 2 {
		t.Fatalf("spoke %d utterances, want 2", len(spoken))
	}
	if spoken[0].Text != "first" || spoken[1].Text != "second" {
		t.Errorf("spoken order = %q, %q", spoken[0].Text, spoken[1].Text)
	}
}

func TestQueuePassesOptionsThrough(t *testing.T) {
	t.Parallel()

	sp := &mock.Speaker{}
	q := speech.New(sp)
	defer q.Close()

	opts := types.SpeechOptions{Rate: 1.2, Language: "rw-RW"}
	waitClosed(t, q.Enqueue("muraho", opts), "utterance")

	spoken := sp.Spoken()
	if len(spoken) != 1 {
		t.Fatalf("spoke %d utterances, want 1", len(spoken))
	}
	if spoken[0].Opts != opts {
		t.Errorf("opts = %+v, want %+v", spoken[0].Opts, opts)
	}
}

func TestQueueInterruptCancelsEverything(t *testing.T) {
	t.Parallel()

	sp := &mock.Speaker{Block: make(chan struct{})}
	q := speech.New(sp)
	defer q.Close()

	playing := q.Enqueue("playing", types.SpeechOptions{})
	waitSpoken(t, sp, 1) // held in flight by Block

	pending := q.Enqueue("pending", types.SpeechOptions{})
	urgent := q.Enqueue("stop everything", types.SpeechOptions{Interrupt: true})

	// The interrupt cancels both the in-flight and the pending utterance.
	waitClosed(t, playing, "cancelled in-flight utterance")
	waitClosed(t, pending, "cancelled pending utterance")

	// Release the speaker so the urgent utterance can play out.
	close(sp.Block)
	waitClosed(t, urgent, "urgent utterance")

	spoken := sp.Spoken()
	last := spoken[len(spoken)-1]
	if last.Text != "stop everything" {
		t.Errorf("last spoken = %q, want the urgent utterance", last.Text)
	}
	for _, u := range spoken {
		if u.Text == "pending" {
			t.Error("cancelled pending utterance was spoken")
		}
	}
}

func TestQueueCancelAll(t *testing.T) {
	t.Parallel()

	sp := &mock.Speaker{Block: make(chan struct{})}
	q := speech.New(sp)
	defer q.Close()

	first := q.Enqueue("one", types.SpeechOptions{})
	waitSpoken(t, sp, 1)
	second := q.Enqueue("two", types.SpeechOptions{})
	third := q.Enqueue("three", types.SpeechOptions{})

	if n := q.CancelAll(); n != 3 {
		t.Errorf("CancelAll() = %d, want 3", n)
	}
	waitClosed(t, first, "cancelled one")
	waitClosed(t, second, "cancelled two")
	waitClosed(t, third, "cancelled three")

	if got := q.Len(); got != 0 {
		t.Errorf("Len() = %d after CancelAll, want 0", got)
	}
}

func TestQueueCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	q := speech.New(&mock.Speaker{})
	if err := q.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	// Enqueue after Close resolves immediately without speaking.
	waitClosed(t, q.Enqueue("ignored", types.SpeechOptions{}), "post-close enqueue")
}

func TestQueueReportsDepth(t *testing.T) {
	t.Parallel()

	depths := make(chan int, 16)
	sp := &mock.Speaker{}
	q := speech.New(sp, speech.WithDepthFunc(func(d int) {
		select {
		case depths <- d:
		default:
		}
	}))
	defer q.Close()

	waitClosed(t, q.Enqueue("hello", types.SpeechOptions{}), "utterance")

	select {
	case <-depths:
	case <-time.After(2 * time.Second):
		t.Fatal("depth callback never invoked")
	}
}
