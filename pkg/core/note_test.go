package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNote_Matches(t *testing.T) {
	n := Note{Title: "Groceries", Content: "Milk, eggs"}

	assert.True(t, n.Matches("groc"))
	assert.True(t, n.Matches("EGGS"))
	assert.True(t, n.Matches(""))
	assert.False(t, n.Matches("bread"))
}

func TestPatch(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, SetTitle("").IsEmpty())

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := Note{Title: "t", Content: "c", CreatedAt: at, UpdatedAt: at}

	SetContent("new").apply(&n, at.Add(time.Hour))
	assert.Equal(t, "t", n.Title)
	assert.Equal(t, "new", n.Content)
	assert.Equal(t, at.Add(time.Hour), n.UpdatedAt)

	// A clock going backwards never moves UpdatedAt back.
	SetTitle("again").apply(&n, at)
	assert.Equal(t, at.Add(time.Hour+time.Nanosecond), n.UpdatedAt)
}

func TestValidateCollection(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		notes   []Note
		wantErr bool
	}{
		{name: "Empty", notes: nil},
		{name: "Valid", notes: []Note{{ID: "a", CreatedAt: at, UpdatedAt: at}, {ID: "b"}}},
		{name: "Missing ID", notes: []Note{{ID: ""}}, wantErr: true},
		{name: "Duplicate ID", notes: []Note{{ID: "a"}, {ID: "a"}}, wantErr: true},
		{name: "Updated Before Created", notes: []Note{{ID: "a", CreatedAt: at, UpdatedAt: at.Add(-time.Second)}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCollection(tt.notes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCorrupt)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Less(t, a, b, "v7 ids sort by creation")
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "LOAD", Event{Type: EventLoad}.String())
	assert.Equal(t, "CREATE abc", Event{Type: EventCreate, ID: "abc"}.String())
}

func TestWrite(t *testing.T) {
	t.Run("Pending", func(t *testing.T) {
		w := newWrite()
		assert.NoError(t, w.Err())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, w.Wait(ctx), context.DeadlineExceeded)
	})

	t.Run("Completed", func(t *testing.T) {
		boom := errors.New("boom")
		w := newWrite()
		w.complete(boom)

		<-w.Done()
		assert.ErrorIs(t, w.Err(), boom)
		assert.ErrorIs(t, w.Wait(context.Background()), boom)
		assert.NoError(t, completedWrite(nil).Wait(context.Background()))
	})
}

func TestBroker(t *testing.T) {
	t.Run("Fan Out", func(t *testing.T) {
		b := newBroker(0)
		assert.Equal(t, DefaultEventBuffer, b.buffer)

		c1, _ := b.subscribe()
		c2, _ := b.subscribe()
		b.publish(Event{Type: EventCreate, ID: "x"})

		assert.Equal(t, "x", (<-c1).ID)
		assert.Equal(t, "x", (<-c2).ID)
	})

	t.Run("Drops When Full", func(t *testing.T) {
		b := newBroker(2)
		ch, unsubscribe := b.subscribe()
		for range 5 {
			b.publish(Event{Type: EventModify})
		}
		subs, dropped := b.stats()
		assert.Equal(t, 1, subs)
		assert.Equal(t, 3, dropped)
		assert.Len(t, ch, 2)

		unsubscribe()
		subs, _ = b.stats()
		assert.Equal(t, 0, subs)
	})

	t.Run("Close All", func(t *testing.T) {
		b := newBroker(1)
		ch, unsubscribe := b.subscribe()
		b.closeAll()

		_, open := <-ch
		assert.False(t, open)
		unsubscribe()

		late, _ := b.subscribe()
		_, open = <-late
		assert.False(t, open)
		b.publish(Event{Type: EventLoad})
	})
}

// TestStore_Model checks random operation sequences against a plain slice model.
func TestStore_Model(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		kv := newMapKV()
		s, err := NewStore(Config{KV: kv, Codec: testCodec{}})
		if err != nil {
			rt.Fatal(err)
		}
		defer s.Close(context.Background())

		var model []Note
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for range steps {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				title := rapid.StringN(0, 8, -1).Draw(rt, "title")
				model = append(model, s.Add(title, ""))
			case 1:
				if len(model) == 0 {
					continue
				}
				i := rapid.IntRange(0, len(model)-1).Draw(rt, "update")
				content := rapid.String().Draw(rt, "content")
				n, ok := s.Update(model[i].ID, SetContent(content))
				if !ok || !n.UpdatedAt.After(model[i].UpdatedAt) {
					rt.Fatalf("update of %s did not advance", model[i].ID)
				}
				model[i] = n
			case 2:
				if len(model) == 0 {
					continue
				}
				i := rapid.IntRange(0, len(model)-1).Draw(rt, "delete")
				if !s.Delete(model[i].ID) || s.Delete(model[i].ID) {
					rt.Fatalf("delete of %s is not idempotent", model[i].ID)
				}
				model = append(model[:i], model[i+1:]...)
			case 3:
				q := rapid.StringN(0, 2, -1).Draw(rt, "query")
				want := 0
				for _, n := range model {
					if n.Matches(q) {
						want++
					}
				}
				if got := len(s.Search(q)); got != want {
					rt.Fatalf("search %q: got %d hits, want %d", q, got, want)
				}
			}

			got := s.Notes()
			if len(got) != len(model) {
				rt.Fatalf("store has %d notes, model %d", len(got), len(model))
			}
			seen := make(map[string]bool)
			for i := range got {
				if got[i].ID != model[i].ID || seen[got[i].ID] {
					rt.Fatalf("order or uniqueness broken at %d", i)
				}
				seen[got[i].ID] = true
			}
		}

		if err := s.Flush(context.Background()); err != nil {
			rt.Fatal(err)
		}
		if err := ValidateCollection(kv.decoded()); err != nil {
			rt.Fatal(err)
		}
	})
}
