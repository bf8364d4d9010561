package go_chat_room

import (
    "sync"
    "testing"
)

// TestRegistryIds check that concurrent registrations get pairwise
// distinct ids and that every session is visible afterwards.
func TestRegistryIds(t *testing.T) {
    const numClients = 32

    r := newRegistry(defPalette)

    var wg sync.WaitGroup
    ids := make(chan int, numClients)
    for i := 0; i < numClients; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            s := r.register(NewMockConn())
            ids <- s.id
        } ()
    }
    wg.Wait()
    close(ids)

    seen := make(map[int]bool)
    for id := range ids {
        if seen[id] {
            t.Errorf("Id '%d' was assigned twice", id)
        }
        seen[id] = true
    }

    if want, got := numClients, r.count(); want != got {
        t.Errorf("Invalid session count: expected '%d' but got '%d'", want, got)
    }

    // The snapshot must report every session, ordered by id.
    list := r.snapshot()
    if want, got := numClients, len(list); want != got {
        t.Errorf("Invalid snapshot size: expected '%d' but got '%d'", want, got)
    }
    for i := 1; i < len(list); i++ {
        if list[i-1].id >= list[i].id {
            t.Errorf("Snapshot out of order: '%d' before '%d'", list[i-1].id, list[i].id)
        }
    }
}

// TestRegistryLifecycle check registration, renaming and removal of a
// single session.
func TestRegistryLifecycle(t *testing.T) {
    r := newRegistry(defPalette)

    s := r.register(NewMockConn())
    if want, got := anonymousName, s.name; want != got {
        t.Errorf("Invalid placeholder name: expected '%s' but got '%s'", want, got)
    }
    if want, got := s.id%defPalette, s.colorTag; want != got {
        t.Errorf("Invalid color tag: expected '%d' but got '%d'", want, got)
    }
    if s.joinedAt.IsZero() {
        t.Error("The join timestamp wasn't set")
    }

    r.rename(s.id, "alice")
    if want, got := "alice", r.names(nil)[0]; want != got {
        t.Errorf("Invalid name retrieved: expected '%s' but got '%s'", want, got)
    }

    removed, ok := r.remove(s.id)
    if !ok {
        t.Fatal("Couldn't remove a registered session")
    }
    if want, got := "alice", removed.name; want != got {
        t.Errorf("Invalid name on the removed session: expected '%s' but got '%s'", want, got)
    }
    if want, got := 0, r.count(); want != got {
        t.Errorf("Invalid session count: expected '%d' but got '%d'", want, got)
    }

    // Operations on an id that's already gone are benign no-ops:
    // concurrent disconnect races are expected.
    _, ok = r.remove(s.id)
    if ok {
        t.Error("Successfully removed a session twice")
    }
    r.rename(s.id, "ghost")
    if want, got := 0, len(r.names(nil)); want != got {
        t.Errorf("Invalid name count: expected '%d' but got '%d'", want, got)
    }

    // Ids are never reused, even after a removal.
    s2 := r.register(NewMockConn())
    if s2.id == s.id {
        t.Errorf("Id '%d' was reused after its removal", s.id)
    }
}
