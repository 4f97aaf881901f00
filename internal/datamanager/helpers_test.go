package datamanager

import (
	"sync"
	"time"

	"github.com/mvhien/learnhub/internal/event"
	"github.com/mvhien/learnhub/internal/model"
)

// captureSink records every delivered event for assertions.
type captureSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (s *captureSink) Handle(evt event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *captureSink) all() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *captureSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, evt := range s.events {
		out[i] = evt.Type
	}
	return out
}

func newTestManager() (*Manager, *memStore, *event.Bus, *captureSink) {
	store := newMemStore()
	bus := event.NewBus()
	sink := &captureSink{}
	bus.Subscribe(sink)
	m := NewManager(store, bus, DefaultConfig())
	m.sleepFn = func(time.Duration) {} // no real backoff in tests
	return m, store, bus, sink
}

// seedStudentAndCourse is the common fixture: one student, one admin and
// one published course.
func seedStudentAndCourse(s *memStore, studentID, courseID, adminID uint) {
	s.addUser(studentID, model.RoleStudent)
	s.addUser(adminID, model.RoleAdmin)
	s.addCourse(courseID, model.CourseStatusPublished)
}
