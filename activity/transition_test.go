package activity

import (
	"errors"
	"reflect"
	"testing"
)

type fakeController struct {
	calls      []string
	before     []any
	after      []any
	started    bool
	onComplete func()
}

func (c *fakeController) EndCurrentActivity() { c.calls = append(c.calls, "end") }

func (c *fakeController) StartNewActivity() {
	c.calls = append(c.calls, "start")
	c.started = true
}

func (c *fakeController) Behaviours() []any {
	if c.started {
		return c.after
	}
	return c.before
}

func (c *fakeController) NotifyTransitionComplete() {
	c.calls = append(c.calls, "complete")
	if c.onComplete != nil {
		c.onComplete()
	}
}

type capabilityRecorder struct {
	calls *[]string
	done  func()
}

func (r *capabilityRecorder) HandleTransitionStarted()  { *r.calls = append(*r.calls, "msg:started") }
func (r *capabilityRecorder) HandleTransitionComplete() { *r.calls = append(*r.calls, "msg:complete") }

func (r *capabilityRecorder) LoadActivity(done func()) {
	*r.calls = append(*r.calls, "msg:load")
	r.done = done
}

func TestTransitionOrdering(t *testing.T) {
	tests := []struct {
		name       string
		transition Transition
		load       bool
		want       []string
	}{
		{
			name:       "instant",
			transition: Instant{},
			want:       []string{"end", "start", "complete"},
		},
		{
			name:       "loading",
			transition: Loading{},
			load:       true,
			want:       []string{"msg:started", "end", "start", "msg:load", "msg:complete", "complete"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &fakeController{}
			rec := &capabilityRecorder{calls: &c.calls}
			c.before = []any{rec}
			c.after = []any{rec}

			tc.transition.Start(c)
			if tc.load {
				if rec.done == nil {
					t.Fatalf("LoadActivity was not called")
				}
				if n := len(c.calls); c.calls[n-1] != "msg:load" {
					t.Fatalf("transition must wait for the continuation, calls = %v", c.calls)
				}
				rec.done()
			}
			if !reflect.DeepEqual(c.calls, tc.want) {
				t.Fatalf("calls = %v, want %v", c.calls, tc.want)
			}
		})
	}
}

func TestSendMissingCapability(t *testing.T) {
	c := &fakeController{before: []any{struct{}{}, 42}}
	called := false
	if Send(c, func(TransitionStartedHandler) { called = true }) {
		t.Fatalf("Send should report a missing capability")
	}
	if called {
		t.Fatalf("action must not run without a target")
	}
	if Send[Exiter](nil, func(Exiter) {}) {
		t.Fatalf("Send on nil controller should be a no-op")
	}
	if Send[Exiter](c, nil) {
		t.Fatalf("Send with nil action should be a no-op")
	}
}

func TestSendFirstMatchOnly(t *testing.T) {
	var calls []string
	a := &capabilityRecorder{calls: &calls}
	b := &capabilityRecorder{calls: &calls}
	c := &fakeController{before: []any{"not a handler", a, b}}

	var got *capabilityRecorder
	if !Send(c, func(h TransitionStartedHandler) { got = h.(*capabilityRecorder) }) {
		t.Fatalf("expected a handler")
	}
	if got != a {
		t.Fatalf("Send should target the first matching behaviour")
	}
}

func TestParseTransition(t *testing.T) {
	tests := []struct {
		in      string
		want    Transition
		wantErr bool
	}{
		{in: "", want: Instant{}},
		{in: "Instant", want: Instant{}},
		{in: " loading ", want: Loading{}},
		{in: "fade", want: &Fade{Frames: 12}},
		{in: "wipe", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTransition(tc.in, 12)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTransition(%q): %v", tc.in, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseTransition(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFadeTransition(t *testing.T) {
	_, d := newTestDirector(t)
	log := &eventLog{}

	if err := SwitchWith[probe](d, probeArgs{log: log, name: "a"}); err != nil {
		t.Fatalf("switch a: %v", err)
	}

	fade := &Fade{Frames: 3}
	if err := SwitchWith[loadingProbe](d, probeArgs{log: log, name: "b"}, WithTransition(fade)); err != nil {
		t.Fatalf("switch b: %v", err)
	}
	expectEvents(t, log, "a:init", "a:started")

	for i := 0; i < 2; i++ {
		if err := d.Update(); err != nil {
			t.Fatal(err)
		}
	}
	expectEvents(t, log, "a:init", "a:started")
	if fade.Alpha() <= 0 || fade.Alpha() >= 1 {
		t.Fatalf("alpha mid fade-out = %v", fade.Alpha())
	}

	if err := d.Update(); err != nil {
		t.Fatal(err)
	}
	expectEvents(t, log, "a:init", "a:started", "a:exit", "b:init", "b:load")
	if fade.Alpha() != 1 {
		t.Fatalf("alpha at swap = %v, want 1", fade.Alpha())
	}

	// Still black while loading.
	for i := 0; i < 5; i++ {
		if err := d.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if fade.Alpha() != 1 || !d.InProgress() {
		t.Fatalf("fade must hold while loading, alpha = %v", fade.Alpha())
	}

	d.CurrentActivity().(*loadingProbe).done()
	for i := 0; i < 3; i++ {
		if err := d.Update(); err != nil {
			t.Fatal(err)
		}
	}
	expectEvents(t, log, "a:init", "a:started", "a:exit", "b:init", "b:load", "b:complete")
	if d.InProgress() || fade.Alpha() != 0 {
		t.Fatalf("fade should be finished, in progress = %v alpha = %v", d.InProgress(), fade.Alpha())
	}
}

func TestStaleControllerCannotClearGuard(t *testing.T) {
	_, d := newTestDirector(t)
	var first Controller
	capture := transitionFunc(func(c Controller) {
		first = c
		c.EndCurrentActivity()
		c.StartNewActivity()
		c.NotifyTransitionComplete()
	})
	if err := Switch[plainActivity](d, WithTransition(capture)); err != nil {
		t.Fatal(err)
	}

	hold := transitionFunc(func(c Controller) {
		c.EndCurrentActivity()
		c.StartNewActivity()
	})
	if err := Switch[plainActivity](d, WithTransition(hold)); err != nil {
		t.Fatal(err)
	}
	first.NotifyTransitionComplete()
	if !d.InProgress() {
		t.Fatalf("a finished switch's controller must not complete the next one")
	}
	if err := Switch[plainActivity](d); !errors.Is(err, ErrTransitionInProgress) {
		t.Fatalf("got %v, want ErrTransitionInProgress", err)
	}
}

type transitionFunc func(c Controller)

func (f transitionFunc) Start(c Controller) { f(c) }

func TestFadeReuseIgnoresEarlierContinuation(t *testing.T) {
	fade := &Fade{Frames: 1}

	var firstMsgs []string
	first := &capabilityRecorder{calls: &firstMsgs}
	c1 := &fakeController{after: []any{first}}
	fade.Start(c1)
	fade.Tick(c1)
	if first.done == nil {
		t.Fatalf("first switch should have asked for a load")
	}
	first.done()
	fade.Tick(c1)
	if got := c1.calls[len(c1.calls)-1]; got != "complete" {
		t.Fatalf("first switch calls = %v, want it to end with complete", c1.calls)
	}

	var secondMsgs []string
	second := &capabilityRecorder{calls: &secondMsgs}
	c2 := &fakeController{after: []any{second}}
	fade.Start(c2)
	fade.Tick(c2)
	if second.done == nil {
		t.Fatalf("second switch should have asked for a load")
	}

	first.done()
	for i := 0; i < 3; i++ {
		fade.Tick(c2)
	}
	for _, call := range c2.calls {
		if call == "complete" {
			t.Fatalf("earlier continuation completed the second switch: %v", c2.calls)
		}
	}
	if fade.Alpha() != 1 {
		t.Fatalf("alpha = %v, want 1 while the second load is pending", fade.Alpha())
	}

	second.done()
	fade.Tick(c2)
	want := []string{"end", "start", "complete"}
	if !reflect.DeepEqual(c2.calls, want) {
		t.Fatalf("second switch calls = %v, want %v", c2.calls, want)
	}
}
