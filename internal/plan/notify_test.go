package plan

import "testing"

func TestMultiNotifierFansOut(t *testing.T) {
	a := &Recorder{}
	b := &Recorder{}
	m := MultiNotifier{a, b}

	m.Advise("first")
	m.Advise("second")

	for _, rec := range []*Recorder{a, b} {
		if len(rec.Advisories) != 2 {
			t.Fatalf("recorder got %d advisories, want 2", len(rec.Advisories))
		}
		if rec.Advisories[0] != "first" || rec.Advisories[1] != "second" {
			t.Errorf("advisories = %v, want [first second]", rec.Advisories)
		}
	}
}

func TestNilNotifierDoesNotPanic(t *testing.T) {
	req := DefaultRequest()
	req.GSD = 4 // triggers the minimum-interval advisory

	if _, err := Compute(DefaultCamera(), req, nil); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
}
