package order

import "testing"

func TestNextStatusFlow(t *testing.T) {
	tests := []struct {
		current Status
		next    Status
		ok      bool
	}{
		{StatusReceived, StatusPaid, true},
		{StatusPaid, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusDelivering, true},
		{StatusDelivering, StatusDelivered, true},
		{StatusDelivered, "", false},
	}

	for _, tt := range tests {
		next, ok := tt.current.Next()
		if ok != tt.ok || next != tt.next {
			t.Errorf("Next(%s) = (%s, %v), want (%s, %v)", tt.current, next, ok, tt.next, tt.ok)
		}
	}
}

func TestIteratingNextReachesDelivered(t *testing.T) {
	s := StatusReceived
	steps := 0
	for {
		next, ok := s.Next()
		if !ok {
			break
		}
		s = next
		steps++
		if steps > len(AllStatuses) {
			t.Fatal("status flow does not terminate")
		}
	}

	if s != StatusDelivered {
		t.Errorf("flow ended at %s, want %s", s, StatusDelivered)
	}
	if steps != 5 {
		t.Errorf("took %d steps, want 5", steps)
	}
	if _, ok := s.Next(); ok {
		t.Error("delivered must have no successor")
	}
}

func TestEveryStatusHasDisplayLabel(t *testing.T) {
	for _, s := range AllStatuses {
		if s.DisplayLabel() == "" {
			t.Errorf("status %s has no display label", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses {
		parsed, err := ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%s) returned error: %v", s, err)
		}
		if parsed != s {
			t.Errorf("ParseStatus(%s) = %s", s, parsed)
		}
	}

	if _, err := ParseStatus("cancelled"); err != ErrUnknownStatus {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
	if _, err := ParseStatus(""); err != ErrUnknownStatus {
		t.Errorf("expected ErrUnknownStatus for empty string, got %v", err)
	}
}
