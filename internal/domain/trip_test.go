package domain

import "testing"

func TestTripStatus_Transitions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		from TripStatus
		to   TripStatus
		want bool
	}{
		{"requested to active", TripStatusRequested, TripStatusActive, true},
		{"active to completed", TripStatusActive, TripStatusCompleted, true},
		{"requested to cancelled", TripStatusRequested, TripStatusCancelled, true},
		{"active to cancelled", TripStatusActive, TripStatusCancelled, true},
		{"active retried", TripStatusActive, TripStatusActive, true},
		{"requested skips to completed", TripStatusRequested, TripStatusCompleted, false},
		{"active back to requested", TripStatusActive, TripStatusRequested, false},
		{"completed reopened", TripStatusCompleted, TripStatusActive, false},
		{"completed cancelled", TripStatusCompleted, TripStatusCancelled, false},
		{"cancelled reactivated", TripStatusCancelled, TripStatusActive, false},
		{"cancelled completed", TripStatusCancelled, TripStatusCompleted, false},
		{"unknown target", TripStatusActive, TripStatus(7), false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
				t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
			}
		})
	}
}

func TestTripStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range AllTripStatuses {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []TripStatus{-1, 4, 99} {
		if s.Valid() {
			t.Errorf("expected status %d to be invalid", int(s))
		}
	}
}

func TestCoordinateBounds(t *testing.T) {
	t.Parallel()

	if !ValidLatitude(-90) || !ValidLatitude(90) {
		t.Error("latitude bounds must be inclusive")
	}
	if ValidLatitude(91) || ValidLatitude(-90.0001) {
		t.Error("latitude outside [-90, 90] must be rejected")
	}
	if !ValidLongitude(180) || !ValidLongitude(-180) {
		t.Error("longitude bounds must be inclusive")
	}
	if ValidLongitude(181) || ValidLongitude(-180.5) {
		t.Error("longitude outside [-180, 180] must be rejected")
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	if ParseRole("Tour Guide") != RoleGuide {
		t.Error("expected Tour Guide to parse as guide")
	}
	if ParseRole("tourist") != RoleTourist {
		t.Error("expected tourist to parse as tourist")
	}
	if ParseRole("") != RoleTourist {
		t.Error("expected empty user_type to default to tourist")
	}
}
