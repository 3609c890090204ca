package entities

import "testing"

func TestEstimateStatus(t *testing.T) {
	cases := []struct {
		status EstimateStatus
		known  bool
		final  bool
	}{
		{EstimateStatusPending, true, false},
		{EstimateStatusApproved, true, true},
		{EstimateStatusRejected, true, true},
		{EstimateStatus("cancelled"), false, false},
		{EstimateStatus(""), false, false},
	}
	for _, tc := range cases {
		if got := tc.status.IsKnown(); got != tc.known {
			t.Fatalf("%q IsKnown: expected %v, got %v", tc.status, tc.known, got)
		}
		if got := tc.status.IsFinal(); got != tc.final {
			t.Fatalf("%q IsFinal: expected %v, got %v", tc.status, tc.final, got)
		}
	}
}

func TestUserTypeValid(t *testing.T) {
	if !UserTypeContractor.Valid() || !UserTypeHouseOwner.Valid() {
		t.Fatalf("expected documented user types to be valid")
	}
	if UserType("admin").Valid() {
		t.Fatalf("expected unknown user type to be invalid")
	}
}
