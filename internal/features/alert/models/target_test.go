package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	usermodels "slotbot-backend/internal/features/user/models"
)

func TestParseTargets(t *testing.T) {
	t.Run("empty list means all", func(t *testing.T) {
		set := ParseTargets(nil)
		assert.True(t, set.ContainsAll())
		assert.Equal(t, []string{"all"}, set.Strings())

		set = ParseTargets([]string{})
		assert.True(t, set.ContainsAll())
	})

	t.Run("all sentinel is case insensitive", func(t *testing.T) {
		for _, raw := range []string{"all", "ALL", "All"} {
			assert.True(t, ParseTargets([]string{raw}).ContainsAll(), raw)
		}
	})

	t.Run("NOCODE sentinel is case sensitive", func(t *testing.T) {
		assert.True(t, ParseTargets([]string{"NOCODE"}).ContainsNoCode())

		set := ParseTargets([]string{"nocode"})
		assert.False(t, set.ContainsNoCode())
		assert.True(t, set.ContainsCode("nocode"))
	})

	t.Run("blank entries are dropped", func(t *testing.T) {
		set := ParseTargets([]string{"  ", "", "DE"})
		assert.Equal(t, []string{"DE"}, set.Strings())
	})

	t.Run("only blank entries collapse to all", func(t *testing.T) {
		set := ParseTargets([]string{"", "   "})
		assert.True(t, set.ContainsAll())
	})

	t.Run("round trips through Strings", func(t *testing.T) {
		raw := []string{"all", "NOCODE", "PARTNER1"}
		assert.Equal(t, raw, ParseTargets(raw).Strings())
	})
}

func TestTargetSetContainsCode(t *testing.T) {
	set := ParseTargets([]string{"PARTNER1", "NOCODE"})

	assert.True(t, set.ContainsCode("PARTNER1"))
	assert.False(t, set.ContainsCode("PARTNER2"))
	// Empty code never matches a specific target; NOCODE handles it.
	assert.False(t, set.ContainsCode(""))
}

func testUser(geo, referral string, paid bool, trial *time.Time) *usermodels.User {
	return &usermodels.User{
		ID:           "u1",
		Email:        "user@example.com",
		Geo:          geo,
		ReferralCode: referral,
		Paid:         paid,
		TrialUntil:   trial,
	}
}

func TestTargetingEligible(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	t.Run("all plus all requires access", func(t *testing.T) {
		targeting := NewTargeting(nil, nil)

		assert.True(t, targeting.Eligible(testUser("DE", "PARTNER1", true, nil), now))
		assert.True(t, targeting.Eligible(testUser("DE", "PARTNER1", false, &future), now))
		assert.False(t, targeting.Eligible(testUser("DE", "PARTNER1", false, nil), now))
		assert.False(t, targeting.Eligible(testUser("DE", "PARTNER1", false, &past), now))
	})

	t.Run("NOCODE includes codeless users without access", func(t *testing.T) {
		targeting := NewTargeting(nil, []string{"NOCODE"})

		// No referral code, no payment, no trial: still included.
		assert.True(t, targeting.Eligible(testUser("DE", "", false, nil), now))
		// A referral code moves the user out of the NOCODE branch.
		assert.False(t, targeting.Eligible(testUser("DE", "PARTNER1", false, nil), now))
	})

	t.Run("NOCODE carve-out does not bypass geo", func(t *testing.T) {
		targeting := NewTargeting([]string{"SE"}, []string{"NOCODE"})
		assert.False(t, targeting.Eligible(testUser("DE", "", false, nil), now))
		assert.True(t, targeting.Eligible(testUser("SE", "", false, nil), now))
	})

	t.Run("specific referral code requires access", func(t *testing.T) {
		targeting := NewTargeting(nil, []string{"PARTNER1"})

		assert.True(t, targeting.Eligible(testUser("DE", "PARTNER1", true, nil), now))
		assert.False(t, targeting.Eligible(testUser("DE", "PARTNER1", false, nil), now))
		assert.False(t, targeting.Eligible(testUser("DE", "PARTNER2", true, nil), now))
	})

	t.Run("geo mismatch excludes regardless of referral", func(t *testing.T) {
		targeting := NewTargeting([]string{"SE", "NO"}, nil)

		assert.False(t, targeting.Eligible(testUser("DE", "x", true, nil), now))
		assert.True(t, targeting.Eligible(testUser("NO", "x", true, nil), now))
	})

	t.Run("trial boundary is exclusive", func(t *testing.T) {
		targeting := NewTargeting(nil, nil)
		exact := now
		// TrialUntil == now is already lapsed.
		assert.False(t, targeting.Eligible(testUser("DE", "PARTNER1", false, &exact), now))
	})
}

func TestTargetingMatchesProfile(t *testing.T) {
	t.Run("does not re-check access", func(t *testing.T) {
		targeting := NewTargeting(nil, nil)
		// MatchesProfile has no user, only profile fields; an expired
		// recipient still matches.
		assert.True(t, targeting.MatchesProfile("DE", "PARTNER1"))
	})

	t.Run("geo still filters", func(t *testing.T) {
		targeting := NewTargeting([]string{"SE"}, nil)
		assert.False(t, targeting.MatchesProfile("DE", ""))
		assert.True(t, targeting.MatchesProfile("SE", ""))
	})

	t.Run("NOCODE matches only codeless profiles", func(t *testing.T) {
		targeting := NewTargeting(nil, []string{"NOCODE"})
		assert.True(t, targeting.MatchesProfile("DE", ""))
		assert.False(t, targeting.MatchesProfile("DE", "PARTNER1"))
	})

	t.Run("specific code matches without access", func(t *testing.T) {
		targeting := NewTargeting(nil, []string{"PARTNER1"})
		assert.True(t, targeting.MatchesProfile("DE", "PARTNER1"))
		assert.False(t, targeting.MatchesProfile("DE", ""))
	})
}
