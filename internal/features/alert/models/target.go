package models

import (
	"strings"
	"time"

	usermodels "slotbot-backend/internal/features/user/models"
)

// Campaign target lists arrive from the admin UI as plain string arrays with
// two sentinel values ("all", "NOCODE"). They are parsed once here into a
// tagged form so the matching code never compares magic strings.

// TargetKind discriminates the target variants.
type TargetKind int

const (
	// TargetAll matches every value.
	TargetAll TargetKind = iota
	// TargetNoCode matches users whose referral code is empty. Only
	// meaningful in referral target lists.
	TargetNoCode
	// TargetSpecific matches one literal geo or referral code.
	TargetSpecific
)

const (
	sentinelAll    = "all"
	sentinelNoCode = "NOCODE"
)

// Target is one entry of a campaign target list.
type Target struct {
	Kind TargetKind
	Code string
}

// TargetSet is an ordered list of targets for one dimension (geo or referral).
type TargetSet []Target

// ParseTargets normalizes a raw target list. An empty or nil list means "all".
func ParseTargets(raw []string) TargetSet {
	if len(raw) == 0 {
		return TargetSet{{Kind: TargetAll}}
	}

	set := make(TargetSet, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		switch {
		case s == "":
			continue
		case strings.EqualFold(s, sentinelAll):
			set = append(set, Target{Kind: TargetAll})
		case s == sentinelNoCode:
			set = append(set, Target{Kind: TargetNoCode})
		default:
			set = append(set, Target{Kind: TargetSpecific, Code: s})
		}
	}
	if len(set) == 0 {
		return TargetSet{{Kind: TargetAll}}
	}
	return set
}

// Strings renders the set back to its stored wire form.
func (ts TargetSet) Strings() []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		switch t.Kind {
		case TargetAll:
			out = append(out, sentinelAll)
		case TargetNoCode:
			out = append(out, sentinelNoCode)
		default:
			out = append(out, t.Code)
		}
	}
	return out
}

func (ts TargetSet) ContainsAll() bool {
	for _, t := range ts {
		if t.Kind == TargetAll {
			return true
		}
	}
	return false
}

func (ts TargetSet) ContainsNoCode() bool {
	for _, t := range ts {
		if t.Kind == TargetNoCode {
			return true
		}
	}
	return false
}

func (ts TargetSet) ContainsCode(code string) bool {
	if code == "" {
		return false
	}
	for _, t := range ts {
		if t.Kind == TargetSpecific && t.Code == code {
			return true
		}
	}
	return false
}

// MatchesGeo reports whether a user geo falls inside the set.
func (ts TargetSet) MatchesGeo(geo string) bool {
	return ts.ContainsAll() || ts.ContainsCode(geo)
}

// Targeting is a campaign's full audience selection.
type Targeting struct {
	Geo      TargetSet
	Referral TargetSet
}

// NewTargeting parses both dimensions from their stored wire form.
func NewTargeting(geoTargets, referralCodes []string) Targeting {
	return Targeting{
		Geo:      ParseTargets(geoTargets),
		Referral: ParseTargets(referralCodes),
	}
}

// Eligible is the creation-time inclusion test used by the recipient
// materializer. Access (paid or valid trial) gates every referral branch
// except NOCODE: users with no referral code and no access still match the
// NOCODE branch. That carve-out is intentional and relied upon downstream.
func (t Targeting) Eligible(u *usermodels.User, now time.Time) bool {
	if !t.Geo.MatchesGeo(u.Geo) {
		return false
	}

	if t.Referral.ContainsNoCode() && u.ReferralCode == "" {
		return true
	}

	hasAccess := u.HasAccess(now)
	if t.Referral.ContainsAll() {
		return hasAccess
	}
	if t.Referral.ContainsCode(u.ReferralCode) {
		return hasAccess
	}
	return false
}

// MatchesProfile is the read-time display filter: a pure targeting-field
// match against the user's current geo and referral code. Access is NOT
// re-checked here; it applies once, at recipient materialization time.
func (t Targeting) MatchesProfile(geo, referralCode string) bool {
	if !t.Geo.MatchesGeo(geo) {
		return false
	}
	if t.Referral.ContainsAll() {
		return true
	}
	if t.Referral.ContainsNoCode() && referralCode == "" {
		return true
	}
	return t.Referral.ContainsCode(referralCode)
}
