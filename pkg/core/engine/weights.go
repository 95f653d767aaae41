package engine

// Soft-score weights used to rank eligible candidates. Hard constraints
// are never expressed as weights; these only order people who already
// passed eligibility.
const (
	// WeightFairnessBase is divided by (1 + credited shift count) so the
	// least-loaded person scores highest.
	WeightFairnessBase = 10.0

	// WeightPreferredPair scales the configured pair weight when a
	// preferred partner is already seated on the slot.
	WeightPreferredPair = 1.0

	// WeightPairAnticipation discounts the pair bonus while the partner
	// is not seated yet but could still join an open seat of the slot.
	WeightPairAnticipation = 0.5

	// WeightSeniorNeed is added for senior-rank candidates while the
	// slot's seniority floor is not yet satisfied.
	WeightSeniorNeed = 0.5
)
