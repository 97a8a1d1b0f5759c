package gridiron

import "github.com/okian/prospect/internal/domain/skills"

// Tagger returns the threshold classifier for gridiron skill tags.
// Rule order fixes the display order of awarded tags.
func Tagger() skills.Tagger {
	return skills.NewThresholdTagger([]skills.Rule{
		{Tag: "cannon_arm", Threshold: 90, Weights: map[string]float64{attrThrowing: 1}},
		{Tag: "field_general", Threshold: 85, Weights: map[string]float64{attrAwareness: 0.7, attrThrowing: 0.3}},
		{Tag: "deep_threat", Threshold: 85, Weights: map[string]float64{attrSpeed: 0.6, attrCatching: 0.4}},
		{Tag: "workhorse", Threshold: 82, Weights: map[string]float64{attrCarrying: 0.5, attrStrength: 0.3, attrStamina: 0.2}},
		{Tag: "shutdown", Threshold: 85, Weights: map[string]float64{attrCoverage: 0.7, attrSpeed: 0.3}},
		{Tag: "enforcer", Threshold: 85, Weights: map[string]float64{attrTackling: 0.6, attrStrength: 0.4}},
		{Tag: "iron_leg", Threshold: 90, Weights: map[string]float64{attrKicking: 1}},
	})
}
