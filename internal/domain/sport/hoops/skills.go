package hoops

import "github.com/okian/prospect/internal/domain/skills"

// Tagger returns the threshold classifier for hoops skill tags.
func Tagger() skills.Tagger {
	return skills.NewThresholdTagger([]skills.Rule{
		{Tag: "sharpshooter", Threshold: 88, Weights: map[string]float64{attrShooting: 1}},
		{Tag: "floor_general", Threshold: 85, Weights: map[string]float64{attrPassing: 0.6, attrHandling: 0.4}},
		{Tag: "rim_protector", Threshold: 85, Weights: map[string]float64{attrDefense: 0.6, attrRebounding: 0.4}},
		{Tag: "slasher", Threshold: 85, Weights: map[string]float64{attrFinishing: 0.6, attrAthleticism: 0.4}},
		{Tag: "glass_cleaner", Threshold: 88, Weights: map[string]float64{attrRebounding: 1}},
	})
}
