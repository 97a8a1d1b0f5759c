// Package skills derives categorical skill tags from finalized ratings.
package skills

import (
	"github.com/okian/prospect/internal/domain/model"
)

// Rule awards Tag when the weighted blend of the snapshot's attributes
// meets Threshold. Attributes missing from the snapshot count as zero.
type Rule struct {
	Tag       string
	Threshold float64
	Weights   map[string]float64 // attribute name -> relative weight
}

func (r Rule) blend(attrs map[string]int) float64 {
	var sum, total float64
	for attr, w := range r.Weights {
		sum += float64(attrs[attr]) * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// Tagger derives an ordered list of skill tags from a snapshot. The
// order is significant for display only.
type Tagger interface {
	Tags(snap *model.RatingsSnapshot) []string
}

// ThresholdTagger evaluates rules in the order they were supplied, so
// awarded tags keep a stable display order.
type ThresholdTagger struct {
	rules []Rule
}

// Option applies a configuration option to the ThresholdTagger.
type Option func(*ThresholdTagger)

// WithRules appends additional rules after the ones passed to the
// constructor.
func WithRules(rules ...Rule) Option {
	return func(t *ThresholdTagger) {
		t.rules = append(t.rules, rules...)
	}
}

// NewThresholdTagger builds a tagger from the given ordered rules.
func NewThresholdTagger(rules []Rule, opts ...Option) *ThresholdTagger {
	t := &ThresholdTagger{
		rules: append(make([]Rule, 0, len(rules)), rules...),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Tags implements Tagger.
func (t *ThresholdTagger) Tags(snap *model.RatingsSnapshot) []string {
	if snap == nil || snap.Attrs == nil {
		return nil
	}

	var tags []string
	for _, r := range t.rules {
		if r.blend(snap.Attrs) >= r.Threshold {
			tags = append(tags, r.Tag)
		}
	}
	return tags
}
