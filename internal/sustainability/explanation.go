package sustainability

import (
	"fmt"
	"strconv"
	"strings"
)

// FallbackExplanation replaces generated text whenever generation fails.
const FallbackExplanation = "Unable to generate explanation at this time."

// ExplanationPrompt builds the text-generation prompt for a store. Community values are
// printed as 0.0 when the store has no ratings.
func ExplanationPrompt(store Store, agg RatingAggregate) string {
	var b strings.Builder
	b.WriteString("As a sustainability expert, provide a brief, friendly explanation (2-3 sentences) of why this store received the following sustainability scores:\n\n")
	for _, key := range MetricKeys {
		fmt.Fprintf(&b, "%s: %s/5 (Community: %.1f/5)\n",
			key.Label(),
			formatScore(store.Metrics.Value(key)),
			agg.Averages.Value(key),
		)
	}
	b.WriteString("\nFocus on the strengths and areas for improvement. Be encouraging and specific.")
	return b.String()
}

// system scores are printed as stored, without rounding
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
