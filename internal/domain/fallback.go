package domain

// FallbackReport returns the canned report used when generation
// fails. Deterministic, every field populated, same shape as a
// generated report so display code never special-cases failure.
func FallbackReport(c Category) Report {
	return Report{
		Category:  c,
		Player:    "an unnamed Leafs skater",
		Diagnosis: "The team has declined to specify beyond the category on the wheel.",
		Timeline:  "Week-to-week, which historically means nobody knows.",
		Quote:     `"He's progressing well and we'll update you when there's an update," said a team spokesperson.`,
		CapImpact: "Cap implications to be determined pending LTIR gymnastics.",
	}
}
