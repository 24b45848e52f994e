package config

// BatchConfig bounds the per-commit detail lookups done for an analysis.
type BatchConfig struct {
	Workers int
	// DetailCap limits general detail batches.
	DetailCap int
	// SkillCap limits the commits sampled for skill aggregation.
	SkillCap int
	// HeroCap limits the commits inspected for hero moments.
	HeroCap int
}

// DefaultBatchConfig returns the default batch configuration
func DefaultBatchConfig() *BatchConfig {
	return &BatchConfig{
		Workers:   1,
		DetailCap: 20,
		SkillCap:  30,
		HeroCap:   50,
	}
}
