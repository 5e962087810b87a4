package release

// Config holds configuration for the TOA release consulted during
// reconciliation.
type Config struct {
	// Location is the directory, or s3://bucket/prefix/, of the current release.
	Location string `mapstructure:"location" default:"/nanograv/timing/releases/15y/toagen/releases/latest/"`
	// Extension is the suffix of TOA files in the release.
	Extension string `mapstructure:"extension" default:".tim"`
}
