package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Stages
	StageProd  = "prod"
	StageDev   = "dev"
	StageLocal = "local"
	StageTest  = "test"

	// Calculation directions
	DirectionGrossToNet = "gross_to_net"
	DirectionNetToGross = "net_to_gross"
)

// IsValidStage checks if the provided stage string is one of the defined valid stages.
func IsValidStage(stage string) bool {
	switch stage {
	case StageProd, StageDev, StageLocal, StageTest:
		return true
	default:
		return false
	}
}
