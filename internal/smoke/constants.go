package smoke

import "time"

// Defaults applied to zero Config fields.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultWorkers = 4
	DefaultGrade   = 3
	DefaultTop     = 5
	DefaultTimeout = 10 * time.Second
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Correlation families counted by a run.
var correlationFamilies = []string{"kindergarten_graduation", "kindergarten_income"}
