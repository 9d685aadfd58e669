package jumpcondition

// Norm selects the comparison a JumpCondition applies to the difference
// between its current and reference sensor readings.
type Norm string

const (
	L1          Norm = "L1"
	L2          Norm = "L2"
	LInf        Norm = "L_INF"
	ThreshUpper Norm = "Thresh_Upper"
	ThreshLower Norm = "Thresh_Lower"
	Rotation    Norm = "Rotation"
	Transform   Norm = "Transform"
)
