package jumpcondition

// VacuousTruth resolves the conjunction of zero jump conditions. The
// original source allows an empty condition list to be vacuously active,
// which this engine's design rejects as a default (an empty guard would
// fire every switch the instant its source mode becomes current). Callers
// building a ControlSwitch with no conditions must opt in explicitly by
// passing vacuousTruth=true to the switch; VacuousTruth is that default
// answer, kept here so automaton has one place to reference it instead of
// hard-coding the constant.
const VacuousTruth = false
