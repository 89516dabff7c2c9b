package hmm

// StateID identifies one of the N = numUnits*numUnitStates left-to-right
// HMM states. State unit*numUnitStates+inUnit is in-unit state inUnit of
// unit unit, with inUnit=0 the entry state. Centralizing the
// unit/in-unit conversions here keeps the %/ arithmetic out of callers,
// per spec.md's "dynamic count indexing" design note.
type StateID int

// NewStateID builds the state id for in-unit index inUnit of unit unit.
func NewStateID(unit, inUnit, numUnitStates int) StateID {
	return StateID(unit*numUnitStates + inUnit)
}

// Unit returns which acoustic unit this state belongs to.
func (id StateID) Unit(numUnitStates int) int {
	return int(id) / numUnitStates
}

// InUnit returns the in-unit index, 0 being the entry state.
func (id StateID) InUnit(numUnitStates int) int {
	return int(id) % numUnitStates
}

// IsUnitFinal reports whether id is the last state of its unit, i.e.
// the only state whose advance transition leaves the unit.
func (id StateID) IsUnitFinal(numUnitStates int) bool {
	return id.InUnit(numUnitStates) == numUnitStates-1
}
