package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Snapshot loading errors

type SnapshotError struct {
	*DomainError
	UnitID string
}

func NewSnapshotError(message, unitID string) *SnapshotError {
	return &SnapshotError{DomainError: &DomainError{Message: message}, UnitID: unitID}
}

// MalformedSnapshotError reports a persisted field that could not be parsed.
// The loader skips the field and keeps going.
type MalformedSnapshotError struct {
	*SnapshotError
	Field string
	Value string
}

func NewMalformedSnapshotError(unitID, field, value string) *MalformedSnapshotError {
	return &MalformedSnapshotError{
		SnapshotError: NewSnapshotError(
			fmt.Sprintf("unit %s: malformed %s %q", unitID, field, value),
			unitID,
		),
		Field: field,
		Value: value,
	}
}

// DanglingReferenceError reports a person reference that resolves to nobody.
type DanglingReferenceError struct {
	*SnapshotError
	Role      string
	Reference string
}

func NewDanglingReferenceError(unitID, role, reference string) *DanglingReferenceError {
	return &DanglingReferenceError{
		SnapshotError: NewSnapshotError(
			fmt.Sprintf("unit %s: %s reference %s does not resolve to a person", unitID, role, reference),
			unitID,
		),
		Role:      role,
		Reference: reference,
	}
}

// Unit operation errors

type UnitError struct {
	*DomainError
	UnitID string
}

func NewUnitError(message, unitID string) *UnitError {
	return &UnitError{DomainError: &DomainError{Message: message}, UnitID: unitID}
}

type PartUnavailableError struct {
	*UnitError
	PartName string
}

func NewPartUnavailableError(unitID, partName string) *PartUnavailableError {
	return &PartUnavailableError{
		UnitError: NewUnitError(fmt.Sprintf("no replacement in stock for %s", partName), unitID),
		PartName:  partName,
	}
}

type LocationFullError struct {
	*UnitError
	Location string
}

func NewLocationFullError(unitID, location string) *LocationFullError {
	return &LocationFullError{
		UnitError: NewUnitError(fmt.Sprintf("no room left in %s", location), unitID),
		Location:  location,
	}
}

// InconsistentKeyError is reported when two parts claim the same structural key.
// The later one is discarded.
type InconsistentKeyError struct {
	*UnitError
	Key            string
	DiscardedPart  string
	RetainedPartID string
}

func NewInconsistentKeyError(unitID, key, discarded, retained string) *InconsistentKeyError {
	return &InconsistentKeyError{
		UnitError: NewUnitError(
			fmt.Sprintf("duplicate part for key %s: discarded %s, kept %s", key, discarded, retained),
			unitID,
		),
		Key:            key,
		DiscardedPart:  discarded,
		RetainedPartID: retained,
	}
}

type InvalidTransitionError struct {
	*UnitError
	From string
	To   string
}

func NewInvalidTransitionError(unitID, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		UnitError: NewUnitError(fmt.Sprintf("cannot move from %s to %s", from, to), unitID),
		From:      from,
		To:        to,
	}
}

type RefitInProgressError struct {
	*UnitError
}

func NewRefitInProgressError(unitID string) *RefitInProgressError {
	return &RefitInProgressError{UnitError: NewUnitError("a refit is already in progress", unitID)}
}

type CrewAssignmentError struct {
	*UnitError
	PersonID string
	Role     string
}

func NewCrewAssignmentError(unitID, personID, role, reason string) *CrewAssignmentError {
	return &CrewAssignmentError{
		UnitError: NewUnitError(fmt.Sprintf("cannot assign %s as %s: %s", personID, role, reason), unitID),
		PersonID:  personID,
		Role:      role,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
