package statemachine

import "errors"

// LifecycleStatus represents all possible states of an editing session
type LifecycleStatus string

const (
	StatusSaved        LifecycleStatus = "SAVED"
	StatusUnsaved      LifecycleStatus = "UNSAVED"
	StatusSaving       LifecycleStatus = "SAVING"
	StatusNeedsPublish LifecycleStatus = "NEEDS_PUBLISH"
)

// Trigger identifies what caused a status change
type Trigger string

const (
	TriggerMutate       Trigger = "mutate"
	TriggerPersistStart Trigger = "persist_start"
	TriggerPersistOK    Trigger = "persist_ok"
	TriggerPersistFail  Trigger = "persist_fail"
	TriggerDiscard      Trigger = "discard"
	TriggerPublish      Trigger = "publish"
)

// Transition defines a valid status change and what triggers it
type Transition struct {
	From    LifecycleStatus
	To      LifecycleStatus
	Trigger Trigger
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Any accepted document mutation marks the session unsaved
	{From: StatusSaved, To: StatusUnsaved, Trigger: TriggerMutate},
	{From: StatusUnsaved, To: StatusUnsaved, Trigger: TriggerMutate},
	{From: StatusSaving, To: StatusUnsaved, Trigger: TriggerMutate},
	{From: StatusNeedsPublish, To: StatusUnsaved, Trigger: TriggerMutate},
	// A persist call picks up pending changes; after a publish, one more
	// persist records the published slug on the draft
	{From: StatusUnsaved, To: StatusSaving, Trigger: TriggerPersistStart},
	{From: StatusSaved, To: StatusSaving, Trigger: TriggerPersistStart},
	// Persist settles: clean, or published copy now stale
	{From: StatusSaving, To: StatusSaved, Trigger: TriggerPersistOK},
	{From: StatusSaving, To: StatusNeedsPublish, Trigger: TriggerPersistOK},
	// Persist failure returns the pending changes to the caller
	{From: StatusSaving, To: StatusUnsaved, Trigger: TriggerPersistFail},
	{From: StatusUnsaved, To: StatusUnsaved, Trigger: TriggerPersistFail},
	// Discards replace the document wholesale
	{From: StatusSaved, To: StatusSaved, Trigger: TriggerDiscard},
	{From: StatusUnsaved, To: StatusSaved, Trigger: TriggerDiscard},
	{From: StatusNeedsPublish, To: StatusSaved, Trigger: TriggerDiscard},
	{From: StatusSaving, To: StatusSaved, Trigger: TriggerDiscard},
	{From: StatusSaved, To: StatusNeedsPublish, Trigger: TriggerDiscard},
	{From: StatusSaving, To: StatusNeedsPublish, Trigger: TriggerDiscard},
	{From: StatusUnsaved, To: StatusNeedsPublish, Trigger: TriggerDiscard},
	{From: StatusNeedsPublish, To: StatusNeedsPublish, Trigger: TriggerDiscard},
	// A successful publish leaves nothing pending
	{From: StatusSaved, To: StatusSaved, Trigger: TriggerPublish},
	{From: StatusUnsaved, To: StatusSaved, Trigger: TriggerPublish},
	{From: StatusNeedsPublish, To: StatusSaved, Trigger: TriggerPublish},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From    LifecycleStatus
	To      LifecycleStatus
	Trigger Trigger
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Trigger}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status LifecycleStatus) []LifecycleStatus {
	var nexts []LifecycleStatus
	seen := map[LifecycleStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a trigger may move the session between two states
func CanTransition(from, to LifecycleStatus, trigger Trigger) error {
	key := transitionKey{From: from, To: to, Trigger: trigger}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for trigger '" + string(trigger) + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status LifecycleStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
