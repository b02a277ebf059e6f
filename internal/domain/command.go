// Package domain defines core business entities and value objects for NLSH.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

import "time"

// CommandCategory groups intents by the kind of shell command they produce.
type CommandCategory string

const (
	CategoryFileSystem CommandCategory = "file_system"
	CategoryNavigation CommandCategory = "navigation"
	CategorySearch     CommandCategory = "search"
	CategoryProcess    CommandCategory = "process"
	CategoryNetwork    CommandCategory = "network"
	CategoryGit        CommandCategory = "git"
	CategoryBuild      CommandCategory = "build"
	CategorySystem     CommandCategory = "system"
	CategoryHelp       CommandCategory = "help"
	CategoryCustom     CommandCategory = "custom"
	CategoryUnknown    CommandCategory = "unknown"
)

// ParsedSlot is a named parameter extracted from the input. A slot with
// Required set and an empty Value marks the missing-slot condition consumed
// by the disambiguator.
type ParsedSlot struct {
	Name       string
	Value      string
	Type       string
	Required   bool
	Confidence float64
}

// ParsedCommand is the result of one parse pass over raw input. It is built
// once and never mutated afterwards.
type ParsedCommand struct {
	OriginalInput       string
	CanonicalForm       string
	Category            CommandCategory
	Action              string
	Slots               []ParsedSlot
	Flags               map[string]string
	Confidence          float64
	Alternatives        []string
	RequiresConfirm     bool
	ConfirmationMessage string
}

// Slot returns the first slot with the given name, if present.
func (c ParsedCommand) Slot(name string) (ParsedSlot, bool) {
	for _, s := range c.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return ParsedSlot{}, false
}

// SlotValues builds a name -> value map over the filled slots. Earlier slots
// win on duplicate names.
func (c ParsedCommand) SlotValues() map[string]string {
	vars := make(map[string]string, len(c.Slots))
	for _, s := range c.Slots {
		if s.Value == "" {
			continue
		}
		if _, ok := vars[s.Name]; !ok {
			vars[s.Name] = s.Value
		}
	}
	return vars
}

// MissingRequiredSlots lists required slot names still without a value.
func (c ParsedCommand) MissingRequiredSlots() []string {
	var missing []string
	for _, s := range c.Slots {
		if s.Required && s.Value == "" {
			missing = append(missing, s.Name)
		}
	}
	return missing
}

// CommandResult wraps the outcome of one execution attempt.
type CommandResult struct {
	Success           bool
	Output            string
	Error             string
	ExitCode          int
	Duration          time.Duration
	SuggestedFollowup string
}
