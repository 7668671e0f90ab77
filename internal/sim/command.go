package sim

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/litescript/ls-orrery/internal/catalog"
)

// ErrUnknownCommand is returned for command types the engine does not know.
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind names an input operation. The string values are the wire
// "type" field.
type CommandKind string

const (
	CmdSetGlobalSpeed  CommandKind = "setGlobalSpeed"
	CmdSetScale        CommandKind = "setScale"
	CmdTogglePlay      CommandKind = "togglePlay"
	CmdSetBodySpeed    CommandKind = "setBodySpeed"
	CmdResetAll        CommandKind = "resetAll"
	CmdSyncAllToGlobal CommandKind = "syncAllToGlobal"
	CmdFocusOn         CommandKind = "focusOn"
	CmdReset           CommandKind = "reset"
	CmdToggleTheme     CommandKind = "toggleTheme"
)

var knownCommands = map[CommandKind]bool{
	CmdSetGlobalSpeed:  true,
	CmdSetScale:        true,
	CmdTogglePlay:      true,
	CmdSetBodySpeed:    true,
	CmdResetAll:        true,
	CmdSyncAllToGlobal: true,
	CmdFocusOn:         true,
	CmdReset:           true,
	CmdToggleTheme:     true,
}

// Command is one user intent. Body and Value are used by the kinds that
// need them and ignored otherwise.
type Command struct {
	Kind  CommandKind    `json:"type"`
	Body  catalog.BodyID `json:"id,omitempty"`
	Value float64        `json:"value,omitempty"`
}

func (c Command) String() string {
	switch c.Kind {
	case CmdSetGlobalSpeed, CmdSetScale:
		return fmt.Sprintf("%s(%.3g)", c.Kind, c.Value)
	case CmdSetBodySpeed:
		return fmt.Sprintf("%s(%s, %.3g)", c.Kind, c.Body, c.Value)
	case CmdFocusOn:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Body)
	default:
		return string(c.Kind)
	}
}

// Validate checks the kind only; ids are checked when the command is applied.
func (c Command) Validate() error {
	if !knownCommands[c.Kind] {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Kind)
	}
	return nil
}

// ParseCommand decodes a wire command such as
// {"type":"setBodySpeed","id":"mars","value":1.5}.
func ParseCommand(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	c.Body = normaliseID(c.Body)
	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}

func normaliseID(id catalog.BodyID) catalog.BodyID {
	if id == "" {
		return ""
	}
	return catalog.ParseID(string(id))
}

// Constructors used by the presentation layers.

func SetGlobalSpeed(v float64) Command { return Command{Kind: CmdSetGlobalSpeed, Value: v} }
func SetScale(v float64) Command       { return Command{Kind: CmdSetScale, Value: v} }
func TogglePlay() Command              { return Command{Kind: CmdTogglePlay} }
func ResetAll() Command                { return Command{Kind: CmdResetAll} }
func SyncAllToGlobal() Command         { return Command{Kind: CmdSyncAllToGlobal} }
func Reset() Command                   { return Command{Kind: CmdReset} }
func ToggleTheme() Command             { return Command{Kind: CmdToggleTheme} }

func SetBodySpeed(id catalog.BodyID, v float64) Command {
	return Command{Kind: CmdSetBodySpeed, Body: id, Value: v}
}

// FocusOn targets a body, or the overview when id is catalog.Overview or "".
func FocusOn(id catalog.BodyID) Command {
	return Command{Kind: CmdFocusOn, Body: id}
}
