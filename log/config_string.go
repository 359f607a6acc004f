package log

import "strconv"

// String implements fmt.Stringer, returning the lowercase spelling used in
// CLI flags and config files ("trace", "debug", "info", "warn", "error").
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// String implements fmt.Stringer, returning the lowercase spelling used in
// CLI flags and config files ("text", "json").
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}
