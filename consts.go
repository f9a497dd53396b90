package logging

import "time"

// Defaults mirror the pegasus client's built-in rolling file settings.
const (
	DefaultSinkName            = "pegasusRolling"
	DefaultPrimaryPath         = "log/pegasus/pegasus.client.log"
	DefaultRotatedPathPattern  = DefaultPrimaryPath + "." + defaultRotatedSuffix
	DefaultDeletionNamePattern = "pegasus.client.log*"
	DefaultLinePattern         = "%d{yyyy-MM-dd HH:mm:ss} %-5p %c{1}:%L - %m%n"
	DefaultRetentionAge        = 7 * 24 * time.Hour
	DefaultMinFiles            = 1
	DefaultMaxFiles            = 5
	// DefaultRotationSize is 10 MiB. A bare "10" in a configuration file
	// still parses as ten bytes, so the built-in default is not "10".
	DefaultRotationSize = 10 * MiB

	defaultRotatedSuffix = "%d{yyyy-MM-dd.HH:mm:ss}"
)

const (
	emptyString = ""
	// loggerFieldName carries the bound identity on every event.
	loggerFieldName = "logger"
	// fallbackIdentity is used when neither a name nor the executable name is known.
	fallbackIdentity = "app"
	// callerSkip is the number of Handle frames between the user and newEvent.
	callerSkip = 2
)

const (
	errMsgConfigInvalid   = "Sink configuration is invalid."
	errMsgNilHost         = "Host logging registry is nil."
	errMsgNilRegistry     = "Sink registry is nil."
	errMsgPatternInvalid  = "Log pattern is invalid."
	errMsgRegisterFailed  = "Registering the sink destination failed."
	errMsgBuildFailed     = "Building the sink destination failed."
	errMsgRotatedNoDate   = "Rotated path pattern must contain a %d token."
	errMsgDeletionPattern = "Deletion name pattern is not a valid glob."
)
