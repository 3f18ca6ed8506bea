package logger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type (
	// ContextLogger is a named logger with its own level and a fixed set of context fields.
	// Its zerolog instance is built on first use, so loggers can be created in the var phase
	// of packages, before the application configures logging.
	ContextLogger struct {
		zeroLogger      *zerolog.Logger
		level           LogLevel
		context         Context
		showGoroutineID bool
	}

	Context map[string]interface{}
)

func newContextLogger(level LogLevel, context Context, showGoroutineID bool) *ContextLogger {
	return &ContextLogger{
		level:           level,
		context:         context,
		showGoroutineID: showGoroutineID,
	}
}

func (c *ContextLogger) update(level LogLevel, context Context, showGoroutineID bool) {
	c.level = level
	c.context = context
	c.showGoroutineID = showGoroutineID

	ctx := log.Level(toZeroLevel(level)).With()
	for key, value := range context {
		ctx = ctx.Interface(key, value)
	}
	zl := ctx.Logger()
	if showGoroutineID {
		zl = zl.Hook(goRoutineIDHook{})
	}
	c.zeroLogger = &zl
}

func (c *ContextLogger) logger() *zerolog.Logger {
	if c.zeroLogger == nil {
		InitializeGlobalLogger()
		c.update(c.level, c.context, c.showGoroutineID)
	}
	return c.zeroLogger
}

func (c *ContextLogger) Trace(format string, args ...interface{}) {
	logMessage(c.logger().Trace(), format, args)
}

func (c *ContextLogger) Debug(format string, args ...interface{}) {
	logMessage(c.logger().Debug(), format, args)
}

func (c *ContextLogger) Info(format string, args ...interface{}) {
	logMessage(c.logger().Info(), format, args)
}

func (c *ContextLogger) Warning(format string, args ...interface{}) {
	logMessage(c.logger().Warn(), format, args)
}

func (c *ContextLogger) Error(format string, args ...interface{}) {
	logMessage(c.logger().Error(), format, args)
}

// logMessage formats only when the level is enabled; a nil event means disabled.
func logMessage(event *zerolog.Event, format string, args []interface{}) {
	if !event.Enabled() {
		return
	}
	if len(args) == 0 {
		event.Msg(format)
		return
	}
	event.Msgf(format, args...)
}

func (c *ContextLogger) ChangeLevel(newLevel LogLevel) {
	zl := c.logger().Level(toZeroLevel(newLevel))
	c.level = newLevel
	c.zeroLogger = &zl
}

func (c *ContextLogger) GetLevel() LogLevel {
	return c.level
}

type goRoutineIDHook struct{}

func (goRoutineIDHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Uint64("GoID", goroutineID())
}

var zeroLevels = map[LogLevel]zerolog.Level{
	NONE:    zerolog.Disabled,
	ERROR:   zerolog.ErrorLevel,
	WARNING: zerolog.WarnLevel,
	INFO:    zerolog.InfoLevel,
	DEBUG:   zerolog.DebugLevel,
	TRACE:   zerolog.TraceLevel,
}

// toZeroLevel maps unknown levels to disabled.
func toZeroLevel(lvl LogLevel) zerolog.Level {
	if zl, ok := zeroLevels[lvl]; ok {
		return zl
	}
	return zerolog.Disabled
}
