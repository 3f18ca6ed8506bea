package logger

import (
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type globalFactory struct {
	sync.Mutex
	config                  GlobalConfig
	loggers                 map[string]*ContextLogger
	context                 Context
	consoleTimeFormat       string
	callerSkipFrames        int // how many frames to skip to get real caller. Not meant to be changed by callers.
	packageNameResolver     *PackageNameResolver
	nonAlphaNumericRegex    *regexp.Regexp
	globalLoggerInitialized bool
}

// Singleton for managing application wide logging.
var globalFactoryImpl *globalFactory

func init() {
	initializeGlobalFactory()
}

func initializeGlobalFactory() {
	globalFactoryImpl = &globalFactory{
		loggers:              make(map[string]*ContextLogger),
		context:              make(Context),
		consoleTimeFormat:    "15:04:05.000000",
		callerSkipFrames:     4,
		packageNameResolver:  &PackageNameResolver{BasePackage: "ramkit/ramkit"},
		nonAlphaNumericRegex: regexp.MustCompile(`[^a-zA-Z0-9]`),
	}
}

// SetContext sets context for all loggers
func SetContext(key string, value interface{}) {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	globalFactoryImpl.context[key] = value
	globalFactoryImpl.updateAllLoggers()
}

// ClearContext will clear a context key from all loggers
func ClearContext(key string) {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	delete(globalFactoryImpl.context, key)
	globalFactoryImpl.updateAllLoggers()
}

// CreateForPackage creates logger named after the caller package.
func CreateForPackage() Logger {
	return Create(globalFactoryImpl.packageNameResolver.PackageName())
}

// Create creates custom named logger
func Create(name string) Logger {
	return globalFactoryImpl.create(name)
}

// UpdateGlobalConfig updates global config and all loggers accordingly.
func UpdateGlobalConfig(config GlobalConfig) {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	globalFactoryImpl.updateFromConfig(config)
}

// UpdateGlobalConfigFromFile reads the file and parses it as YAML. Global logger configuration is updated accordingly.
// In case of an error, logger won't be updated.
func UpdateGlobalConfigFromFile(fileURL string) error {
	conf, err := LoadGlobalConfigFromFile(fileURL)
	if err != nil {
		return err
	}
	UpdateGlobalConfig(conf)
	return nil
}

// InitializeGlobalLogger initializes global logger with default configuration if it hasn't been initialized already.
func InitializeGlobalLogger() {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	if !globalFactoryImpl.globalLoggerInitialized {
		globalFactoryImpl.updateFromConfig(developerConfiguration())
	}
}

func (gf *globalFactory) updateFromConfig(config GlobalConfig) {
	newWriter := config.Writer != nil && config.Writer != gf.config.Writer

	updateOutputFormat := !gf.globalLoggerInitialized ||
		newWriter ||
		gf.config.ConsoleFormat != config.ConsoleFormat ||
		gf.config.ShowCaller != config.ShowCaller

	if newWriter {
		gf.config.Writer = config.Writer
	}
	gf.config.DefaultLevel = config.DefaultLevel
	gf.config.PackageLevels = config.PackageLevels
	gf.config.ConsoleFormat = config.ConsoleFormat
	gf.config.ShowCaller = config.ShowCaller
	gf.config.ShowGoroutineID = config.ShowGoroutineID

	if config.TimeLocation != "" {
		gf.updateTimeLocation(config.TimeLocation)
	}
	if updateOutputFormat {
		gf.updateOutputFormat()
	}
	gf.updateAllLoggers()
}

func (gf *globalFactory) updateTimeLocation(location string) {
	loc, err := time.LoadLocation(location)
	if err != nil {
		loc, _ = time.LoadLocation(defaultTimeLocation)
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}
}

// updateOutputFormat replaces the zerolog global logger. Context loggers copy it in update,
// so updateAllLoggers must follow.
func (gf *globalFactory) updateOutputFormat() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	// levels are enforced per context logger
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	var newGlobalLogger zerolog.Logger
	if gf.config.ConsoleFormat {
		newGlobalLogger = zerolog.New(zerolog.ConsoleWriter{
			Out:          gf.config.Writer,
			TimeFormat:   gf.consoleTimeFormat,
			FormatCaller: shortCaller,
		}).With().Timestamp().Logger()
	} else {
		newGlobalLogger = zerolog.New(gf.config.Writer).With().Timestamp().Logger()
	}
	if gf.config.ShowCaller {
		newGlobalLogger = newGlobalLogger.With().CallerWithSkipFrameCount(gf.callerSkipFrames).Logger()
	}
	log.Logger = newGlobalLogger
	gf.globalLoggerInitialized = true
}

func (gf *globalFactory) updateAllLoggers() {
	for name, logger := range gf.loggers {
		logger.update(gf.loggerLevel(name), gf.context, gf.config.ShowGoroutineID)
	}
}

func (gf *globalFactory) create(name string) Logger {
	gf.Lock()
	defer gf.Unlock()

	normName := gf.normalizeName(name)
	if logger, ok := gf.loggers[normName]; ok {
		return logger
	}
	// Configuration can set levels per logger name; packages name their logger after themselves.
	cl := newContextLogger(gf.loggerLevel(normName), gf.context, gf.config.ShowGoroutineID)
	if gf.globalLoggerInitialized {
		cl.update(cl.level, cl.context, cl.showGoroutineID)
	}
	gf.loggers[normName] = cl
	return cl
}

func (gf *globalFactory) normalizeName(name string) string {
	return gf.nonAlphaNumericRegex.ReplaceAllString(name, "_")
}

func (gf *globalFactory) loggerLevel(loggerName string) LogLevel {
	if level, ok := gf.config.PackageLevels[loggerName]; ok {
		return level
	}
	return gf.config.DefaultLevel
}
