package constants

// Supported locales and previewer defaults
const (
	// LocaleEnUS is also the fallback when a requested locale has no match
	LocaleEnUS = "en-US"
	LocaleEnGB = "en-GB"
	LocaleJaJP = "ja-JP"

	// DefaultLocale matches the locale picker's initial selection
	DefaultLocale = LocaleJaJP

	// DefaultInitialPattern renders the current moment in the en-US locale-string style
	DefaultInitialPattern = "M/D/YYYY, h:mm:ss A"
)

// SupportedLocales lists the locales the picker offers, in display order
var SupportedLocales = []string{LocaleEnUS, LocaleEnGB, LocaleJaJP}

// View configuration
const (
	// DefaultViewWidth is the display column width used to align result entries
	DefaultViewWidth = 40

	// MinViewWidth and MaxViewWidth bound the configurable column width
	MinViewWidth = 10
	MaxViewWidth = 200

	// DefaultTemplateName is the built-in screen template
	DefaultTemplateName = "classic"
)

// File and logging configuration
const (
	// DefaultMaxLogFiles to keep in rotation
	DefaultMaxLogFiles = 7

	// DefaultMaxLogSizeMB per log file
	DefaultMaxLogSizeMB = 10

	// DefaultLogFilenamePattern uses the logger's %Y%m%d placeholders
	DefaultLogFilenamePattern = "intl-playground-%Y%m%d.log"
)
