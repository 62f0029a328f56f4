package domain

// Language identifies the programming language of a code submission.
type Language string

const (
	// LanguageUnspecified represents a missing language value.
	LanguageUnspecified Language = ""
	// LanguageLua is executed natively by the sandbox.
	LanguageLua Language = "lua"
	// LanguagePython submissions are classified but not executed.
	LanguagePython Language = "python"
	// LanguageJavaScript submissions are classified but not executed.
	LanguageJavaScript Language = "javascript"
	// LanguageTypeScript submissions are classified but not executed.
	LanguageTypeScript Language = "typescript"
	// LanguageRust submissions are classified but not executed.
	LanguageRust Language = "rust"
	// LanguageSQL submissions are classified but not executed.
	LanguageSQL Language = "sql"
)

// Extension returns the conventional file extension for the language.
func (l Language) Extension() string {
	switch l {
	case LanguageLua:
		return "lua"
	case LanguagePython:
		return "py"
	case LanguageJavaScript:
		return "js"
	case LanguageTypeScript:
		return "ts"
	case LanguageRust:
		return "rs"
	case LanguageSQL:
		return "sql"
	default:
		return ""
	}
}

// Name returns the display name for the language.
func (l Language) Name() string {
	switch l {
	case LanguageLua:
		return "Lua"
	case LanguagePython:
		return "Python"
	case LanguageJavaScript:
		return "JavaScript"
	case LanguageTypeScript:
		return "TypeScript"
	case LanguageRust:
		return "Rust"
	case LanguageSQL:
		return "SQL"
	default:
		return ""
	}
}

// Valid reports whether the language is a known value.
func (l Language) Valid() bool {
	return l.Name() != ""
}

// Difficulty grades how demanding a lab is.
type Difficulty int

const (
	// DifficultyUnspecified represents a missing difficulty value.
	DifficultyUnspecified Difficulty = iota
	// DifficultyBeginner marks introductory exercises.
	DifficultyBeginner
	// DifficultyIntermediate marks moderate exercises.
	DifficultyIntermediate
	// DifficultyAdvanced marks challenging exercises.
	DifficultyAdvanced
	// DifficultyExpert marks expert-level exercises.
	DifficultyExpert
)

// Label returns a human-readable difficulty label.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	case DifficultyExpert:
		return "Expert"
	default:
		return "Unspecified"
	}
}
