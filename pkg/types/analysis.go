package types

// ImportKind distinguishes a static import from a side-effect (bare) import.
type ImportKind string

const (
	ImportStatic     ImportKind = "static"
	ImportSideEffect ImportKind = "side_effect"
)

// ResolutionKind classifies how (or whether) an import specifier resolved.
type ResolutionKind string

const (
	ResolutionLocal   ResolutionKind = "local" // resolved_path is set
	ResolutionStdlib  ResolutionKind = "stdlib"
	ResolutionDynamic ResolutionKind = "dynamic"
	ResolutionUnknown ResolutionKind = "unknown"
)

// ImportedSymbol is one named binding pulled in by an import.
type ImportedSymbol struct {
	Name  string
	Alias string // empty if not aliased
}

// ImportEntry records one import statement (§3).
type ImportEntry struct {
	Source       string // canonical form
	SourceRaw    string // as written in source
	Kind         ImportKind
	ResolvedPath string // set when Resolution == ResolutionLocal
	IsBare       bool   // side-effect import with no bound symbols
	Symbols      []ImportedSymbol
	Resolution   ResolutionKind
	IsTypeOnly   bool // TS `import type`, or a type-checking-only import
	Line         int
}

// ReexportTargetKind distinguishes a star re-export from a named list.
type ReexportTargetKind string

const (
	ReexportStar  ReexportTargetKind = "star"
	ReexportNamed ReexportTargetKind = "named"
)

// ReexportEntry records a re-export statement (`export * from`, `pub use`, ...).
type ReexportEntry struct {
	Source       string
	Kind         ReexportTargetKind
	Names        []ImportedSymbol // populated when Kind == ReexportNamed
	ResolvedPath string
	Resolved     bool
	Line         int
}

// ExportKind enumerates the declaration kinds a lexer can tag an export with.
type ExportKind string

const (
	ExportFunction ExportKind = "function"
	ExportClass    ExportKind = "class"
	ExportConst    ExportKind = "const"
	ExportVar      ExportKind = "var"
	ExportType     ExportKind = "type"
	ExportEnum     ExportKind = "enum"
	ExportReexport ExportKind = "reexport"
	ExportDecl     ExportKind = "decl"
)

// ExportForm distinguishes named vs. default exports (TS/JS specific, unused
// elsewhere but present uniformly for shape simplicity).
type ExportForm string

const (
	ExportNamed  ExportForm = "named"
	ExportDefault ExportForm = "default"
)

// ExportSymbol is one exported binding declared by a file (§3).
type ExportSymbol struct {
	Name       string
	Kind       ExportKind
	Form       ExportForm
	Line       int
	IsEntry    bool // entry point (main, route handler, command handler, pytest test, ...)
	EntryKind  string
}

// CommandRef is a Tauri-flavoured command handler or invocation site (§3).
type CommandRef struct {
	Name        string // declared function name / invoke() literal
	ExposedName string // after rename / rename_all / plugin namespacing
	Line        int
	IsPlugin    bool
	Registered  bool // handler only: present in a generate_handler! list
}

// EventKind enumerates the emit/listen site shapes recognized by lexers.
type EventKind string

const (
	EventEmit       EventKind = "emit"
	EventEmitAll    EventKind = "emit_all"
	EventListen     EventKind = "listen"
	EventListenOnce EventKind = "listen_once"
)

// EventRef is one emit or listen call site (§3).
type EventRef struct {
	RawName string // token as written at the call site (quoted literal or const identifier)
	Name    string // resolved literal name
	Line    int
	Kind    EventKind
	Awaited bool
	Payload string // best-effort source text of the payload expression
}

// RouteRef is a web-framework route declaration (FastAPI/Flask-style).
type RouteRef struct {
	Method string
	Path   string
	Line   int
}

// DynamicExecTemplate records exec/eval/compile evidence with a format
// placeholder, used to downgrade dead-export confidence (§4.2, §4.6).
type DynamicExecTemplate struct {
	Prefix string // identifier prefix extracted before the placeholder
	Line   int
}

// FileAnalysis is the unit of per-file extraction (§3).
type FileAnalysis struct {
	Path     string // relative POSIX
	LOC      int
	Language Language
	Kind     FileKind
	IsTest   bool
	IsGenerated bool

	Imports   []ImportEntry
	Reexports []ReexportEntry
	Exports   []ExportSymbol

	LocalSymbols  []string // top-level declarations not exported
	SymbolUsages  []string // deduplicated identifiers referenced in the file
	StringLiterals []string
	SignatureUses []string
	Matches       []string // free-form lexical evidence for later queries

	CommandHandlers []CommandRef
	CommandCalls    []CommandRef
	EventEmits      []EventRef
	EventListens    []EventRef
	EventConsts     map[string]string // const NAME = "value" -> value, file-local

	EntryPoints []string // names of exports/decls considered entry points
	Routes      []RouteRef

	DynamicImports         []ImportEntry
	DynamicExecTemplates   []DynamicExecTemplate
	SysModulesInjections   []string // `sys.modules[...] = value` targets

	IsTyped     bool // py.typed marker upstream
	IsNamespace bool // PEP 420 namespace package (Python)
}

// NewFileAnalysis returns a zero-value FileAnalysis for path/language with
// its maps initialized, so lexers never need a nil check before writing.
func NewFileAnalysis(path string, lang Language) *FileAnalysis {
	return &FileAnalysis{
		Path:        path,
		Language:    lang,
		Kind:        KindCode,
		EventConsts: make(map[string]string),
	}
}
