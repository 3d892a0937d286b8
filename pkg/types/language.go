// Package types holds the data model shared by every stage of the scan
// pipeline: discovery, lexing, resolution, graph building, and analysis.
package types

// Language identifies the source language a file was lexed as.
type Language string

const (
	LangTS     Language = "ts"
	LangJS     Language = "js"
	LangRust   Language = "rs"
	LangPython Language = "py"
	LangGo     Language = "go"
	LangDart   Language = "dart"
	LangCSS    Language = "css"
	LangOther  Language = "other"
)

// FileKind is the classification assigned by file discovery (§4.1).
// Precedence when multiple tags match: Generated > Test > Story > Config > Code.
type FileKind string

const (
	KindCode      FileKind = "code"
	KindTest      FileKind = "test"
	KindStory     FileKind = "story"
	KindGenerated FileKind = "generated"
	KindConfig    FileKind = "config"
)
