// Package domain contains core concepts of the document-sync broker.
// This file defines the closed set of wire commands and their auth rules.
// No runtime, network, or storage logic should be added here.
package domain

type CommandType string

const (
	Login            CommandType = "LOGIN"
	ListFilesRequest CommandType = "LIST_FILES_REQUEST"
	OpenFileRequest  CommandType = "OPEN_FILE_REQUEST"
	Edit             CommandType = "EDIT"
	CreateFile       CommandType = "CREATE_FILE"
	SaveFile         CommandType = "SAVE_FILE"
)

// Command is one decoded wire frame. Param2 is always the last field and may
// contain delimiter characters verbatim.
type Command struct {
	Type   CommandType
	Param1 string
	Param2 string
}

// RequiresAuth reports whether the command is gated behind a successful
// login. Everything except LOGIN itself is, including unknown commands.
func (t CommandType) RequiresAuth() bool {
	return t != Login
}
