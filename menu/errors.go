package menu

import "menucode-go/errcode"

// ConfigError reports an invalid menu description. Path names the offending
// node as the labels from the root, separated by '/'.
type ConfigError struct {
	C    errcode.Code
	Path string
	Msg  string
}

func (e *ConfigError) Error() string {
	s := "menu config: " + string(e.C) + " at " + quotePath(e.Path)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *ConfigError) Code() errcode.Code { return e.C }

func quotePath(p string) string {
	if p == "" {
		return "<root>"
	}
	return "\"" + p + "\""
}
