package logger

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

func (n nopLogger) WithField(string, any) Logger     { return n }
func (n nopLogger) WithFields(map[string]any) Logger { return n }
func (n nopLogger) WithError(error) Logger           { return n }
func (nopLogger) Trace(...any)                       {}
func (nopLogger) Debug(...any)                       {}
func (nopLogger) Info(...any)                        {}
func (nopLogger) Warn(...any)                        {}
func (nopLogger) Error(...any)                       {}
func (nopLogger) Tracef(string, ...any)              {}
func (nopLogger) Debugf(string, ...any)              {}
func (nopLogger) Infof(string, ...any)               {}
func (nopLogger) Warnf(string, ...any)               {}
func (nopLogger) Errorf(string, ...any)              {}
func (nopLogger) SetLevel(Level)                     {}
func (nopLogger) GetLevel() Level                    { return Disabled }
