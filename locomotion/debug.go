package locomotion

import "github.com/sirupsen/logrus"

// Debugger traces the individual steps of a tick. It is silent unless Enabled is set.
type Debugger struct {
	Enabled bool
	log     *logrus.Logger
}

// Notify logs the formatted message at debug level if the debugger is enabled and cond is true.
func (d *Debugger) Notify(cond bool, format string, args ...any) {
	if !d.Enabled || !cond {
		return
	}
	d.log.Debugf(format, args...)
}
