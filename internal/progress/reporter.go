// Package progress defines the reporting seam between long-running
// subcommands and whatever renders their progress.
package progress

// Reporter receives incremental progress for one unit of work. Position is a
// percentage between 0 and 100. Tick keeps an animation alive when no bytes
// have arrived. Implementations must tolerate calls after Finish.
type Reporter interface {
	Position(percent int)
	Message(status string)
	Tick()
	Finish()
}

type nopReporter struct{}

func (nopReporter) Position(int)   {}
func (nopReporter) Message(string) {}
func (nopReporter) Tick()          {}
func (nopReporter) Finish()        {}

// Nop returns a reporter that drops everything, used in quiet mode and in
// non-interactive sessions.
func Nop() Reporter {
	return nopReporter{}
}
