package observability

import "github.com/sirupsen/logrus"

type Warning error

type InfoEntry struct {
	LogLevel logrus.Level
	Format   string
	Args     []any
	Fields   map[string]any
}

/*
LogCollection is used to collect logs (debug/info/warning/error)
while resolving a batch of urls, and to ship them once the batch is done
(so they don't interleave with the progress bar)
*/
type LogCollection struct {
	Logs   []InfoEntry
	Errors []error
	Warns  []Warning
}

func (ec *LogCollection) AddDebug(fields map[string]any, format string, args ...any) {
	entry := InfoEntry{
		LogLevel: logrus.DebugLevel,
		Format:   format,
		Args:     args,
		Fields:   fields,
	}
	ec.Logs = append(ec.Logs, entry)
}

func (ec *LogCollection) AddInfo(fields map[string]any, format string, args ...any) {
	entry := InfoEntry{
		LogLevel: logrus.InfoLevel,
		Format:   format,
		Args:     args,
		Fields:   fields,
	}
	ec.Logs = append(ec.Logs, entry)
}

func (ec *LogCollection) AddError(err error) {
	ec.Errors = append(ec.Errors, err)
}

func (ec *LogCollection) AddWarn(err Warning) {
	ec.Warns = append(ec.Warns, err)
}

func (ec *LogCollection) HasErrors() bool {
	return len(ec.Errors) > 0
}

func (ec *LogCollection) HasWarns() bool {
	return len(ec.Warns) > 0
}

func NewLogCollection() *LogCollection {
	return &LogCollection{
		Errors: []error{},
		Warns:  []Warning{},
	}
}

// Report ships the collected entries to the logger
func (ec *LogCollection) Report(logger logrus.FieldLogger, title string) {
	if ec.HasErrors() {
		logger.Errorf("%s failed:", title)
		for _, err := range ec.Errors {
			logger.Errorf("- %s", err)
		}
	}
	if ec.HasWarns() {
		logger.Warnf("Warnings:")
		for _, err := range ec.Warns {
			logger.Warnf("- %s", err)
		}
	}
	for _, info := range ec.Logs {
		logger.WithFields(info.Fields).Logf(info.LogLevel, info.Format, info.Args...)
	}
}
