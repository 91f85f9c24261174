package graph

import "go.uber.org/zap"

// Observer receives value-graph lifecycle events. Implementations attached
// to a System whose nodes include SyncVals must be safe for concurrent use.
type Observer interface {
	// VersionAdvanced fires once per mutation window, with the new version.
	VersionAdvanced(v Version)

	// NodeRecomputed fires when a memo node is about to run its recompute
	// function at the given context version.
	NodeRecomputed(name string, v Version)

	// NodeCommitted fires when a recompute stored a new (version, value)
	// pair; v is the committed version.
	NodeCommitted(name string, v Version)

	// NodeCutoff fires when a recompute ran but the previous value stayed
	// committed (early cutoff).
	NodeCutoff(name string, v Version)
}

// LogObserver adapts a zap.Logger into an Observer, emitting every event at
// debug level.
func LogObserver(logger *zap.Logger) Observer {
	return logObserver{logger: logger}
}

type logObserver struct {
	logger *zap.Logger
}

func (o logObserver) VersionAdvanced(v Version) {
	o.logger.Debug("version advanced", zap.Stringer("version", v))
}

func (o logObserver) NodeRecomputed(name string, v Version) {
	o.logger.Debug("node recomputed", zap.String("node", name), zap.Stringer("version", v))
}

func (o logObserver) NodeCommitted(name string, v Version) {
	o.logger.Debug("node committed", zap.String("node", name), zap.Stringer("version", v))
}

func (o logObserver) NodeCutoff(name string, v Version) {
	o.logger.Debug("node cutoff", zap.String("node", name), zap.Stringer("version", v))
}
