package graph

// Var is a mutable input cell: a leaf of the value graph holding a
// timestamped value. Reads go through the owning System; writes require the
// System's open mutation window.
//
// A Var is safe to read from multiple goroutines between mutation windows.
// Holding a pointer obtained from Modify across End is a caller error.
type Var[T any] struct {
	systemID SystemID
	version  Version
	val      T
}

// NewVar creates an input cell owned by s, stamped at the System's current
// version.
func NewVar[T any](s *System, initial T) *Var[T] {
	return &Var[T]{
		systemID: s.id,
		version:  s.version,
		val:      initial,
	}
}

// Modify stamps the cell with the window's version and returns a mutable
// pointer to the stored value for the caller to overwrite. There is no
// separate commit step: the stamp takes effect immediately, and readers only
// ever observe pre- or post-mutation state because reads and open windows
// never overlap.
//
// Panics with ErrSystemMismatch when the window belongs to another System.
func (v *Var[T]) Modify(m *Modify) *T {
	v.systemID.checkModify(m)
	v.version = m.Version()
	return &v.val
}

// Set overwrites the cell's value through the window.
func (v *Var[T]) Set(m *Modify, val T) {
	*v.Modify(m) = val
}

func (v *Var[T]) value(fr *evalFrame) (Version, *T) {
	v.systemID.checkSystem(fr.system)
	return v.version, &v.val
}
