package turtle

// Snapshot captures the observable attempt state for tests and logging.
type Snapshot struct {
	Level     int
	Status    Status
	Cursor    int
	Total     int
	X, Y      float64
	Heading   int
	Segments  int
	Highlight int
}

// Snapshot returns the current attempt snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Level:     e.level.Number,
		Status:    e.status,
		Cursor:    e.cursor,
		Total:     e.level.Len(),
		X:         e.pose.X,
		Y:         e.pose.Y,
		Heading:   e.pose.Heading,
		Segments:  len(e.segments),
		Highlight: e.Highlight(),
	}
}
