package domain

// WarmStats summarizes a cache warm-up run.
type WarmStats struct {
	// Classes is the number of class names enumerated.
	Classes int
	// Resolved counts classes with metadata.
	Resolved int
	// Absent counts classes without metadata.
	Absent int
	// Failed lists classes whose resolution returned an error, sorted.
	Failed []string
}
