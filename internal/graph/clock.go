package graph

// Timer is a manually advanced Clock.
type Timer struct {
	elapsed float64
	now     float64
}

// Tick advances the timer by dt seconds.
func (t *Timer) Tick(dt float64) {
	t.elapsed = dt
	t.now += dt
}

func (t *Timer) Elapsed() float64 { return t.elapsed }

func (t *Timer) Now() float64 { return t.now }
