package scheme

// Capture is one typed placeholder value.
type Capture struct {
	Kind  Kind
	Text  string
	Int   int
	Float float64 // also set for Int captures
	Bool  bool
}

// Match holds the captures of a successful match in placeholder order.
type Match []Capture

// Var returns capture i as an identifier.
func (m Match) Var(i int) string {
	return m[i].Text
}

// Int returns capture i as an integer.
func (m Match) Int(i int) int {
	return m[i].Int
}

// Float returns capture i as a float. Integer captures are widened.
func (m Match) Float(i int) float64 {
	return m[i].Float
}

// Bool returns capture i as a boolean.
func (m Match) Bool(i int) bool {
	return m[i].Bool
}

// Values returns the captures as plain Go values: string, int, float64 or bool.
func (m Match) Values() []any {
	vals := make([]any, len(m))
	for i, c := range m {
		switch c.Kind {
		case Var:
			vals[i] = c.Text
		case Int:
			vals[i] = c.Int
		case Float, Double:
			vals[i] = c.Float
		case Bool:
			vals[i] = c.Bool
		}
	}
	return vals
}
