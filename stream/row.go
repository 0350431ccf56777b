package stream

// Row holds the values of the configured components for one item, in component order.
// Rows are created per run and discarded once written.
type Row struct {
	itemID string
	values []string
}

// NewRowWithValues creates a Row from existing values.
func NewRowWithValues(itemID string, values []string) Row {
	v := make([]string, len(values))
	copy(v, values)
	return Row{itemID: itemID, values: v}
}

func (r Row) ItemID() string {
	return r.itemID
}

// Values returns the row values as strings, suitable for a CSV writer.
func (r Row) Values() []string {
	return r.values
}

// Interfaces returns the row values as a slice of interface{}, suitable for SQL bind arguments.
func (r Row) Interfaces() []interface{} {
	retval := make([]interface{}, len(r.values))
	for i, v := range r.values {
		retval[i] = v
	}
	return retval
}
