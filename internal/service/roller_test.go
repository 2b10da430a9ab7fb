package service_test

// scriptedRoller возвращает заранее заданные значения по очереди.
// Когда очередь пуста, IntN возвращает fallbackInt (ограниченный n-1),
// а Float64 - fallbackFloat.
type scriptedRoller struct {
	ints          []int
	floats        []float64
	fallbackInt   int
	fallbackFloat float64
}

func (r *scriptedRoller) IntN(n int) int {
	v := r.fallbackInt
	if len(r.ints) > 0 {
		v = r.ints[0]
		r.ints = r.ints[1:]
	}
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

func (r *scriptedRoller) Float64() float64 {
	if len(r.floats) > 0 {
		v := r.floats[0]
		r.floats = r.floats[1:]
		return v
	}
	return r.fallbackFloat
}
