package universe

//IsStable reports whether two generations are identical, i.e. the simulation reached a fixed point
//cells are compared in row-major order and the scan stops on the first mismatch
//only period-1 fixed points are detected, oscillators (a blinker for example) are never stable
func IsStable(a Grid, b Grid) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			return false
		}
	}
	return true
}
