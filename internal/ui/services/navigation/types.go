package navigation

// Direction is a cursor movement requested by a key
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// window is the visible slice of a list and the cursor inside it
type window struct {
	cursor int
	offset int
	height int
	count  int // items in the list
}

// last is the index of the final item, 0 for an empty list
func (w window) last() int {
	return max(w.count-1, 0)
}

func (w window) clamp(index int) int {
	return min(max(index, 0), w.last())
}
