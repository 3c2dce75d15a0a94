package navigation

// Service moves a cursor over a list and keeps it inside the viewport
type Service struct {
	w        window
	reserved int // rows the surrounding layout takes from the terminal
}

// NewService creates a service for a list laid out with reserved rows of
// chrome around it
func NewService(reserved int) *Service {
	return &Service{
		w:        window{height: 20}, // updated on the first resize
		reserved: reserved,
	}
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.w.cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.w.offset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.w.height
}

// SetViewportHeight sizes the viewport from the window height
func (s *Service) SetViewportHeight(height int) {
	effectiveHeight := height - s.reserved
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}
	s.w.height = effectiveHeight
	s.ensureVisible()
}

// SetItemCount updates the list length, pulling the cursor back inside it
func (s *Service) SetItemCount(n int) {
	s.w.count = max(n, 0)
	s.w.cursor = s.w.clamp(s.w.cursor)
	if s.w.offset > s.w.cursor {
		s.w.offset = s.w.cursor
	}
	s.ensureVisible()
}

// Reset puts the cursor back on the first item
func (s *Service) Reset() {
	s.w.cursor = 0
	s.w.offset = 0
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	switch direction {
	case DirectionUp:
		s.moveUp()
	case DirectionDown:
		s.moveDown()
	case DirectionPageUp:
		s.pageUp()
	case DirectionPageDown:
		s.pageDown()
	case DirectionHome:
		s.Reset()
	case DirectionEnd:
		s.w.cursor = s.w.last()
		s.ensureVisible()
	}
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.w.cursor = s.w.clamp(index)
	s.ensureVisible()
}

func (s *Service) moveUp() {
	if s.w.cursor > 0 {
		s.w.cursor--
		s.ensureVisible()
	}
}

func (s *Service) moveDown() {
	if s.w.cursor < s.w.last() {
		s.w.cursor++
		s.ensureVisible()
	}
}

func (s *Service) pageUp() {
	pageSize := s.pageSize()
	s.w.cursor = s.w.clamp(s.w.cursor - pageSize)

	s.w.offset -= pageSize
	if s.w.offset < 0 {
		s.w.offset = 0
	}
	s.ensureVisible()
}

func (s *Service) pageDown() {
	s.w.cursor = s.w.clamp(s.w.cursor + s.pageSize())
	s.ensureVisible()
}

func (s *Service) pageSize() int {
	if s.w.height > 1 {
		return s.w.height - 1
	}
	return 1
}

func (s *Service) ensureVisible() {
	if s.w.cursor < s.w.offset {
		s.w.offset = s.w.cursor
	} else if s.w.cursor >= s.w.offset+s.w.height {
		s.w.offset = s.w.cursor - s.w.height + 1
	}
}
