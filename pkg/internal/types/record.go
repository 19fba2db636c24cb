package types

// RawLine is one line of input text together with its 1-based position in the resource.
type RawLine struct {
	Number int
	Text   string
}

// Attribute is an extra named column carried from the source line into the document.
type Attribute struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// ExamResult is a single exam outcome parsed from one input line.
type ExamResult struct {
	StudentID   string      `xml:"studentId"`
	StudentName string      `xml:"studentName,omitempty"`
	CourseID    string      `xml:"courseId"`
	ExamDate    string      `xml:"examDate,omitempty"` // yyyy-mm-dd
	Score       float64     `xml:"score"`
	Attributes  []Attribute `xml:"attribute,omitempty"`

	// Line is the input line the record came from. It is never serialized.
	Line int `xml:"-"`
}

// Chunk is an ordered batch of records committed to the sink as one unit.
type Chunk struct {
	Index     int // 0-based chunk sequence number within the run.
	FirstLine int // First input line consumed by the chunk.
	LastLine  int // Last input line consumed by the chunk.
	Items     []ExamResult
}

// Len returns the number of records in the chunk.
func (c Chunk) Len() int { return len(c.Items) }
