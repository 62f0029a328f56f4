package domain

// Answer is the closed set of submitted answer variants. Grading an answer
// whose variant does not match the question's shape scores incorrect; it is
// never an error.
type Answer interface {
	isAnswer()
}

// Choice selects a single option index.
type Choice struct {
	Index int
}

// MultiChoice selects a set of option indexes. Duplicates collapse to a set
// during grading.
type MultiChoice struct {
	Indexes []int
}

// Order arranges item indexes into a sequence. Position matters.
type Order struct {
	Positions []int
}

// Pairs matches left item indexes to right item indexes. Order does not
// matter.
type Pairs struct {
	Pairs []Pair
}

// Code submits program source text.
type Code struct {
	Source string
}

// Blanks fills code completion blanks, keyed by blank id.
type Blanks struct {
	Filled map[string]string
}

func (Choice) isAnswer()      {}
func (MultiChoice) isAnswer() {}
func (Order) isAnswer()       {}
func (Pairs) isAnswer()       {}
func (Code) isAnswer()        {}
func (Blanks) isAnswer()      {}
