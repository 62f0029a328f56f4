package domain

// QuizID uniquely identifies a quiz within a course.
type QuizID string

// QuestionID uniquely identifies a question within a quiz.
type QuestionID string

// LabID uniquely identifies a lab within a course.
type LabID string

func (id QuizID) String() string { return string(id) }

func (id QuestionID) String() string { return string(id) }

func (id LabID) String() string { return string(id) }
